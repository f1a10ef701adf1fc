// Package auth implements the request authentication contract: path
// exclusion, credential extraction from HTTP requests, and identity
// resolvers for Basic and session authentication.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// Authenticator resolves an HTTP request to a user identity. Implementations
// return (nil, nil) when the request carries no valid credentials; an error
// means a storage failure, never an authentication failure. Which
// implementation runs is a wiring decision, not a type hierarchy.
type Authenticator interface {
	ResolveIdentity(ctx context.Context, r *http.Request) (*models.User, error)
}

// RequireAuth reports whether a request path needs authentication given the
// excluded patterns. A pattern ending in '*' matches any path sharing its
// prefix; any other pattern must equal the path after normalizing a single
// trailing slash on both sides.
//
// The check fails closed: an empty path or an empty pattern list always
// requires authentication.
func RequireAuth(path string, excluded []string) bool {
	if path == "" || len(excluded) == 0 {
		return true
	}

	normalized := strings.TrimSuffix(path, "/")

	for _, pattern := range excluded {
		if pattern == "" {
			continue
		}
		if strings.HasSuffix(pattern, "*") {
			if strings.HasPrefix(normalized, strings.TrimSuffix(pattern, "*")) {
				return false
			}
			continue
		}
		if normalized == strings.TrimSuffix(pattern, "/") {
			return false
		}
	}

	return true
}

// AuthorizationHeader returns the raw Authorization header value, or ""
// when the request is absent or carries no such header.
func AuthorizationHeader(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Header.Get("Authorization")
}

// SessionCookie returns the value of the named session cookie. An absent
// request, an unset cookie name, or a missing cookie all yield "".
func SessionCookie(r *http.Request, cookieName string) string {
	if r == nil || cookieName == "" {
		return ""
	}
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
