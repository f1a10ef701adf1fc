package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/password"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/users"
)

const basicPrefix = "Basic "

// stripBasicPrefix returns the base64 part of a Basic Authorization header,
// trimmed of surrounding whitespace, or "" when the literal "Basic " prefix
// is missing.
func stripBasicPrefix(header string) string {
	if !strings.HasPrefix(header, basicPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, basicPrefix))
}

// decodeCredentials base64-decodes token and interprets the bytes as UTF-8
// text. Any decoding failure yields "", never an error.
func decodeCredentials(token string) string {
	if token == "" {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return ""
	}
	if !utf8.Valid(raw) {
		return ""
	}
	return string(raw)
}

// splitCredentials splits decoded text on the FIRST ':' only, so the
// password may itself contain colons. Without a separator both parts are "".
func splitCredentials(decoded string) (string, string) {
	email, pwd, ok := strings.Cut(decoded, ":")
	if !ok {
		return "", ""
	}
	return email, pwd
}

// BasicAuthenticator resolves identities from credentials embedded in the
// Authorization header. Pure read path: no session state is touched.
type BasicAuthenticator struct {
	repo   users.Repository
	hasher password.Hasher
}

func NewBasicAuthenticator(repo users.Repository, hasher password.Hasher) *BasicAuthenticator {
	return &BasicAuthenticator{repo: repo, hasher: hasher}
}

// ResolveIdentity runs the decoding pipeline and verifies the credentials
// against the store. Every malformed-input or unknown-email outcome is
// (nil, nil); a caller cannot distinguish a wrong password from an account
// that does not exist.
func (a *BasicAuthenticator) ResolveIdentity(ctx context.Context, r *http.Request) (*models.User, error) {
	decoded := decodeCredentials(stripBasicPrefix(AuthorizationHeader(r)))

	email, pwd := splitCredentials(decoded)
	if email == "" || pwd == "" {
		return nil, nil
	}

	user, err := a.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !a.hasher.Verify(user.PasswordHash, pwd) {
		return nil, nil
	}

	return user, nil
}
