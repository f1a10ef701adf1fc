package auth

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// SessionLookup is the slice of the session service this resolver needs.
type SessionLookup interface {
	UserFromSession(ctx context.Context, token string) (*models.User, error)
}

// SessionAuthenticator resolves identities from an opaque session token
// presented in a cookie.
type SessionAuthenticator struct {
	sessions   SessionLookup
	cookieName string
}

func NewSessionAuthenticator(sessions SessionLookup, cookieName string) *SessionAuthenticator {
	return &SessionAuthenticator{sessions: sessions, cookieName: cookieName}
}

func (a *SessionAuthenticator) ResolveIdentity(ctx context.Context, r *http.Request) (*models.User, error) {
	token := SessionCookie(r, a.cookieName)
	if token == "" {
		return nil, nil
	}
	return a.sessions.UserFromSession(ctx, token)
}
