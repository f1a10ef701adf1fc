// Package httpapi exposes the authentication service over HTTP. Handlers
// only translate between JSON bodies and service calls; every
// authentication decision lives in the auth and services packages.
package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/services"
)

type API struct {
	auth     *services.AuthService
	resolver auth.Authenticator
	cfg      *config.Config
	logger   logging.Logger
}

func New(authSvc *services.AuthService, resolver auth.Authenticator, cfg *config.Config, l logging.Logger) *API {
	return &API{
		auth:     authSvc,
		resolver: resolver,
		cfg:      cfg,
		logger:   l.With("module", "httpapi"),
	}
}

// Handler builds the route table wrapped in the auth and request-log
// middleware.
func (a *API) Handler() http.Handler {
	r := httprouter.New()

	r.HandlerFunc(http.MethodGet, "/", a.handleIndex)
	r.HandlerFunc(http.MethodGet, "/api/v1/status", a.handleStatus)
	r.HandlerFunc(http.MethodPost, "/api/v1/users", a.handleRegister)
	r.HandlerFunc(http.MethodPost, "/api/v1/sessions", a.handleLogin)
	r.HandlerFunc(http.MethodDelete, "/api/v1/sessions", a.handleLogout)
	r.HandlerFunc(http.MethodGet, "/api/v1/profile", a.handleProfile)
	r.HandlerFunc(http.MethodPost, "/api/v1/reset_password", a.handleResetRequest)
	r.HandlerFunc(http.MethodPut, "/api/v1/reset_password", a.handleUpdatePassword)

	return a.withRequestLog(a.withAuth(r))
}
