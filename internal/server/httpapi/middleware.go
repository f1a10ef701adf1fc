package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type ctxKey string

const userContextKey ctxKey = "authUser"

// UserFromContext returns the identity attached by the auth middleware,
// or nil on an unguarded route.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userContextKey).(*models.User)
	return u
}

// withAuth guards every route that is not on the exclusion list. A request
// without any credential material is rejected with 401; a request whose
// credentials do not resolve to a user is rejected with 403.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.RequireAuth(r.URL.Path, a.cfg.ExcludedPaths) {
			next.ServeHTTP(w, r)
			return
		}

		if auth.AuthorizationHeader(r) == "" && auth.SessionCookie(r, a.cfg.SessionCookieName) == "" {
			a.writeError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := a.resolver.ResolveIdentity(r.Context(), r)
		if err != nil {
			a.logger.Error(r.Context(), "identity resolution failed", "error", err)
			a.writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		if user == nil {
			a.writeError(w, r, http.StatusForbidden, "Forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (a *API) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := common.MakeRandHexString(8)
		if err != nil {
			id = "unknown"
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		a.logger.Info(r.Context(), "request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
