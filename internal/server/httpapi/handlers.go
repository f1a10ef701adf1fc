package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type updatePasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error(r.Context(), "response encoding failed", "error", err)
	}
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	a.writeJSON(w, r, status, map[string]string{"error": msg})
}

func (a *API) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, http.StatusOK, map[string]string{"message": "Bienvenue"})
}

func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, http.StatusOK, map[string]string{"status": "OK"})
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.writeError(w, r, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := a.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			a.writeError(w, r, http.StatusBadRequest, "email already registered")
			return
		}
		a.logger.Error(r.Context(), "registration failed", "error", err)
		a.writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, r, http.StatusCreated, map[string]string{
		"email":   user.Email,
		"message": "user created",
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := a.auth.ValidLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		a.logger.Error(r.Context(), "login check failed", "error", err)
		a.writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		a.writeError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := a.auth.CreateSession(r.Context(), req.Email)
	if err != nil {
		a.logger.Error(r.Context(), "session creation failed", "error", err)
		a.writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if token == "" {
		a.writeError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if a.cfg.SessionCookieName != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     a.cfg.SessionCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
		})
	}

	a.writeJSON(w, r, http.StatusOK, map[string]string{
		"email":   req.Email,
		"message": "logged in",
	})
}

// handleLogout lives on an unguarded path because it shares the route with
// login, so it checks the session cookie itself.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := auth.SessionCookie(r, a.cfg.SessionCookieName)
	user, err := a.auth.UserFromSession(r.Context(), token)
	if err != nil {
		a.logger.Error(r.Context(), "session lookup failed", "error", err)
		a.writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		a.writeError(w, r, http.StatusForbidden, "Forbidden")
		return
	}

	if err := a.auth.DestroySession(r.Context(), user.ID); err != nil {
		a.logger.Error(r.Context(), "session destruction failed", "error", err)
		a.writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		a.writeError(w, r, http.StatusForbidden, "Forbidden")
		return
	}
	a.writeJSON(w, r, http.StatusOK, map[string]string{"email": user.Email})
}

func (a *API) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := a.auth.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.writeError(w, r, http.StatusForbidden, "Forbidden")
			return
		}
		a.logger.Error(r.Context(), "reset token generation failed", "error", err)
		a.writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, r, http.StatusOK, map[string]string{
		"email":       req.Email,
		"reset_token": token,
	})
}

func (a *API) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NewPassword == "" {
		a.writeError(w, r, http.StatusBadRequest, "new password required")
		return
	}

	if err := a.auth.UpdatePassword(r.Context(), req.ResetToken, req.NewPassword); err != nil {
		if errors.Is(err, common.ErrorInvalidResetToken) {
			a.writeError(w, r, http.StatusForbidden, "Forbidden")
			return
		}
		a.logger.Error(r.Context(), "password update failed", "error", err)
		a.writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, r, http.StatusOK, map[string]string{
		"email":   req.Email,
		"message": "Password updated",
	})
}
