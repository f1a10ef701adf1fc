// Package services contains server-side business logic. AuthService owns the
// credential and session lifecycle: registration, login verification, session
// issuance and destruction, and reset-token password changes.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/password"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/users"
)

// AuthService drives the per-user state machine: Anonymous (no session) and
// Authenticated (session token set). Session and reset tokens are opaque
// 128-bit random identifiers; they are never derived from user data.
type AuthService struct {
	repo   users.Repository
	hasher password.Hasher

	// generateToken is a test seam; production uses uuid.NewString.
	generateToken func() string
}

func NewAuthService(repo users.Repository, hasher password.Hasher) *AuthService {
	return &AuthService{
		repo:          repo,
		hasher:        hasher,
		generateToken: uuid.NewString,
	}
}

// Register creates a user with a hashed password and no session. A taken
// email yields common.ErrorAlreadyExists; the existing record is never
// overwritten.
func (s *AuthService) Register(ctx context.Context, email string, pwd string) (*models.User, error) {
	hash, err := s.hasher.Hash(pwd)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// ValidLogin reports whether email and password identify a registered user.
// An unknown email and a wrong password both return (false, nil), so the
// check never leaks account existence. An error means a storage failure.
func (s *AuthService) ValidLogin(ctx context.Context, email string, pwd string) (bool, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error searching user: %w", err)
	}

	return s.hasher.Verify(user.PasswordHash, pwd), nil
}

// CreateSession issues a fresh opaque session token for the user and stores
// it, overwriting (and thereby invalidating) any prior session. An unknown
// email yields ("", nil).
func (s *AuthService) CreateSession(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	token := s.generateToken()
	if err := s.repo.Update(ctx, user.ID, users.Changes{SessionID: &token}); err != nil {
		return "", fmt.Errorf("error storing session: %w", err)
	}

	return token, nil
}

// UserFromSession resolves a session token to its user. An empty or unknown
// token yields (nil, nil).
func (s *AuthService) UserFromSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	user, err := s.repo.GetBySessionID(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching session: %w", err)
	}

	return user, nil
}

// DestroySession clears the user's session token. Destroying an absent
// session, or the session of an unknown user, is a no-op.
func (s *AuthService) DestroySession(ctx context.Context, userID string) error {
	err := s.repo.Update(ctx, userID, users.Changes{SessionID: users.String("")})
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a fresh single-use reset token for the user.
// Any active session is left untouched. An unknown email yields
// common.ErrorNotFound.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	token := s.generateToken()
	if err := s.repo.Update(ctx, user.ID, users.Changes{ResetToken: &token}); err != nil {
		return "", fmt.Errorf("error storing reset token: %w", err)
	}

	return token, nil
}

// UpdatePassword consumes a reset token: the new hash is stored and the
// token cleared in one repository update, so a token never survives the
// password change it authorized. A stale or unknown token yields
// common.ErrorInvalidResetToken.
func (s *AuthService) UpdatePassword(ctx context.Context, resetToken string, newPwd string) error {
	if resetToken == "" {
		return common.ErrorInvalidResetToken
	}

	user, err := s.repo.GetByResetToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidResetToken
		}
		return fmt.Errorf("error searching reset token: %w", err)
	}

	hash, err := s.hasher.Hash(newPwd)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	err = s.repo.Update(ctx, user.ID, users.Changes{
		PasswordHash: &hash,
		ResetToken:   users.String(""),
	})
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	return nil
}
