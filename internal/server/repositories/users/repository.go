// Package users implements the user record store. Lookups are a closed set
// of typed queries; there is deliberately no generic filter mechanism.
package users

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// Changes describes a partial update of a user record. A nil field is left
// untouched; a non-nil field is written as-is (an empty string clears a
// token column). All requested fields are written in one statement, so a
// single Update is atomic with respect to concurrent updates of the same
// record.
type Changes struct {
	PasswordHash *string
	SessionID    *string
	ResetToken   *string
}

// String returns a pointer to s, for building Changes literals.
func String(s string) *string { return &s }

// Repository is the storage contract for user records.
//
// Create returns common.ErrorAlreadyExists when the email is taken. The
// GetBy* lookups return common.ErrorNotFound when no record matches; an
// empty session or reset token never matches. Any other error is a storage
// failure. Update returns common.ErrorNotFound when the id does not exist.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.User, error)
	GetByResetToken(ctx context.Context, resetToken string) (*models.User, error)
	Update(ctx context.Context, id string, ch Changes) error
}
