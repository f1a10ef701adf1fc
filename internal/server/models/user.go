// Package models holds the persistent records shared by the server layers.
package models

import "time"

// User is the identity record. SessionID and ResetToken are opaque tokens;
// an empty string means "absent". Email is unique and immutable after
// creation.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	SessionID    string
	ResetToken   string
	CreatedAt    time.Time
}
