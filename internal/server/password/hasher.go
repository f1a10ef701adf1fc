// Package password wraps one-way password hashing behind a small interface
// so services never see hashing internals.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher produces and verifies one-way password hashes. Hash output is
// opaque to callers and safe to persist; the plaintext never is.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash string, plain string) bool
}

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a Hasher using bcrypt with the given cost.
// A non-positive cost falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
