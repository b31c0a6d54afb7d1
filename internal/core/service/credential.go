package service

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialManager handles one-way password hashing and verification.
type CredentialManager struct {
	cost int
}

func NewCredentialManager() *CredentialManager {
	return &CredentialManager{cost: bcrypt.DefaultCost}
}

// Hash derives a salted adaptive-cost hash from a plaintext password.
func (m *CredentialManager) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), m.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. The comparison is
// constant-time; a malformed hash yields false, not an error.
func (m *CredentialManager) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
