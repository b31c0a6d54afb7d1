package domain

import (
	"errors"
	"time"
)

// TokenKind distinguishes the two single-use token tracks.
type TokenKind string

const (
	TokenVerifyEmail   TokenKind = "verify-email"
	TokenResetPassword TokenKind = "reset-password"
)

const (
	// VerifyTokenTTL bounds the email-verification window.
	VerifyTokenTTL = 24 * time.Hour
	// ResetTokenTTL bounds the password-reset window.
	ResetTokenTTL = time.Hour
)

var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("invalid token")
var ErrAlreadyVerified = errors.New("email already verified")

// VerificationToken is a server-stored, single-use secret mailed to a user to
// prove mailbox control. Presence of a record IS the pending state: consuming
// a token deletes it, and issuing a new token of a kind replaces the prior
// one of that kind for the same user.
type VerificationToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Kind      TokenKind `json:"kind"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token is past its TTL at the given instant.
func (t *VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
