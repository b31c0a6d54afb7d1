package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
)

const tokenBytes = 32

// TokenLedger drives the email-verification and password-reset state
// machines. Both tracks rest on the same rule: the presence of a token record
// is the pending state, consuming a token deletes it atomically, and issuing
// a new token of a kind replaces the previous one of that kind.
type TokenLedger struct {
	tokens   ports.TokenRepository
	users    ports.UserRepository
	creds    *CredentialManager
	notifier ports.Notifier
	baseURL  string
	log      zerolog.Logger
}

func NewTokenLedger(
	tokens ports.TokenRepository,
	users ports.UserRepository,
	creds *CredentialManager,
	notifier ports.Notifier,
	baseURL string,
	log zerolog.Logger,
) *TokenLedger {
	return &TokenLedger{
		tokens:   tokens,
		users:    users,
		creds:    creds,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

// IssueVerifyToken mints a fresh 24h verification token for the user,
// replacing any outstanding one, and schedules the verification email. The
// email is fire-and-forget; only the token write can fail.
func (l *TokenLedger) IssueVerifyToken(ctx context.Context, user *domain.User) error {
	token, err := l.issue(ctx, user.ID, domain.TokenVerifyEmail, domain.VerifyTokenTTL)
	if err != nil {
		return err
	}

	l.notifier.Send(ports.Message{
		To:      user.Email,
		Subject: "Verify your email address",
		Body: fmt.Sprintf(
			"Hi %s,\n\nConfirm your email address by opening the link below within 24 hours:\n\n%s/verify-email/%s\n",
			user.Username, l.baseURL, token,
		),
	})
	return nil
}

// VerifyEmail consumes a verification token and marks the account verified.
// Consumption is a single atomic find-and-delete: a second attempt with the
// same value, concurrent or not, observes domain.ErrTokenNotFound.
func (l *TokenLedger) VerifyEmail(ctx context.Context, token string) error {
	rec, err := l.tokens.Consume(ctx, token, domain.TokenVerifyEmail)
	if err != nil {
		return err
	}
	if rec.Expired(time.Now().UTC()) {
		return domain.ErrTokenExpired
	}

	user, err := l.users.FindByID(ctx, rec.UserID)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	if err := l.users.Update(ctx, user); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}

	l.log.Info().Str("user_id", user.ID).Msg("email verified")
	return nil
}

// ResendVerification reissues the verification token for a pending account.
// An unknown email returns success so the endpoint cannot be used to probe
// for accounts; an already-verified account is reported explicitly.
func (l *TokenLedger) ResendVerification(ctx context.Context, email string) error {
	user, err := l.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		l.log.Debug().Msg("resend verification for unknown email, reporting success")
		return nil
	}
	if user.EmailVerified {
		return domain.ErrAlreadyVerified
	}
	return l.IssueVerifyToken(ctx, user)
}

// ForgotPassword issues a 1h reset token and schedules the reset email. The
// outcome is identical whether or not the email exists. The reset track is
// open regardless of verification state.
func (l *TokenLedger) ForgotPassword(ctx context.Context, email string) error {
	user, err := l.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		l.log.Debug().Msg("password reset for unknown email, reporting success")
		return nil
	}

	token, err := l.issue(ctx, user.ID, domain.TokenResetPassword, domain.ResetTokenTTL)
	if err != nil {
		return err
	}

	l.notifier.Send(ports.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf(
			"Hi %s,\n\nReset your password by opening the link below within 1 hour:\n\n%s/reset-password/%s\n\nIf you did not request this, ignore this email.\n",
			user.Username, l.baseURL, token,
		),
	})
	return nil
}

// ResetPassword consumes a reset token and replaces the password hash. A
// successful reset proves mailbox control, so the account is also marked
// verified, and every other outstanding token for the user is invalidated.
func (l *TokenLedger) ResetPassword(ctx context.Context, token, newPassword string) error {
	rec, err := l.tokens.Consume(ctx, token, domain.TokenResetPassword)
	if err != nil {
		return err
	}
	if rec.Expired(time.Now().UTC()) {
		return domain.ErrTokenExpired
	}

	user, err := l.users.FindByID(ctx, rec.UserID)
	if err != nil {
		return err
	}

	hash, err := l.creds.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	user.PasswordHash = hash
	user.EmailVerified = true
	if err := l.users.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := l.tokens.DeleteByUser(ctx, user.ID); err != nil {
		l.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to invalidate outstanding tokens")
	}

	l.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

// issue stores a fresh token of the given kind, replacing the prior one.
func (l *TokenLedger) issue(ctx context.Context, userID string, kind domain.TokenKind, ttl time.Duration) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	now := time.Now().UTC()
	rec := &domain.VerificationToken{
		Token:     token,
		UserID:    userID,
		Kind:      kind,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := l.tokens.Replace(ctx, rec); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// generateToken returns a hex string carrying tokenBytes of entropy.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
