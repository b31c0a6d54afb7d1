package ports

import (
	"context"

	"github.com/fintrack/finance-system/internal/core/domain"
)

// ProfileUpdateInput carries a partial profile update. Nil fields are left
// untouched. A password change requires both password fields.
type ProfileUpdateInput struct {
	Username        *string
	ProfileImage    *string
	CurrentPassword string
	NewPassword     string
}

// AuthService covers registration, login and the self-service account flows.
type AuthService interface {
	// Register creates the account with its default categories, issues the
	// verification token, schedules the verification email, and returns a
	// session token. The whole category seed happens before the token is
	// returned.
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	// Login checks, in order: credentials, email verification, activation.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*domain.User, error)

	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}
