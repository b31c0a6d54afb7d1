package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
)

// AuthService implements registration, login and the self-service account
// flows, delegating password work to CredentialManager, session work to
// SessionIssuer, and the token state machines to TokenLedger.
type AuthService struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
	creds      *CredentialManager
	sessions   *SessionIssuer
	ledger     *TokenLedger
	superAdmin string
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	categories ports.CategoryRepository,
	creds *CredentialManager,
	sessions *SessionIssuer,
	ledger *TokenLedger,
	superAdminEmail string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		categories: categories,
		creds:      creds,
		sessions:   sessions,
		ledger:     ledger,
		superAdmin: normalizeEmail(superAdminEmail),
		log:        log,
	}
}

// Register creates the account, seeds its default categories, and, for
// regular accounts, starts the email-verification track. The super-admin
// email (when configured) is created verified and with the admin role. The
// category seed completes before the session token is returned.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrEmailTaken
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	isSuperAdmin := s.superAdmin != "" && email == s.superAdmin

	user := &domain.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		Role:          domain.RoleUser,
		EmailVerified: isSuperAdmin,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	if isSuperAdmin {
		user.Role = domain.RoleAdmin
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	if err := s.seedDefaultCategories(ctx, user.ID); err != nil {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	if !isSuperAdmin {
		if err := s.ledger.IssueVerifyToken(ctx, user); err != nil {
			// The account exists and can request a resend; registration is
			// not rolled back over the token write.
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to issue verification token")
		}
	}

	token, err := s.sessions.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Bool("super_admin", isSuperAdmin).Msg("user registered")
	return token, user, nil
}

// Login authenticates and issues a session token. Checks run in a fixed
// order: credentials, then email verification, then activation.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !s.creds.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return "", nil, domain.ErrUnverified
	}
	if !user.IsActive {
		return "", nil, domain.ErrDeactivated
	}

	token, err := s.sessions.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies a partial profile update. A password change requires
// the current password to verify.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.NewPassword != "" {
		if !s.creds.Verify(in.CurrentPassword, user.PasswordHash) {
			return nil, domain.ErrInvalidCredentials
		}
		hash, err := s.creds.Hash(in.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		user.PasswordHash = hash
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	return s.ledger.VerifyEmail(ctx, token)
}

func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	return s.ledger.ResendVerification(ctx, email)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.ledger.ForgotPassword(ctx, email)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.ledger.ResetPassword(ctx, token, newPassword)
}

func (s *AuthService) seedDefaultCategories(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	for _, seed := range domain.DefaultCategories() {
		category := &domain.Category{
			ID:        uuid.NewString(),
			Name:      seed.Name,
			Type:      seed.Type,
			UserID:    userID,
			Color:     seed.Color,
			CreatedAt: now,
		}
		if err := s.categories.Create(ctx, category); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	return nil
}
