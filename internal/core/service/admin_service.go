package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
)

// AdminService implements the user-management surface. Role gating happens at
// the router; the self-action guards live here because they depend on the
// caller identity, not the role.
type AdminService struct {
	users        ports.UserRepository
	categories   ports.CategoryRepository
	transactions ports.TransactionRepository
	tokens       ports.TokenRepository
	creds        *CredentialManager
	cache        StatsCache
	log          zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	categories ports.CategoryRepository,
	transactions ports.TransactionRepository,
	tokens ports.TokenRepository,
	creds *CredentialManager,
	cache StatsCache,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:        users,
		categories:   categories,
		transactions: transactions,
		tokens:       tokens,
		creds:        creds,
		cache:        cache,
		log:          log,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *AdminService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	verified, err := s.users.CountVerified(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	totalCategories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	totalTransactions, err := s.transactions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}

	return &ports.AdminStats{
		TotalUsers:        totalUsers,
		VerifiedUsers:     verified,
		TotalCategories:   totalCategories,
		TotalTransactions: totalTransactions,
	}, nil
}

// UpdateUser applies a partial edit to another account.
func (s *AdminService) UpdateUser(ctx context.Context, userID string, in ports.AdminUserUpdateInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = normalizeEmail(*in.Email)
	}
	if in.Role != nil && in.Role.Valid() {
		user.Role = *in.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account and cascades deletion of its categories,
// transactions, and outstanding tokens. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, callerID, userID string) error {
	if callerID == userID {
		return domain.ErrSelfAction
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.transactions.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user transactions: %w", err)
	}
	if err := s.categories.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user categories: %w", err)
	}
	if err := s.tokens.DeleteByUser(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to delete user tokens")
	}

	s.cache.Invalidate(ctx, userID)
	s.log.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}

// ToggleUserStatus flips the account's active flag. Admins cannot deactivate
// themselves.
func (s *AdminService) ToggleUserStatus(ctx context.Context, callerID, userID string) (*domain.User, error) {
	if callerID == userID {
		return nil, domain.ErrSelfAction
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Bool("is_active", user.IsActive).Msg("user status toggled")
	return user, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := s.creds.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}
