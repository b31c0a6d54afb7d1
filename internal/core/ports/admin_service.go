package ports

import (
	"context"

	"github.com/fintrack/finance-system/internal/core/domain"
)

// AdminStats is the platform-wide counter block shown on the admin panel.
type AdminStats struct {
	TotalUsers        int64 `json:"total_users"`
	VerifiedUsers     int64 `json:"verified_users"`
	TotalCategories   int64 `json:"total_categories"`
	TotalTransactions int64 `json:"total_transactions"`
}

// AdminUserUpdateInput carries a partial admin edit of another account.
type AdminUserUpdateInput struct {
	Username *string
	Email    *string
	Role     *domain.Role
}

// AdminService is the user-management surface. Every method is admin-gated by
// the caller; DeleteUser and ToggleUserStatus additionally reject the caller
// acting on their own account.
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	Stats(ctx context.Context) (*AdminStats, error)
	UpdateUser(ctx context.Context, userID string, in AdminUserUpdateInput) (*domain.User, error)
	// DeleteUser removes the account and cascades deletion of its categories
	// and transactions.
	DeleteUser(ctx context.Context, callerID, userID string) error
	ToggleUserStatus(ctx context.Context, callerID, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, newPassword string) error
}
