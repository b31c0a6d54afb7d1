package ports

import (
	"context"

	"github.com/fintrack/finance-system/internal/core/domain"
)

// CategoryCreateInput carries a category create request.
type CategoryCreateInput struct {
	Name  string
	Type  domain.CategoryType
	Color string
}

// CategoryUpdateInput carries a partial category update. Nil fields are
// no-ops, not nulls. A type change does not touch existing transactions;
// their stored type stays whatever it was at creation.
type CategoryUpdateInput struct {
	Name  *string
	Type  *domain.CategoryType
	Color *string
}

// CategoryService is owner-scoped category CRUD with cascade delete.
type CategoryService interface {
	Create(ctx context.Context, userID string, in CategoryCreateInput) (*domain.Category, error)
	List(ctx context.Context, userID string) ([]domain.Category, error)
	Update(ctx context.Context, userID, categoryID string, in CategoryUpdateInput) (*domain.Category, error)
	// Delete removes the category and cascades deletion of its transactions.
	Delete(ctx context.Context, userID, categoryID string) error
}

// TransactionCreateInput carries a transaction create request. Type is taken
// as given, not derived from the category.
type TransactionCreateInput struct {
	Amount      float64
	Description string
	Date        string
	CategoryID  string
	Type        domain.CategoryType
}

// TransactionUpdateInput carries a partial transaction update. Nil fields are
// no-ops. CategoryID is applied without re-validating ownership.
type TransactionUpdateInput struct {
	Amount      *float64
	Description *string
	Date        *string
	CategoryID  *string
}

// TransactionService is owner-scoped transaction CRUD. Admins may read all
// users' transactions; writes always stay owner-scoped.
type TransactionService interface {
	Create(ctx context.Context, userID string, in TransactionCreateInput) (*domain.Transaction, error)
	List(ctx context.Context, userID string, role domain.Role) ([]domain.Transaction, error)
	Get(ctx context.Context, userID string, role domain.Role, txID string) (*domain.Transaction, error)
	Update(ctx context.Context, userID, txID string, in TransactionUpdateInput) (*domain.Transaction, error)
	Delete(ctx context.Context, userID, txID string) error
}

// StatisticsService serves the aggregate ledger view for a caller.
type StatisticsService interface {
	Overview(ctx context.Context, userID string, role domain.Role) (*domain.Statistics, error)
}
