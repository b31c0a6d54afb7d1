package ports

import (
	"context"

	"github.com/fintrack/finance-system/internal/core/domain"
)

// CategoryRepository defines the persistence interface for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	// FindByID retrieves a category by id scoped to its owner.
	FindByID(ctx context.Context, id, userID string) (*domain.Category, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Category, error)
	// FindAll returns every category regardless of owner. Used by the
	// aggregation path for name/color/type lookup only.
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	// Delete removes the category owned by userID. Returns
	// domain.ErrCategoryNotFound when no such document exists.
	Delete(ctx context.Context, id, userID string) error
	DeleteByUser(ctx context.Context, userID string) error
	Count(ctx context.Context) (int64, error)
}

// TransactionRepository defines the persistence interface for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	// FindByID retrieves a transaction by id. When userID is non-empty an
	// additional owner filter is applied; admins pass "" to read any.
	FindByID(ctx context.Context, id, userID string) (*domain.Transaction, error)
	// FindByUser lists transactions. When userID is empty all users'
	// transactions are returned (admin read path).
	FindByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	// Delete removes the transaction owned by userID. Returns
	// domain.ErrTransactionNotFound when no such document exists.
	Delete(ctx context.Context, id, userID string) error
	// DeleteByCategory removes every transaction referencing the category and
	// reports how many were removed.
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) error
	Count(ctx context.Context) (int64, error)
}
