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

// StatsCache abstracts the best-effort statistics cache (Redis). Failures are
// never propagated: a miss is returned instead.
type StatsCache interface {
	Get(ctx context.Context, key string) (*domain.Statistics, bool)
	Set(ctx context.Context, key string, stats *domain.Statistics)
	// Invalidate drops the cached view for the user and the all-users view.
	Invalidate(ctx context.Context, userID string)
}

// CategoryService implements owner-scoped category CRUD with cascade delete.
type CategoryService struct {
	categories   ports.CategoryRepository
	transactions ports.TransactionRepository
	cache        StatsCache
	log          zerolog.Logger
}

func NewCategoryService(
	categories ports.CategoryRepository,
	transactions ports.TransactionRepository,
	cache StatsCache,
	log zerolog.Logger,
) *CategoryService {
	return &CategoryService{categories: categories, transactions: transactions, cache: cache, log: log}
}

func (s *CategoryService) Create(ctx context.Context, userID string, in ports.CategoryCreateInput) (*domain.Category, error) {
	color := in.Color
	if color == "" {
		color = domain.DefaultCategoryColor
	}

	category := &domain.Category{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Type:      in.Type,
		UserID:    userID,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.categories.FindByUser(ctx, userID)
}

// Update applies only the fields present in the input. Changing the type
// affects future statistics lookups only; existing transactions keep the type
// they were created with.
func (s *CategoryService) Update(ctx context.Context, userID, categoryID string, in ports.CategoryUpdateInput) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Type != nil {
		category.Type = *in.Type
	}
	if in.Color != nil {
		category.Color = *in.Color
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.cache.Invalidate(ctx, userID)
	return category, nil
}

// Delete removes the category and cascades deletion of every transaction
// referencing it. The cascade trusts the ownership check already applied to
// the category itself.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID string) error {
	if err := s.categories.Delete(ctx, categoryID, userID); err != nil {
		return err
	}

	removed, err := s.transactions.DeleteByCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("delete category transactions: %w", err)
	}

	s.cache.Invalidate(ctx, userID)
	s.log.Info().
		Str("category_id", categoryID).
		Int64("transactions_removed", removed).
		Msg("category deleted")
	return nil
}
