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

// TransactionService implements owner-scoped transaction CRUD. Admins read
// every user's transactions; writes never cross owners.
type TransactionService struct {
	transactions ports.TransactionRepository
	categories   ports.CategoryRepository
	cache        StatsCache
	log          zerolog.Logger
}

func NewTransactionService(
	transactions ports.TransactionRepository,
	categories ports.CategoryRepository,
	cache StatsCache,
	log zerolog.Logger,
) *TransactionService {
	return &TransactionService{transactions: transactions, categories: categories, cache: cache, log: log}
}

// Create records a transaction. The referenced category must exist and be
// owned by the creator; this is checked once here and never re-validated by
// later updates. Type is copied from the input as-is.
func (s *TransactionService) Create(ctx context.Context, userID string, in ports.TransactionCreateInput) (*domain.Transaction, error) {
	if _, err := s.categories.FindByID(ctx, in.CategoryID, userID); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.cache.Invalidate(ctx, userID)
	return tx, nil
}

func (s *TransactionService) List(ctx context.Context, userID string, role domain.Role) ([]domain.Transaction, error) {
	if role == domain.RoleAdmin {
		return s.transactions.FindByUser(ctx, "")
	}
	return s.transactions.FindByUser(ctx, userID)
}

func (s *TransactionService) Get(ctx context.Context, userID string, role domain.Role, txID string) (*domain.Transaction, error) {
	if role == domain.RoleAdmin {
		return s.transactions.FindByID(ctx, txID, "")
	}
	return s.transactions.FindByID(ctx, txID, userID)
}

// Update applies only the fields present in the input. A category change is
// applied without re-checking ownership of the new category.
func (s *TransactionService) Update(ctx context.Context, userID, txID string, in ports.TransactionUpdateInput) (*domain.Transaction, error) {
	tx, err := s.transactions.FindByID(ctx, txID, userID)
	if err != nil {
		return nil, err
	}

	if in.Amount != nil {
		tx.Amount = *in.Amount
	}
	if in.Description != nil {
		tx.Description = *in.Description
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}
	if in.CategoryID != nil {
		tx.CategoryID = *in.CategoryID
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	s.cache.Invalidate(ctx, userID)
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, txID string) error {
	if err := s.transactions.Delete(ctx, txID, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, userID)
	return nil
}
