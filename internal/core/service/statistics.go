package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
)

const recentLimit = 10

// ComputeStatistics is the aggregation engine: a pure function of the
// transaction set (already scoped by caller role) and the category set (used
// for name/color/type lookup only).
//
// A transaction whose category id does not resolve still counts toward the
// grand totals but contributes no by-category entry. This orphan tolerance is
// deliberate: cascade deletes remove transactions with their category, but a
// reader racing the cascade may still see both states.
func ComputeStatistics(transactions []domain.Transaction, categories []domain.Category) domain.Statistics {
	stats := domain.Statistics{
		ByCategory:         make(map[string]domain.CategoryStat),
		RecentTransactions: []domain.Transaction{},
	}

	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	for _, t := range transactions {
		switch t.Type {
		case domain.TypeIncome:
			stats.TotalIncome += t.Amount
		case domain.TypeExpense:
			stats.TotalExpenses += t.Amount
		case domain.TypeSaving:
			stats.TotalSavings += t.Amount
		}

		category, ok := byID[t.CategoryID]
		if !ok {
			continue
		}
		entry, seen := stats.ByCategory[t.CategoryID]
		if !seen {
			entry = domain.CategoryStat{
				Name:  category.Name,
				Color: category.Color,
				Type:  category.Type,
			}
		}
		entry.Total += t.Amount
		entry.Count++
		stats.ByCategory[t.CategoryID] = entry
	}

	stats.Balance = stats.TotalIncome - stats.TotalExpenses - stats.TotalSavings

	// ISO-8601 dates sort lexicographically; stable keeps enumeration order
	// for equal dates.
	recent := make([]domain.Transaction, len(transactions))
	copy(recent, transactions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date > recent[j].Date
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	stats.RecentTransactions = recent

	return stats
}

// StatisticsService serves the aggregate view, scoped by the caller's role
// and fronted by the best-effort cache.
type StatisticsService struct {
	transactions ports.TransactionRepository
	categories   ports.CategoryRepository
	cache        StatsCache
	log          zerolog.Logger
}

func NewStatisticsService(
	transactions ports.TransactionRepository,
	categories ports.CategoryRepository,
	cache StatsCache,
	log zerolog.Logger,
) *StatisticsService {
	return &StatisticsService{transactions: transactions, categories: categories, cache: cache, log: log}
}

// Overview computes statistics over the caller's transactions, or over all
// transactions for admins. The category set is always unscoped: it is a
// lookup table, not a data source.
func (s *StatisticsService) Overview(ctx context.Context, userID string, role domain.Role) (*domain.Statistics, error) {
	scope := userID
	if role == domain.RoleAdmin {
		scope = ""
	}

	cacheKey := cacheKeyFor(scope)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		return cached, nil
	}

	transactions, err := s.transactions.FindByUser(ctx, scope)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeStatistics(transactions, categories)
	s.cache.Set(ctx, cacheKey, &stats)
	return &stats, nil
}

func cacheKeyFor(scope string) string {
	if scope == "" {
		return "all"
	}
	return scope
}
