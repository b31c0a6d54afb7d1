package domain

import (
	"errors"
	"time"
)

// CategoryType classifies categories and transactions into the three ledger
// buckets.
type CategoryType string

const (
	TypeIncome  CategoryType = "income"
	TypeExpense CategoryType = "expense"
	TypeSaving  CategoryType = "saving"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == TypeIncome || t == TypeExpense || t == TypeSaving
}

var ErrCategoryNotFound = errors.New("category not found")

// DefaultCategoryColor is applied when a create request omits the color.
const DefaultCategoryColor = "#3b82f6"

// Category is a user-owned bucket that transactions reference.
type Category struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	UserID    string       `json:"user_id"`
	Color     string       `json:"color"`
	CreatedAt time.Time    `json:"created_at"`
}

// DefaultCategorySeed describes one of the categories every new account
// starts with.
type DefaultCategorySeed struct {
	Name  string
	Type  CategoryType
	Color string
}

// DefaultCategories returns the eight starter categories created during
// registration: two income, four expense, two saving.
func DefaultCategories() []DefaultCategorySeed {
	return []DefaultCategorySeed{
		{Name: "Salary", Type: TypeIncome, Color: "#10b981"},
		{Name: "Freelance", Type: TypeIncome, Color: "#34d399"},
		{Name: "Food", Type: TypeExpense, Color: "#ef4444"},
		{Name: "Transport", Type: TypeExpense, Color: "#f59e0b"},
		{Name: "Housing", Type: TypeExpense, Color: "#8b5cf6"},
		{Name: "Entertainment", Type: TypeExpense, Color: "#ec4899"},
		{Name: "Emergency fund", Type: TypeSaving, Color: "#3b82f6"},
		{Name: "Investments", Type: TypeSaving, Color: "#06b6d4"},
	}
}
