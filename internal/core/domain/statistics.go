package domain

// CategoryStat is one by-category aggregation entry. Name, color and type are
// copied from the category record, not from the transactions.
type CategoryStat struct {
	Total float64      `json:"total"`
	Count int          `json:"count"`
	Name  string       `json:"name"`
	Color string       `json:"color"`
	Type  CategoryType `json:"type"`
}

// Statistics is the aggregate view over a transaction set.
type Statistics struct {
	TotalIncome        float64                 `json:"total_income"`
	TotalExpenses      float64                 `json:"total_expenses"`
	TotalSavings       float64                 `json:"total_savings"`
	Balance            float64                 `json:"balance"`
	ByCategory         map[string]CategoryStat `json:"by_category"`
	RecentTransactions []Transaction           `json:"recent_transactions"`
}
