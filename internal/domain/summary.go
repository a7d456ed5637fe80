package domain

import "github.com/shopspring/decimal" // Decimal type for money amounts

// TypeSummary holds the monthly totals for one transaction type
type TypeSummary struct {
	Type  string          `json:"type"`  // Transaction type: income or expense
	Total decimal.Decimal `json:"total"` // Sum of amounts for the type
	Count int64           `json:"count"` // Number of transactions of the type
}

// CategorySummary holds the monthly expense total for one category
type CategorySummary struct {
	Category   string          `json:"category"`   // Category name, "Uncategorized" when none
	Total      decimal.Decimal `json:"total"`      // Sum of expense amounts in the category
	Count      int64           `json:"count"`      // Number of expense transactions in the category
	Percentage float64         `json:"percentage"` // Share of all expenses, one decimal place
}
