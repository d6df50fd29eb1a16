package repository

import (
	"context"
	"time"
)

// RevenueResult represents revenue totals over a period, split by attribution.
// Amounts are in paise. AgentSales plus DirectSales always equals AllTime.
type RevenueResult struct {
	AllTime     int64
	AgentSales  int64
	DirectSales int64
	OrderCount  int64
}

// ExpenseCategoryResult represents expense totals for one category
type ExpenseCategoryResult struct {
	Category string
	Total    int64
	Count    int64
}

// FinanceRepository defines interface for financial aggregation queries
type FinanceRepository interface {
	// GetRevenue returns realized revenue over [start, end), counting only
	// orders whose status is paid or delivered.
	GetRevenue(ctx context.Context, start, end time.Time) (*RevenueResult, error)

	// GetExpensesByCategory returns expense totals grouped by category,
	// restricted to [start, end).
	GetExpensesByCategory(ctx context.Context, start, end time.Time) ([]ExpenseCategoryResult, error)

	// GetTotalExpenses returns the sum of all expenses in [start, end).
	GetTotalExpenses(ctx context.Context, start, end time.Time) (int64, error)

	// GetCommissionLiability returns the sum of positive agent balances.
	GetCommissionLiability(ctx context.Context) (int64, error)
}
