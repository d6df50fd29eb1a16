package repository

import (
	"context"
	"time"

	domainRepo "github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"gorm.io/gorm"
)

type financeRepository struct {
	db *gorm.DB
}

// NewFinanceRepository creates a new finance repository
func NewFinanceRepository(db *gorm.DB) domainRepo.FinanceRepository {
	return &financeRepository{db: db}
}

// GetRevenue counts only realized revenue: orders already paid or delivered.
// Splitting on agent_id keeps agent_sales + direct_sales identical to all_time.
func (r *financeRepository) GetRevenue(ctx context.Context, start, end time.Time) (*domainRepo.RevenueResult, error) {
	var result domainRepo.RevenueResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(sale_price), 0) as all_time,
			COALESCE(SUM(sale_price) FILTER (WHERE agent_id IS NOT NULL), 0) as agent_sales,
			COALESCE(SUM(sale_price) FILTER (WHERE agent_id IS NULL), 0) as direct_sales,
			COUNT(*) as order_count
		FROM orders
		WHERE status IN ('paid', 'delivered')
		  AND deleted_at IS NULL
		  AND created_at >= ? AND created_at < ?
	`, start, end).Scan(&result).Error

	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *financeRepository) GetExpensesByCategory(ctx context.Context, start, end time.Time) ([]domainRepo.ExpenseCategoryResult, error) {
	var results []domainRepo.ExpenseCategoryResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			category,
			COALESCE(SUM(amount), 0) as total,
			COUNT(*) as count
		FROM expenses
		WHERE deleted_at IS NULL
		  AND date >= ? AND date < ?
		GROUP BY category
		ORDER BY total DESC
	`, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *financeRepository) GetTotalExpenses(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE deleted_at IS NULL
		  AND date >= ? AND date < ?
	`, start, end).Scan(&total).Error

	return total, err
}

func (r *financeRepository) GetCommissionLiability(ctx context.Context) (int64, error) {
	var total int64

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(available_balance), 0)
		FROM agents
		WHERE deleted_at IS NULL
		  AND available_balance > 0
	`).Scan(&total).Error

	return total, err
}
