package service

import (
	"context"
	"time"

	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
)

// FinanceService handles revenue, expense and liability reporting
type FinanceService struct {
	financeRepo repository.FinanceRepository
	orderRepo   repository.OrderRepository
	agentRepo   repository.AgentRepository
	expenseRepo repository.ExpenseRepository
	now         func() time.Time
}

// NewFinanceService creates a new finance service
func NewFinanceService(
	financeRepo repository.FinanceRepository,
	orderRepo repository.OrderRepository,
	agentRepo repository.AgentRepository,
	expenseRepo repository.ExpenseRepository,
) *FinanceService {
	return &FinanceService{
		financeRepo: financeRepo,
		orderRepo:   orderRepo,
		agentRepo:   agentRepo,
		expenseRepo: expenseRepo,
		now:         time.Now,
	}
}

// RevenueSummary holds revenue in rupees: the requested period split by
// attribution, plus recency buckets relative to now.
type RevenueSummary struct {
	Today       float64 `json:"today"`
	Week        float64 `json:"week"`
	Month       float64 `json:"month"`
	PrevMonth   float64 `json:"prev_month"`
	AllTime     float64 `json:"all_time"`
	AgentSales  float64 `json:"agent_sales"`
	DirectSales float64 `json:"direct_sales"`
	OrderCount  int64   `json:"order_count"`
}

// ExpenseCategorySummary holds one category's current-month totals in rupees.
type ExpenseCategorySummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// FinanceSummary is the dashboard report: revenue over the requested period,
// current-month expenses by category, commission liability, and profit.
type FinanceSummary struct {
	Revenue             RevenueSummary           `json:"revenue"`
	Expenses            []ExpenseCategorySummary `json:"expenses"`
	TotalExpenses       float64                  `json:"total_expenses"`
	CommissionLiability float64                  `json:"commission_liability"`
	GrossProfit         float64                  `json:"gross_profit"`
	ProfitMargin        float64                  `json:"profit_margin"`
}

// CODPendingOrder annotates a delivered COD order with how long its payment
// has been outstanding.
type CODPendingOrder struct {
	Order       entity.Order `json:"order"`
	DaysPending int          `json:"days_pending"`
}

// GetSummary builds the finance dashboard for [start, end). A zero end means
// "through now", so a bare call reports all-time revenue. Expense grouping
// always covers the current calendar month regardless of the revenue period.
func (s *FinanceService) GetSummary(ctx context.Context, start, end time.Time) (*FinanceSummary, error) {
	now := s.now()
	if end.IsZero() {
		end = now
	}

	revenue, err := s.financeRepo.GetRevenue(ctx, start, end)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	monthStart, monthEnd := s.currentMonth()
	byCategory, err := s.financeRepo.GetExpensesByCategory(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	totalExpenses, err := s.financeRepo.GetTotalExpenses(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	liability, err := s.financeRepo.GetCommissionLiability(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	buckets, err := s.revenueBuckets(ctx, now)
	if err != nil {
		return nil, err
	}

	summary := &FinanceSummary{
		Revenue: RevenueSummary{
			Today:       buckets.Today,
			Week:        buckets.Week,
			Month:       buckets.Month,
			PrevMonth:   buckets.PrevMonth,
			AllTime:     float64(revenue.AllTime) / 100,
			AgentSales:  float64(revenue.AgentSales) / 100,
			DirectSales: float64(revenue.DirectSales) / 100,
			OrderCount:  revenue.OrderCount,
		},
		Expenses:            expenseSummaries(byCategory),
		TotalExpenses:       float64(totalExpenses) / 100,
		CommissionLiability: float64(liability) / 100,
	}

	summary.GrossProfit = summary.Revenue.AllTime - summary.TotalExpenses
	if summary.Revenue.AllTime > 0 {
		summary.ProfitMargin = summary.GrossProfit / summary.Revenue.AllTime * 100
	}

	return summary, nil
}

// revenueBuckets computes the recency windows relative to now: today from
// midnight, week as the trailing 7 days, month from the 1st, prev_month the
// prior calendar month.
func (s *FinanceService) revenueBuckets(ctx context.Context, now time.Time) (*RevenueSummary, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	var buckets RevenueSummary
	for _, window := range []struct {
		out        *float64
		start, end time.Time
	}{
		{&buckets.Today, todayStart, now},
		{&buckets.Week, weekStart, now},
		{&buckets.Month, monthStart, now},
		{&buckets.PrevMonth, prevMonthStart, monthStart},
	} {
		result, err := s.financeRepo.GetRevenue(ctx, window.start, window.end)
		if err != nil {
			return nil, apperror.NewPersistenceError(err)
		}
		*window.out = float64(result.AllTime) / 100
	}
	return &buckets, nil
}

// expenseSummaries maps the grouped rows onto the fixed category list so
// every category appears in the report even with no expenses.
func expenseSummaries(rows []repository.ExpenseCategoryResult) []ExpenseCategorySummary {
	byCategory := make(map[string]repository.ExpenseCategoryResult, len(rows))
	for _, row := range rows {
		byCategory[row.Category] = row
	}

	out := make([]ExpenseCategorySummary, 0, len(enum.ExpenseCategories()))
	for _, cat := range enum.ExpenseCategories() {
		row := byCategory[cat.String()]
		out = append(out, ExpenseCategorySummary{
			Category: cat.String(),
			Total:    float64(row.Total) / 100,
			Count:    row.Count,
		})
	}
	return out
}

// ListCODPending returns delivered COD orders awaiting collection, longest
// pending first.
func (s *FinanceService) ListCODPending(ctx context.Context) ([]CODPendingOrder, error) {
	orders, err := s.orderRepo.ListCODPending(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	now := s.now()
	out := make([]CODPendingOrder, 0, len(orders))
	for _, o := range orders {
		days := 0
		if o.DeliveredAt != nil {
			days = int(now.Sub(*o.DeliveredAt).Hours() / 24)
		}
		out = append(out, CODPendingOrder{Order: o, DaysPending: days})
	}
	return out, nil
}

// ListLiabilities returns agents holding unpaid commission.
func (s *FinanceService) ListLiabilities(ctx context.Context) ([]entity.Agent, error) {
	agents, err := s.agentRepo.ListWithBalance(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	return agents, nil
}

// CreateExpenseInput represents a manual expense entry. Amount in rupees.
type CreateExpenseInput struct {
	Category    enum.ExpenseCategory
	Amount      float64
	Description string
	Date        time.Time
}

// CreateExpense records a manual business expense
func (s *FinanceService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	if !input.Category.IsValid() {
		return nil, apperror.NewValidationError("Invalid expense category")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError("Expense amount must be greater than zero")
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	expense := &entity.Expense{
		Category:    input.Category,
		Amount:      int64(input.Amount * 100),
		Description: input.Description,
		Date:        date,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	return expense, nil
}

// ListExpenses retrieves expenses with filtering and pagination
func (s *FinanceService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, p), nil
}

func (s *FinanceService) currentMonth() (time.Time, time.Time) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}
