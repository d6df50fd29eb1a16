package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
)

func TestGetSummaryRevenueSplitAndMargin(t *testing.T) {
	// 1000 direct + 2000 agent, zero expenses: margin is 100%.
	financeRepo := &fakeFinanceRepo{
		revenue: repository.RevenueResult{
			AllTime:     300000,
			AgentSales:  200000,
			DirectSales: 100000,
			OrderCount:  2,
		},
	}
	svc := NewFinanceService(financeRepo, newFakeOrderRepo(), newFakeAgentRepo(nil), newFakeExpenseRepo())

	summary, err := svc.GetSummary(context.Background(), time.Time{}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 3000.0, summary.Revenue.AllTime)
	assert.Equal(t, 1000.0, summary.Revenue.DirectSales)
	assert.Equal(t, 2000.0, summary.Revenue.AgentSales)
	assert.Equal(t, summary.Revenue.AllTime, summary.Revenue.AgentSales+summary.Revenue.DirectSales)
	assert.Equal(t, 3000.0, summary.GrossProfit)
	assert.Equal(t, 100.0, summary.ProfitMargin)
}

func TestGetSummaryZeroRevenueZeroMargin(t *testing.T) {
	financeRepo := &fakeFinanceRepo{total: 50000}
	svc := NewFinanceService(financeRepo, newFakeOrderRepo(), newFakeAgentRepo(nil), newFakeExpenseRepo())

	summary, err := svc.GetSummary(context.Background(), time.Time{}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.Revenue.AllTime)
	assert.Equal(t, -500.0, summary.GrossProfit)
	assert.Equal(t, 0.0, summary.ProfitMargin)
}

func TestGetSummaryIncludesEveryExpenseCategory(t *testing.T) {
	financeRepo := &fakeFinanceRepo{
		expenses: []repository.ExpenseCategoryResult{
			{Category: "printing", Total: 120000, Count: 3},
			{Category: "agent_commission", Total: 200000, Count: 1},
		},
	}
	svc := NewFinanceService(financeRepo, newFakeOrderRepo(), newFakeAgentRepo(nil), newFakeExpenseRepo())

	summary, err := svc.GetSummary(context.Background(), time.Time{}, time.Now())
	require.NoError(t, err)

	require.Len(t, summary.Expenses, 5)
	byCat := make(map[string]ExpenseCategorySummary)
	for _, e := range summary.Expenses {
		byCat[e.Category] = e
	}
	assert.Equal(t, 1200.0, byCat["printing"].Total)
	assert.Equal(t, int64(3), byCat["printing"].Count)
	assert.Equal(t, 2000.0, byCat["agent_commission"].Total)
	assert.Equal(t, 0.0, byCat["shipping"].Total)
	assert.Equal(t, int64(0), byCat["marketing"].Count)
}

func TestGetSummaryNoPeriodReportsAllTime(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	financeRepo := &fakeFinanceRepo{
		orders: []fakeRevenueOrder{
			{at: now.AddDate(-1, 0, 0), amount: 100000},
			{at: now.AddDate(0, -2, 0), amount: 50000},
			{at: now.Add(-time.Hour), amount: 25000},
		},
	}
	svc := NewFinanceService(financeRepo, newFakeOrderRepo(), newFakeAgentRepo(nil), newFakeExpenseRepo())
	svc.now = func() time.Time { return now }

	// No period given: the report covers everything up to now.
	summary, err := svc.GetSummary(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 1750.0, summary.Revenue.AllTime)
	assert.Equal(t, int64(3), summary.Revenue.OrderCount)
}

func TestGetSummaryRevenueBuckets(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	financeRepo := &fakeFinanceRepo{
		orders: []fakeRevenueOrder{
			{at: time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC), amount: 10000}, // today
			{at: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), amount: 20000}, // this week
			{at: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), amount: 30000},  // this month
			{at: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), amount: 40000}, // previous month
			{at: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), amount: 50000},  // older
		},
	}
	svc := NewFinanceService(financeRepo, newFakeOrderRepo(), newFakeAgentRepo(nil), newFakeExpenseRepo())
	svc.now = func() time.Time { return now }

	summary, err := svc.GetSummary(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 100.0, summary.Revenue.Today)
	assert.Equal(t, 300.0, summary.Revenue.Week)
	assert.Equal(t, 600.0, summary.Revenue.Month)
	assert.Equal(t, 400.0, summary.Revenue.PrevMonth)
	assert.Equal(t, 1500.0, summary.Revenue.AllTime)
}

func TestListCODPendingAnnotatesDays(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	deliveredTenDaysAgo := now.AddDate(0, 0, -10).Add(-2 * time.Hour)
	deliveredToday := now.Add(-3 * time.Hour)
	require.NoError(t, orderRepo.Create(context.Background(), &entity.Order{
		CustomerName:  "Old",
		Status:        enum.OrderStatusDelivered,
		PaymentStatus: enum.PaymentStatusCOD,
		DeliveredAt:   &deliveredTenDaysAgo,
	}))
	require.NoError(t, orderRepo.Create(context.Background(), &entity.Order{
		CustomerName:  "New",
		Status:        enum.OrderStatusDelivered,
		PaymentStatus: enum.PaymentStatusCOD,
		DeliveredAt:   &deliveredToday,
	}))
	// Paid COD order is not pending.
	require.NoError(t, orderRepo.Create(context.Background(), &entity.Order{
		CustomerName:  "Done",
		Status:        enum.OrderStatusPaid,
		PaymentStatus: enum.PaymentStatusCOD,
	}))

	svc := NewFinanceService(&fakeFinanceRepo{}, orderRepo, newFakeAgentRepo(nil), newFakeExpenseRepo())
	svc.now = func() time.Time { return now }

	pending, err := svc.ListCODPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)

	days := map[string]int{}
	for _, p := range pending {
		days[p.Order.CustomerName] = p.DaysPending
	}
	assert.Equal(t, 10, days["Old"])
	assert.Equal(t, 0, days["New"])
}

func TestCreateExpenseValidation(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{}, newFakeOrderRepo(), newFakeAgentRepo(nil), newFakeExpenseRepo())

	_, err := svc.CreateExpense(context.Background(), &CreateExpenseInput{
		Category: enum.ExpenseCategory("snacks"),
		Amount:   100,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.CreateExpense(context.Background(), &CreateExpenseInput{
		Category: enum.ExpenseCategoryMarketing,
		Amount:   0,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCreateExpenseStoresPaise(t *testing.T) {
	expenseRepo := newFakeExpenseRepo()
	svc := NewFinanceService(&fakeFinanceRepo{}, newFakeOrderRepo(), newFakeAgentRepo(nil), expenseRepo)

	expense, err := svc.CreateExpense(context.Background(), &CreateExpenseInput{
		Category:    enum.ExpenseCategoryPrinting,
		Amount:      450.50,
		Description: "Batch of 200 cards",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(45050), expense.Amount)
	assert.False(t, expense.Date.IsZero())
}
