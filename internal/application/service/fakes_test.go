package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
)

// In-memory repository fakes backing the service tests.

type fakeOrderRepo struct {
	orders  map[uuid.UUID]*entity.Order
	nextNum int64
	failOps map[string]error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order), failOps: make(map[string]error)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if err := r.failOps["create"]; err != nil {
		return err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.nextNum++
	order.OrderNumber = r.nextNum
	order.CreatedAt = time.Now()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByOrderNumber(ctx context.Context, n int64) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == n {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetBySlug(ctx context.Context, slug string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.PortfolioSlug != nil && *o.PortfolioSlug == slug {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	if err := r.failOps["update"]; err != nil {
		return err
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ListPipeline(ctx context.Context) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range r.orders {
		if o.Status.IsPipeline() {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if o, ok := r.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) ListCODPending(ctx context.Context) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range r.orders {
		if o.PaymentStatus == enum.PaymentStatusCOD && o.Status == enum.OrderStatusDelivered {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	o, err := r.GetBySlug(ctx, slug)
	return o != nil, err
}

type fakeAgentRepo struct {
	agents   map[uuid.UUID]*entity.Agent
	payouts  []*entity.Payout
	expenses *fakeExpenseRepo
}

func newFakeAgentRepo(expenses *fakeExpenseRepo) *fakeAgentRepo {
	return &fakeAgentRepo{agents: make(map[uuid.UUID]*entity.Agent), expenses: expenses}
}

func (r *fakeAgentRepo) Create(ctx context.Context, agent *entity.Agent) error {
	if agent.ID == uuid.Nil {
		agent.ID = uuid.New()
	}
	cp := *agent
	r.agents[agent.ID] = &cp
	return nil
}

func (r *fakeAgentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error) {
	a, ok := r.agents[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAgentRepo) GetByReferralCode(ctx context.Context, code string) (*entity.Agent, error) {
	for _, a := range r.agents {
		if a.ReferralCode == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAgentRepo) Update(ctx context.Context, agent *entity.Agent) error {
	cp := *agent
	r.agents[agent.ID] = &cp
	return nil
}

func (r *fakeAgentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.agents, id)
	return nil
}

func (r *fakeAgentRepo) List(ctx context.Context, params *repository.AgentFilterParams) ([]entity.Agent, int64, error) {
	var out []entity.Agent
	for _, a := range r.agents {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAgentRepo) ListWithBalance(ctx context.Context) ([]entity.Agent, error) {
	var out []entity.Agent
	for _, a := range r.agents {
		if a.AvailableBalance > 0 {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAgentRepo) DebitBalance(ctx context.Context, payout *entity.Payout) (bool, error) {
	a, ok := r.agents[payout.AgentID]
	if !ok || a.AvailableBalance < payout.Amount {
		return false, nil
	}
	a.AvailableBalance -= payout.Amount
	if payout.ID == uuid.Nil {
		payout.ID = uuid.New()
	}
	r.payouts = append(r.payouts, payout)
	if r.expenses != nil {
		r.expenses.Create(ctx, &entity.Expense{
			Category: enum.ExpenseCategoryAgentCommission,
			Amount:   payout.Amount,
			Date:     payout.ProcessedAt,
		})
	}
	return true, nil
}

func (r *fakeAgentRepo) CreditBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	if a, ok := r.agents[id]; ok {
		a.AvailableBalance += amount
		a.TotalEarnings += amount
		a.TotalSales++
	}
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetBySlug(ctx context.Context, slug string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeDesignRepo struct {
	designs map[uuid.UUID]*entity.CardDesign
}

func newFakeDesignRepo() *fakeDesignRepo {
	return &fakeDesignRepo{designs: make(map[uuid.UUID]*entity.CardDesign)}
}

func (r *fakeDesignRepo) Create(ctx context.Context, d *entity.CardDesign) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	r.designs[d.ID] = &cp
	return nil
}

func (r *fakeDesignRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CardDesign, error) {
	d, ok := r.designs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDesignRepo) GetByName(ctx context.Context, name string) (*entity.CardDesign, error) {
	for _, d := range r.designs {
		if strings.EqualFold(d.Name, name) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDesignRepo) Update(ctx context.Context, d *entity.CardDesign) error {
	cp := *d
	r.designs[d.ID] = &cp
	return nil
}

func (r *fakeDesignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.designs, id)
	return nil
}

func (r *fakeDesignRepo) List(ctx context.Context, activeOnly bool) ([]entity.CardDesign, error) {
	var out []entity.CardDesign
	for _, d := range r.designs {
		if !activeOnly || d.Active {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakeExpenseRepo struct {
	expenses []*entity.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{}
}

func (r *fakeExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	r.expenses = append(r.expenses, &cp)
	return nil
}

func (r *fakeExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	for _, e := range r.expenses {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	for i, existing := range r.expenses {
		if existing.ID == e.ID {
			cp := *e
			r.expenses[i] = &cp
		}
	}
	return nil
}

func (r *fakeExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *fakeExpenseRepo) List(ctx context.Context, params *repository.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var out []entity.Expense
	for _, e := range r.expenses {
		if params.Category != nil && e.Category != *params.Category {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeExpenseRepo) categoryTotal(cat enum.ExpenseCategory) (int64, int64) {
	var total, count int64
	for _, e := range r.expenses {
		if e.Category == cat {
			total += e.Amount
			count++
		}
	}
	return total, count
}

type fakePayoutRepo struct {
	agentRepo *fakeAgentRepo
}

func (r *fakePayoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payout, error) {
	for _, p := range r.agentRepo.payouts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePayoutRepo) ListByAgent(ctx context.Context, agentID uuid.UUID, params *pagination.PaginationParams) ([]entity.Payout, int64, error) {
	var out []entity.Payout
	for _, p := range r.agentRepo.payouts {
		if p.AgentID == agentID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePayoutRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payout, int64, error) {
	var out []entity.Payout
	for _, p := range r.agentRepo.payouts {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

type fakeRevenueOrder struct {
	at     time.Time
	amount int64
}

type fakeFinanceRepo struct {
	revenue   repository.RevenueResult
	orders    []fakeRevenueOrder
	expenses  []repository.ExpenseCategoryResult
	total     int64
	liability int64
}

// GetRevenue sums the seeded orders falling in [start, end); with no seeded
// orders the canned result is returned for any window.
func (r *fakeFinanceRepo) GetRevenue(ctx context.Context, start, end time.Time) (*repository.RevenueResult, error) {
	if r.orders == nil {
		cp := r.revenue
		return &cp, nil
	}

	var result repository.RevenueResult
	for _, o := range r.orders {
		if !o.at.Before(start) && o.at.Before(end) {
			result.AllTime += o.amount
			result.DirectSales += o.amount
			result.OrderCount++
		}
	}
	return &result, nil
}

func (r *fakeFinanceRepo) GetExpensesByCategory(ctx context.Context, start, end time.Time) ([]repository.ExpenseCategoryResult, error) {
	return r.expenses, nil
}

func (r *fakeFinanceRepo) GetTotalExpenses(ctx context.Context, start, end time.Time) (int64, error) {
	return r.total, nil
}

func (r *fakeFinanceRepo) GetCommissionLiability(ctx context.Context) (int64, error) {
	return r.liability, nil
}
