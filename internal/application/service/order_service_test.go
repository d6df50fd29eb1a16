package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
)

type orderFixture struct {
	svc       *OrderService
	orderRepo *fakeOrderRepo
	agentRepo *fakeAgentRepo
	custRepo  *fakeCustomerRepo
	design    *entity.CardDesign
}

func newOrderFixture(t *testing.T, accrualStatus string) *orderFixture {
	t.Helper()

	orderRepo := newFakeOrderRepo()
	agentRepo := newFakeAgentRepo(nil)
	custRepo := newFakeCustomerRepo()
	designRepo := newFakeDesignRepo()

	design := &entity.CardDesign{Name: "Classic Black", BaseMSP: 60000, Active: true}
	require.NoError(t, designRepo.Create(context.Background(), design))

	return &orderFixture{
		svc:       NewOrderService(orderRepo, agentRepo, custRepo, designRepo, accrualStatus),
		orderRepo: orderRepo,
		agentRepo: agentRepo,
		custRepo:  custRepo,
		design:    design,
	}
}

func (f *orderFixture) createOrder(t *testing.T, name string, salePrice float64) *entity.Order {
	t.Helper()
	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: name,
		Phone:        "9876543210",
		CardDesignID: f.design.ID,
		SalePrice:    salePrice,
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderSnapshotsMSP(t *testing.T) {
	f := newOrderFixture(t, "paid")

	order := f.createOrder(t, "Ravi Kumar", 500)

	assert.Equal(t, int64(60000), order.MSPAtOrder)
	assert.Equal(t, int64(50000), order.SalePrice)
	assert.True(t, order.IsBelowMSP())
	assert.Equal(t, enum.OrderStatusPendingApproval, order.Status)
	assert.True(t, order.IsDirectSale())
}

func TestCreateOrderWithReferralCode(t *testing.T) {
	f := newOrderFixture(t, "paid")
	agent := &entity.Agent{Name: "Suresh", Phone: "9000000000", ReferralCode: "SURESH10",
		BaseCommission: 20000, Status: enum.AgentStatusActive}
	require.NoError(t, f.agentRepo.Create(context.Background(), agent))

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: "Priya",
		Phone:        "9876543210",
		CardDesignID: f.design.ID,
		SalePrice:    800,
		ReferralCode: "SURESH10",
	})
	require.NoError(t, err)

	assert.False(t, order.IsDirectSale())
	assert.Equal(t, agent.ID, *order.AgentID)
	assert.Equal(t, int64(20000), order.CommissionAmount)
}

func TestCreateOrderInactiveAgentRefused(t *testing.T) {
	f := newOrderFixture(t, "paid")
	agent := &entity.Agent{Name: "Suresh", Phone: "9000000000", ReferralCode: "SURESH10",
		Status: enum.AgentStatusInactive}
	require.NoError(t, f.agentRepo.Create(context.Background(), agent))

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: "Priya",
		Phone:        "9876543210",
		CardDesignID: f.design.ID,
		SalePrice:    800,
		ReferralCode: "SURESH10",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestApproveMintsSlugAndCreatesPortfolio(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 700)

	approved, err := f.svc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusApproved, approved.Status)
	require.NotNil(t, approved.PortfolioSlug)
	assert.Equal(t, "ravi-kumar", *approved.PortfolioSlug)
	assert.NotNil(t, approved.ApprovedAt)

	customer, err := f.custRepo.GetBySlug(context.Background(), "ravi-kumar")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, enum.CustomerStatusActive, customer.Status)
}

func TestApproveIsIdempotentOnSlug(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 700)

	first, err := f.svc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	second, err := f.svc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, *first.PortfolioSlug, *second.PortfolioSlug)
	assert.Len(t, f.custRepo.customers, 1)
}

func TestApproveSlugCollisionGetsSuffix(t *testing.T) {
	f := newOrderFixture(t, "paid")
	first := f.createOrder(t, "Ravi Kumar", 700)
	second := f.createOrder(t, "Ravi Kumar", 900)

	a, err := f.svc.Approve(context.Background(), first.ID)
	require.NoError(t, err)
	b, err := f.svc.Approve(context.Background(), second.ID)
	require.NoError(t, err)

	assert.Equal(t, "ravi-kumar", *a.PortfolioSlug)
	assert.NotEqual(t, *a.PortfolioSlug, *b.PortfolioSlug)
	assert.Contains(t, *b.PortfolioSlug, "ravi-kumar-")
}

func TestRejectRequiresReason(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 500)

	for _, reason := range []string{"", "   "} {
		_, err := f.svc.Reject(context.Background(), order.ID, reason)
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	}

	// No status change occurred.
	current, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPendingApproval, current.Status)
}

func TestRejectStoresReasonVerbatim(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 500)
	assert.True(t, order.IsBelowMSP())

	rejected, err := f.svc.Reject(context.Background(), order.ID, "Price too low")
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Price too low", *rejected.RejectionReason)
	assert.Nil(t, rejected.ApprovedAt)
}

func TestRejectApprovedOrderFails(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 700)
	_, err := f.svc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.svc.Reject(context.Background(), order.ID, "changed my mind")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}

func TestAdvanceFollowsPipeline(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 700)
	_, err := f.svc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	for _, next := range []enum.OrderStatus{
		enum.OrderStatusPrinting,
		enum.OrderStatusPrinted,
		enum.OrderStatusReadyToShip,
		enum.OrderStatusShipped,
		enum.OrderStatusDelivered,
		enum.OrderStatusPaid,
	} {
		updated, err := f.svc.Advance(context.Background(), order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	final, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.NotNil(t, final.ShippedAt)
	assert.NotNil(t, final.DeliveredAt)
	assert.NotNil(t, final.PaidAt)
}

func TestAdvanceRefusesSkipping(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 700)

	_, err := f.svc.Advance(context.Background(), order.ID, enum.OrderStatusShipped)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))

	current, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPendingApproval, current.Status)
}

func TestMoveToStatusSkipsForwardAndStampsTimestamps(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 700)
	_, err := f.svc.Approve(context.Background(), order.ID)
	require.NoError(t, err)
	_, err = f.svc.Advance(context.Background(), order.ID, enum.OrderStatusPrinting)
	require.NoError(t, err)

	moved, err := f.svc.MoveToStatus(context.Background(), order.ID, enum.OrderStatusShipped)
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusShipped, moved.Status)
	assert.NotNil(t, moved.ShippedAt)
	assert.Nil(t, moved.DeliveredAt)
}

func TestMoveToStatusBackwardFails(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 700)
	_, err := f.svc.Approve(context.Background(), order.ID)
	require.NoError(t, err)
	_, err = f.svc.MoveToStatus(context.Background(), order.ID, enum.OrderStatusShipped)
	require.NoError(t, err)

	_, err = f.svc.MoveToStatus(context.Background(), order.ID, enum.OrderStatusPrinting)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}

func TestCommissionAccruesOnceAtConfiguredStatus(t *testing.T) {
	f := newOrderFixture(t, "paid")
	agent := &entity.Agent{Name: "Suresh", Phone: "9000000000", ReferralCode: "SURESH10",
		BaseCommission: 20000, Status: enum.AgentStatusActive}
	require.NoError(t, f.agentRepo.Create(context.Background(), agent))

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: "Priya",
		Phone:        "9876543210",
		CardDesignID: f.design.ID,
		SalePrice:    800,
		ReferralCode: "SURESH10",
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	// Nothing accrued before the paid stage.
	a, _ := f.agentRepo.GetByID(context.Background(), agent.ID)
	assert.Equal(t, int64(0), a.AvailableBalance)

	_, err = f.svc.MoveToStatus(context.Background(), order.ID, enum.OrderStatusPaid)
	require.NoError(t, err)

	a, _ = f.agentRepo.GetByID(context.Background(), agent.ID)
	assert.Equal(t, int64(20000), a.AvailableBalance)
	assert.Equal(t, int64(20000), a.TotalEarnings)
	assert.Equal(t, int64(1), a.TotalSales)

	// Re-applying the terminal status accrues nothing further.
	_, err = f.svc.MoveToStatus(context.Background(), order.ID, enum.OrderStatusPaid)
	require.NoError(t, err)
	a, _ = f.agentRepo.GetByID(context.Background(), agent.ID)
	assert.Equal(t, int64(20000), a.AvailableBalance)
}

func TestCommissionAccrualOnApproval(t *testing.T) {
	f := newOrderFixture(t, "approved")
	agent := &entity.Agent{Name: "Suresh", Phone: "9000000000", ReferralCode: "SURESH10",
		BaseCommission: 15000, Status: enum.AgentStatusActive}
	require.NoError(t, f.agentRepo.Create(context.Background(), agent))

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: "Priya",
		Phone:        "9876543210",
		CardDesignID: f.design.ID,
		SalePrice:    800,
		ReferralCode: "SURESH10",
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	a, _ := f.agentRepo.GetByID(context.Background(), agent.ID)
	assert.Equal(t, int64(15000), a.AvailableBalance)
}

func TestCancelOnlyFromPendingApproval(t *testing.T) {
	f := newOrderFixture(t, "paid")
	order := f.createOrder(t, "Ravi Kumar", 700)

	cancelled, err := f.svc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, cancelled.Status)

	other := f.createOrder(t, "Priya Sharma", 700)
	_, err = f.svc.Approve(context.Background(), other.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), other.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}
