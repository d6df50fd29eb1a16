package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
	"github.com/prince-yadav810/taponce-api/pkg/utils"
)

// OrderService handles order intake and lifecycle transitions
type OrderService struct {
	orderRepo    repository.OrderRepository
	agentRepo    repository.AgentRepository
	customerRepo repository.CustomerRepository
	designRepo   repository.CardDesignRepository

	// Pipeline status at which agent commission is credited. One of
	// approved, delivered, or paid.
	accrualStatus enum.OrderStatus
}

// NewOrderService creates a new order service. An unrecognized accrual status
// falls back to paid.
func NewOrderService(
	orderRepo repository.OrderRepository,
	agentRepo repository.AgentRepository,
	customerRepo repository.CustomerRepository,
	designRepo repository.CardDesignRepository,
	accrualStatus string,
) *OrderService {
	accrual := enum.OrderStatus(accrualStatus)
	switch accrual {
	case enum.OrderStatusApproved, enum.OrderStatusDelivered, enum.OrderStatusPaid:
	default:
		accrual = enum.OrderStatusPaid
	}
	return &OrderService{
		orderRepo:     orderRepo,
		agentRepo:     agentRepo,
		customerRepo:  customerRepo,
		designRepo:    designRepo,
		accrualStatus: accrual,
	}
}

// CreateOrderInput represents the create order input. Money in rupees.
type CreateOrderInput struct {
	CustomerName  string
	Company       string
	Phone         string
	Email         string
	WhatsApp      string
	CardDesignID  uuid.UUID
	Line1Text     string
	Line2Text     string
	SalePrice     float64
	AgentID       *uuid.UUID
	ReferralCode  string
	PaymentStatus enum.PaymentStatus
}

// CreateOrder creates a new order in pending_approval, snapshotting the
// design's MSP so later catalog price changes never touch existing orders.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, apperror.NewValidationError("Customer name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, apperror.NewValidationError("Phone is required")
	}
	if input.SalePrice <= 0 {
		return nil, apperror.NewValidationError("Sale price must be greater than zero")
	}

	design, err := s.designRepo.GetByID(ctx, input.CardDesignID)
	if err != nil {
		return nil, err
	}
	if design == nil {
		return nil, apperror.NewNotFoundError("Card design")
	}

	order := &entity.Order{
		CustomerName: strings.TrimSpace(input.CustomerName),
		Company:      input.Company,
		Phone:        input.Phone,
		Email:        input.Email,
		WhatsApp:     input.WhatsApp,
		CardDesignID: design.ID,
		Line1Text:    input.Line1Text,
		Line2Text:    input.Line2Text,
		MSPAtOrder:   design.BaseMSP,
		SalePrice:    int64(input.SalePrice * 100),
		Status:       enum.OrderStatusPendingApproval,
	}

	if input.PaymentStatus != "" {
		if !input.PaymentStatus.IsValid() {
			return nil, apperror.NewValidationError("Invalid payment status")
		}
		order.PaymentStatus = input.PaymentStatus
	} else {
		order.PaymentStatus = enum.PaymentStatusPending
	}

	// Agent attribution by id or referral code; absent means direct sale.
	var agent *entity.Agent
	if input.AgentID != nil {
		agent, err = s.agentRepo.GetByID(ctx, *input.AgentID)
		if err != nil {
			return nil, err
		}
		if agent == nil {
			return nil, apperror.NewNotFoundError("Agent")
		}
	} else if input.ReferralCode != "" {
		agent, err = s.agentRepo.GetByReferralCode(ctx, input.ReferralCode)
		if err != nil {
			return nil, err
		}
		if agent == nil {
			return nil, apperror.NewNotFoundError("Agent")
		}
	}
	if agent != nil {
		if agent.Status != enum.AgentStatusActive {
			return nil, apperror.NewValidationError("Agent is not active")
		}
		order.AgentID = &agent.ID
		order.CommissionAmount = agent.BaseCommission
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	return order, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders retrieves orders with filtering and pagination
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, p), nil
}

// Approve moves a pending order to approved, mints its portfolio slug, and
// creates the public customer record. Re-approving an order that already has
// a slug is a no-op returning the existing slug.
func (s *OrderService) Approve(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.PortfolioSlug != nil {
		return order, nil
	}
	if order.Status != enum.OrderStatusPendingApproval {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), enum.OrderStatusApproved.String())
	}

	slug, err := s.mintSlug(ctx, order.CustomerName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = enum.OrderStatusApproved
	order.ApprovedAt = &now
	order.PortfolioSlug = &slug

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	customer := &entity.Customer{
		OrderID: &order.ID,
		Slug:    slug,
		Name:    order.CustomerName,
		Company: order.Company,
		Phone:   order.Phone,
		Email:   order.Email,
		Status:  enum.CustomerStatusActive,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	if err := s.accrueCommission(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Reject moves a pending order to rejected, storing the reason verbatim.
func (s *OrderService) Reject(ctx context.Context, id uuid.UUID, reason string) (*entity.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.NewValidationError("Rejection reason is required")
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enum.OrderStatusPendingApproval {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), enum.OrderStatusRejected.String())
	}

	order.Status = enum.OrderStatusRejected
	order.RejectionReason = &reason

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	return order, nil
}

// Cancel moves a pending order to cancelled.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enum.OrderStatusPendingApproval {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), enum.OrderStatusCancelled.String())
	}

	order.Status = enum.OrderStatusCancelled
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	return order, nil
}

// Advance moves an order one step along the forward pipeline. Skipping or
// going backward fails with an invalid transition error.
func (s *OrderService) Advance(ctx context.Context, id uuid.UUID, toStatus enum.OrderStatus) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanAdvanceTo(toStatus) {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), toStatus.String())
	}
	if toStatus == enum.OrderStatusApproved {
		// Approval carries side effects and goes through Approve.
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), toStatus.String())
	}

	return s.applyStatus(ctx, order, toStatus)
}

// MoveToStatus re-statuses an order from a board drag. Drags may skip forward
// pipeline stages; every stage timestamp reached for the first time is set.
func (s *OrderService) MoveToStatus(ctx context.Context, id uuid.UUID, toStatus enum.OrderStatus) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == toStatus {
		return order, nil
	}

	if !order.Status.CanMoveTo(toStatus) {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), toStatus.String())
	}

	return s.applyStatus(ctx, order, toStatus)
}

// applyStatus writes the new status, stamps any lifecycle timestamps crossed
// for the first time, and accrues commission when the accrual stage is reached.
func (s *OrderService) applyStatus(ctx context.Context, order *entity.Order, toStatus enum.OrderStatus) (*entity.Order, error) {
	now := time.Now()
	order.Status = toStatus

	to := toStatus.PipelineIndex()
	if order.ShippedAt == nil && to >= enum.OrderStatusShipped.PipelineIndex() {
		order.ShippedAt = &now
	}
	if order.DeliveredAt == nil && to >= enum.OrderStatusDelivered.PipelineIndex() {
		order.DeliveredAt = &now
	}
	if order.PaidAt == nil && to >= enum.OrderStatusPaid.PipelineIndex() {
		order.PaidAt = &now
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	if err := s.accrueCommission(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// accrueCommission credits the agent's balance exactly once, when the order
// reaches or passes the configured accrual stage.
func (s *OrderService) accrueCommission(ctx context.Context, order *entity.Order) error {
	if order.AgentID == nil || order.CommissionAccruedAt != nil {
		return nil
	}
	if order.Status.PipelineIndex() < s.accrualStatus.PipelineIndex() {
		return nil
	}
	amount := order.EffectiveCommission()
	if amount <= 0 {
		return nil
	}

	if err := s.agentRepo.CreditBalance(ctx, *order.AgentID, amount); err != nil {
		return apperror.NewPersistenceError(err)
	}

	now := time.Now()
	order.CommissionAccruedAt = &now
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return apperror.NewPersistenceError(err)
	}
	return nil
}

// mintSlug derives a URL-safe slug from the customer name, suffixing it when
// another portfolio already claimed the plain form.
func (s *OrderService) mintSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "card"
	}

	exists, err := s.orderRepo.SlugExists(ctx, base)
	if err != nil {
		return "", apperror.NewPersistenceError(err)
	}
	if !exists {
		return base, nil
	}

	for i := 0; i < 5; i++ {
		candidate := utils.SlugWithSuffix(base)
		exists, err := s.orderRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", apperror.NewPersistenceError(err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", apperror.NewConflictError("Could not mint a unique portfolio slug")
}
