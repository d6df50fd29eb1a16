package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
)

// AgentService handles agent management and commission payouts
type AgentService struct {
	agentRepo  repository.AgentRepository
	payoutRepo repository.PayoutRepository
}

// NewAgentService creates a new agent service
func NewAgentService(agentRepo repository.AgentRepository, payoutRepo repository.PayoutRepository) *AgentService {
	return &AgentService{agentRepo: agentRepo, payoutRepo: payoutRepo}
}

// CreateAgentInput represents the create agent input. Money in rupees.
type CreateAgentInput struct {
	Name           string
	Phone          string
	Email          string
	City           string
	ReferralCode   string
	UPIID          string
	BankAccount    string
	BankIFSC       string
	BankHolderName string
	BaseCommission float64
}

// CreateAgent registers a new reseller
func (s *AgentService) CreateAgent(ctx context.Context, input *CreateAgentInput) (*entity.Agent, error) {
	if input.Name == "" || input.Phone == "" || input.ReferralCode == "" {
		return nil, apperror.NewValidationError("Name, phone and referral code are required")
	}

	existing, err := s.agentRepo.GetByReferralCode(ctx, input.ReferralCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Referral code already in use")
	}

	agent := &entity.Agent{
		Name:           input.Name,
		Phone:          input.Phone,
		Email:          input.Email,
		City:           input.City,
		ReferralCode:   input.ReferralCode,
		UPIID:          input.UPIID,
		BankAccount:    input.BankAccount,
		BankIFSC:       input.BankIFSC,
		BankHolderName: input.BankHolderName,
		BaseCommission: int64(input.BaseCommission * 100),
		Status:         enum.AgentStatusActive,
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	return agent, nil
}

// GetAgent retrieves an agent by ID
func (s *AgentService) GetAgent(ctx context.Context, id uuid.UUID) (*entity.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperror.NewNotFoundError("Agent")
	}
	return agent, nil
}

// ListAgents retrieves agents with filtering and pagination
func (s *AgentService) ListAgents(ctx context.Context, params *repository.AgentFilterParams) (*pagination.PaginatedResult[entity.Agent], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	agents, total, err := s.agentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(agents, p), nil
}

// UpdateAgentInput represents a partial agent update. Nil fields are left
// untouched. BaseCommission in rupees.
type UpdateAgentInput struct {
	Status         *string
	BaseCommission *float64
	City           *string
	UPIID          *string
	BankAccount    *string
	BankIFSC       *string
	BankHolderName *string
}

// UpdateAgent applies a partial update to an agent
func (s *AgentService) UpdateAgent(ctx context.Context, id uuid.UUID, input *UpdateAgentInput) (*entity.Agent, error) {
	if input.Status != nil && !enum.AgentStatus(*input.Status).IsValid() {
		return nil, apperror.NewValidationError("Invalid agent status")
	}

	agent, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		agent.Status = enum.AgentStatus(*input.Status)
	}
	if input.BaseCommission != nil {
		agent.BaseCommission = int64(*input.BaseCommission * 100)
	}
	if input.City != nil {
		agent.City = *input.City
	}
	if input.UPIID != nil {
		agent.UPIID = *input.UPIID
	}
	if input.BankAccount != nil {
		agent.BankAccount = *input.BankAccount
	}
	if input.BankIFSC != nil {
		agent.BankIFSC = *input.BankIFSC
	}
	if input.BankHolderName != nil {
		agent.BankHolderName = *input.BankHolderName
	}

	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	return agent, nil
}

// PayoutInput represents a payout request. Amount in rupees.
type PayoutInput struct {
	AgentID     uuid.UUID
	Amount      float64
	Method      enum.PayoutMethod
	Notes       string
	ProcessedBy uuid.UUID
}

// Payout settles part of an agent's unpaid commission. The balance check and
// decrement are a single conditional update at the store, so two concurrent
// payouts can never overdraw; the audit row and agent_commission expense land
// in the same transaction.
func (s *AgentService) Payout(ctx context.Context, input *PayoutInput) (*entity.Payout, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError("Payout amount must be greater than zero")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewValidationError("Payout method must be upi or bank")
	}

	agent, err := s.GetAgent(ctx, input.AgentID)
	if err != nil {
		return nil, err
	}

	amount := int64(input.Amount * 100)
	if amount > agent.AvailableBalance {
		return nil, apperror.NewInsufficientBalanceError(float64(agent.AvailableBalance) / 100)
	}

	payout := &entity.Payout{
		AgentID:     agent.ID,
		Amount:      amount,
		Method:      input.Method,
		Notes:       input.Notes,
		ProcessedBy: input.ProcessedBy,
		ProcessedAt: time.Now(),
	}

	ok, err := s.agentRepo.DebitBalance(ctx, payout)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if !ok {
		// Balance changed between read and write; report the live balance.
		current, err := s.GetAgent(ctx, input.AgentID)
		if err != nil {
			return nil, err
		}
		return nil, apperror.NewInsufficientBalanceError(float64(current.AvailableBalance) / 100)
	}

	return payout, nil
}

// ListPayouts retrieves the payout audit trail
func (s *AgentService) ListPayouts(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Payout], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}

	payouts, total, err := s.payoutRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(payouts, p), nil
}

// ListAgentPayouts retrieves payouts for one agent
func (s *AgentService) ListAgentPayouts(ctx context.Context, agentID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Payout], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}

	if _, err := s.GetAgent(ctx, agentID); err != nil {
		return nil, err
	}

	payouts, total, err := s.payoutRepo.ListByAgent(ctx, agentID, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(payouts, p), nil
}
