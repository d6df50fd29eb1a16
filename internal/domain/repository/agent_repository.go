package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
)

// AgentRepository defines the interface for agent data operations
type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error)
	GetByReferralCode(ctx context.Context, code string) (*entity.Agent, error)
	Update(ctx context.Context, agent *entity.Agent) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *AgentFilterParams) ([]entity.Agent, int64, error)
	// ListWithBalance returns agents holding unpaid commission, for the
	// liability report.
	ListWithBalance(ctx context.Context) ([]entity.Agent, error)
	// DebitBalance atomically decrements the agent's available balance only
	// when it covers the amount, inserting the payout audit row and the
	// matching commission expense in the same transaction.
	// Returns (true, nil) on success, (false, nil) when the balance is
	// insufficient at write time, (false, err) on infrastructure failure.
	DebitBalance(ctx context.Context, payout *entity.Payout) (bool, error)
	// CreditBalance atomically adds accrued commission to the agent's
	// available balance, lifetime earnings, and sales count.
	CreditBalance(ctx context.Context, id uuid.UUID, amount int64) error
}

// AgentFilterParams contains filtering parameters for agent queries
type AgentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *string
	City       string
	SortBy     string
	SortOrder  string
}
