package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
)

// PayoutRepository defines the read side of the payout audit trail. Writes
// happen through AgentRepository.DebitBalance so the balance check and the
// audit insert share one transaction.
type PayoutRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payout, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID, params *pagination.PaginationParams) ([]entity.Payout, int64, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payout, int64, error)
}
