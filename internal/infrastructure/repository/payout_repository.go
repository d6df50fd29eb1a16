package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	domainRepo "github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
	"gorm.io/gorm"
)

type payoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *gorm.DB) domainRepo.PayoutRepository {
	return &payoutRepository{db: db}
}

func (r *payoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payout, error) {
	var payout entity.Payout
	err := r.db.WithContext(ctx).Preload("Agent").First(&payout, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payout, err
}

func (r *payoutRepository) ListByAgent(ctx context.Context, agentID uuid.UUID, params *pagination.PaginationParams) ([]entity.Payout, int64, error) {
	var payouts []entity.Payout
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payout{}).Where("agent_id = ?", agentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("processed_at DESC").
		Find(&payouts).Error

	return payouts, total, err
}

func (r *payoutRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payout, int64, error) {
	var payouts []entity.Payout
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payout{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Agent").
		Order("processed_at DESC").
		Find(&payouts).Error

	return payouts, total, err
}
