package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
)

// CardDesignRepository defines the interface for card design data operations
type CardDesignRepository interface {
	Create(ctx context.Context, design *entity.CardDesign) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CardDesign, error)
	GetByName(ctx context.Context, name string) (*entity.CardDesign, error)
	Update(ctx context.Context, design *entity.CardDesign) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.CardDesign, error)
}
