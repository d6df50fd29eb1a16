package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	domainRepo "github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cardDesignRepository struct {
	db *gorm.DB
}

// NewCardDesignRepository creates a new card design repository
func NewCardDesignRepository(db *gorm.DB) domainRepo.CardDesignRepository {
	return &cardDesignRepository{db: db}
}

func (r *cardDesignRepository) Create(ctx context.Context, design *entity.CardDesign) error {
	return r.db.WithContext(ctx).Create(design).Error
}

func (r *cardDesignRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CardDesign, error) {
	var design entity.CardDesign
	err := r.db.WithContext(ctx).First(&design, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &design, err
}

func (r *cardDesignRepository) GetByName(ctx context.Context, name string) (*entity.CardDesign, error) {
	var design entity.CardDesign
	err := r.db.WithContext(ctx).First(&design, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &design, err
}

func (r *cardDesignRepository) Update(ctx context.Context, design *entity.CardDesign) error {
	return r.db.WithContext(ctx).Save(design).Error
}

func (r *cardDesignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CardDesign{}, "id = ?", id).Error
}

func (r *cardDesignRepository) List(ctx context.Context, activeOnly bool) ([]entity.CardDesign, error) {
	var designs []entity.CardDesign
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&designs).Error
	return designs, err
}
