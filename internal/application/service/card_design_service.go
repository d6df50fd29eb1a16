package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
)

// CardDesignService manages the card catalog. MSP changes here never touch
// existing orders, which carry their own MSP snapshot.
type CardDesignService struct {
	designRepo repository.CardDesignRepository
}

// NewCardDesignService creates a new card design service
func NewCardDesignService(designRepo repository.CardDesignRepository) *CardDesignService {
	return &CardDesignService{designRepo: designRepo}
}

// CreateCardDesignInput carries a new catalog entry, MSP in rupees
type CreateCardDesignInput struct {
	Name    string
	BaseMSP float64
}

// CreateCardDesign adds a design to the catalog
func (s *CardDesignService) CreateCardDesign(ctx context.Context, input *CreateCardDesignInput) (*entity.CardDesign, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError("Design name is required")
	}
	if input.BaseMSP <= 0 {
		return nil, apperror.NewValidationError("Base MSP must be greater than zero")
	}

	existing, err := s.designRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A design with this name already exists")
	}

	design := &entity.CardDesign{
		Name:    input.Name,
		BaseMSP: int64(input.BaseMSP * 100),
		Active:  true,
	}
	if err := s.designRepo.Create(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

// UpdateCardDesignInput carries a partial catalog update
type UpdateCardDesignInput struct {
	Name    *string
	BaseMSP *float64
	Active  *bool
}

// UpdateCardDesign applies a partial update to a catalog entry
func (s *CardDesignService) UpdateCardDesign(ctx context.Context, id uuid.UUID, input *UpdateCardDesignInput) (*entity.CardDesign, error) {
	design, err := s.designRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if design == nil {
		return nil, apperror.NewNotFoundError("Card design")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewValidationError("Design name is required")
		}
		design.Name = *input.Name
	}
	if input.BaseMSP != nil {
		if *input.BaseMSP <= 0 {
			return nil, apperror.NewValidationError("Base MSP must be greater than zero")
		}
		design.BaseMSP = int64(*input.BaseMSP * 100)
	}
	if input.Active != nil {
		design.Active = *input.Active
	}

	if err := s.designRepo.Update(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

// ListCardDesigns lists the catalog, optionally only active designs
func (s *CardDesignService) ListCardDesigns(ctx context.Context, activeOnly bool) ([]entity.CardDesign, error) {
	return s.designRepo.List(ctx, activeOnly)
}
