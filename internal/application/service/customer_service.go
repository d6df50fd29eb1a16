package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
)

// CustomerService handles customer portfolio operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerBySlug retrieves a customer portfolio by its public slug
func (s *CustomerService) GetCustomerBySlug(ctx context.Context, slug string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers retrieves customers with filtering and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) (*pagination.PaginatedResult[entity.Customer], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(customers, p), nil
}

// UpdateCustomerInput represents a partial profile update. Nil fields are
// left untouched.
type UpdateCustomerInput struct {
	Name      *string
	Company   *string
	Phone     *string
	Email     *string
	Bio       *string
	AvatarURL *string
	Website   *string
	Instagram *string
	LinkedIn  *string
	Status    *string
}

// UpdateCustomer applies a partial update to a customer portfolio. Suspending
// or reactivating never touches the originating order.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	if input.Status != nil && !enum.CustomerStatus(*input.Status).IsValid() {
		return nil, apperror.NewValidationError("Invalid customer status")
	}

	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Company != nil {
		customer.Company = *input.Company
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Bio != nil {
		customer.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		customer.AvatarURL = *input.AvatarURL
	}
	if input.Website != nil {
		customer.Website = *input.Website
	}
	if input.Instagram != nil {
		customer.Instagram = *input.Instagram
	}
	if input.LinkedIn != nil {
		customer.LinkedIn = *input.LinkedIn
	}
	if input.Status != nil {
		customer.Status = enum.CustomerStatus(*input.Status)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	return customer, nil
}
