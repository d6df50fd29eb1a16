package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber int64) (*entity.Order, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ListPipeline returns every non-terminal order with agent and design
	// preloaded, ordered by creation time. Feeds the kanban board snapshot.
	ListPipeline(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	// ListCODPending returns delivered orders still awaiting cash collection,
	// oldest delivery first.
	ListCODPending(ctx context.Context) ([]entity.Order, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.OrderStatus
	PaymentStatus *enum.PaymentStatus
	AgentID       *uuid.UUID
	DirectOnly    bool
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}
