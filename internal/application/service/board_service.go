package service

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/internal/infrastructure/redis"
	"github.com/prince-yadav810/taponce-api/internal/kanban"
)

// BoardService serves the kanban board: one working snapshot per operator
// session, with drags routed through a per-session dispatcher so optimistic
// mutations roll back when persistence fails.
type BoardService struct {
	orderRepo    repository.OrderRepository
	orderService *OrderService
	store        *redis.BoardStore

	mu          sync.Mutex
	dispatchers map[string]*kanban.Dispatcher
}

// NewBoardService creates a new board service
func NewBoardService(orderRepo repository.OrderRepository, orderService *OrderService, store *redis.BoardStore) *BoardService {
	return &BoardService{
		orderRepo:    orderRepo,
		orderService: orderService,
		store:        store,
		dispatchers:  make(map[string]*kanban.Dispatcher),
	}
}

// statusPersister adapts the order service's drag transition to the
// dispatcher's persistence hook.
type statusPersister struct {
	orderService *OrderService
}

func (p *statusPersister) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	_, err := p.orderService.MoveToStatus(ctx, id, status)
	return err
}

// LoadBoard returns the board columns for a session, honoring the search and
// agent filters. The full pipeline is loaded once per session and cached;
// a fetch failure degrades to an empty board with a logged warning.
func (s *BoardService) LoadBoard(ctx context.Context, sessionID, search, agentFilter string) ([]kanban.Column, error) {
	d, err := s.dispatcher(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: failed to load pipeline orders: %v", err)
		return kanban.Columns(nil), nil
	}

	snapshot := d.Snapshot()
	visible := kanban.VisibleOrders(snapshot.Orders, search, agentFilter)
	return kanban.Columns(visible), nil
}

// Drag applies a drag gesture for the session and persists any status change.
func (s *BoardService) Drag(ctx context.Context, sessionID string, sourceID uuid.UUID, target kanban.DropTarget) (*kanban.Mutation, error) {
	d, err := s.dispatcher(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	m, err := d.Dispatch(ctx, sourceID, target)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, d.Snapshot()); err != nil {
		log.Printf("Warning: failed to cache board snapshot: %v", err)
	}
	return m, nil
}

// RefreshBoard discards the session's working copy and refetches the pipeline.
func (s *BoardService) RefreshBoard(ctx context.Context, sessionID string) error {
	if err := s.store.Invalidate(ctx, sessionID); err != nil {
		log.Printf("Warning: failed to invalidate board snapshot: %v", err)
	}

	s.mu.Lock()
	delete(s.dispatchers, sessionID)
	s.mu.Unlock()
	return nil
}

// dispatcher returns the session's dispatcher, building it from the cached
// snapshot or a fresh pipeline fetch.
func (s *BoardService) dispatcher(ctx context.Context, sessionID string) (*kanban.Dispatcher, error) {
	s.mu.Lock()
	if d, ok := s.dispatchers[sessionID]; ok {
		s.mu.Unlock()
		return d, nil
	}
	s.mu.Unlock()

	snapshot, err := s.store.Load(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: failed to load cached board snapshot: %v", err)
	}
	if snapshot == nil {
		orders, err := s.orderRepo.ListPipeline(ctx)
		if err != nil {
			return nil, err
		}
		snapshot = kanban.NewSnapshot(orders)
		if err := s.store.Save(ctx, sessionID, snapshot); err != nil {
			log.Printf("Warning: failed to cache board snapshot: %v", err)
		}
	}

	d := kanban.NewDispatcher(snapshot, &statusPersister{orderService: s.orderService})

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.dispatchers[sessionID]; ok {
		return existing, nil
	}
	s.dispatchers[sessionID] = d
	return d, nil
}
