package kanban

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
)

// StatusPersister confirms a status change with the data store.
type StatusPersister interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
}

// Dispatcher routes every board mutation through a single apply-confirm-revert
// path. The snapshot is mutated optimistically before the persistence call; a
// failed confirmation rolls the snapshot back and surfaces a retryable error.
// While a confirmation for an order is in flight, further drags of that order
// are refused so confirmations cannot interleave out of order.
type Dispatcher struct {
	mu        sync.Mutex
	snapshot  *Snapshot
	persister StatusPersister
	inFlight  map[uuid.UUID]bool
}

// NewDispatcher creates a dispatcher over the given snapshot.
func NewDispatcher(snapshot *Snapshot, persister StatusPersister) *Dispatcher {
	return &Dispatcher{
		snapshot:  snapshot,
		persister: persister,
		inFlight:  make(map[uuid.UUID]bool),
	}
}

// Snapshot returns a copy of the current board state.
func (d *Dispatcher) Snapshot() *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return NewSnapshot(d.snapshot.Orders)
}

// Dispatch applies a drag gesture optimistically, confirms any status change
// with the persister, and reverts the local mutation when confirmation fails.
func (d *Dispatcher) Dispatch(ctx context.Context, sourceID uuid.UUID, target DropTarget) (*Mutation, error) {
	d.mu.Lock()
	if d.inFlight[sourceID] {
		d.mu.Unlock()
		return nil, apperror.NewConflictError("Order has a pending status change")
	}

	m, err := ApplyDrag(d.snapshot, sourceID, target)
	if err != nil || m == nil {
		d.mu.Unlock()
		return nil, err
	}
	if !m.StatusChanged {
		// Pure reorder, nothing to confirm.
		d.mu.Unlock()
		return m, nil
	}

	d.inFlight[sourceID] = true
	d.mu.Unlock()

	persistErr := d.persister.UpdateStatus(ctx, sourceID, m.ToStatus)

	d.mu.Lock()
	delete(d.inFlight, sourceID)
	if persistErr != nil {
		m.Revert(d.snapshot)
		d.mu.Unlock()
		return nil, apperror.NewPersistenceError(persistErr)
	}
	d.mu.Unlock()

	return m, nil
}

// Reload replaces the working snapshot, discarding local state. Used after a
// rejected write to re-sync with the store.
func (d *Dispatcher) Reload(snapshot *Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshot = snapshot
}
