package kanban

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
)

type fakePersister struct {
	mu      sync.Mutex
	calls   []enum.OrderStatus
	err     error
	release chan struct{}
}

func (f *fakePersister) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, status)
	return f.err
}

func TestDispatchConfirmsStatusChange(t *testing.T) {
	p := &fakePersister{}
	d := NewDispatcher(NewSnapshot(boardOrders()), p)

	m, err := d.Dispatch(context.Background(), orderRef(0), DropTarget{Column: statusRef(enum.OrderStatusShipped)})
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, []enum.OrderStatus{enum.OrderStatusShipped}, p.calls)
	assert.Equal(t, enum.OrderStatusShipped, d.Snapshot().Get(orderRef(0)).Status)
}

func TestDispatchRollsBackOnPersistenceFailure(t *testing.T) {
	p := &fakePersister{err: errors.New("connection reset")}
	d := NewDispatcher(NewSnapshot(boardOrders()), p)

	_, err := d.Dispatch(context.Background(), orderRef(0), DropTarget{Column: statusRef(enum.OrderStatusShipped)})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPersistence))

	// Optimistic mutation reverted.
	assert.Equal(t, enum.OrderStatusPrinting, d.Snapshot().Get(orderRef(0)).Status)
}

func TestDispatchSkipsPersistenceForPureReorder(t *testing.T) {
	p := &fakePersister{}
	d := NewDispatcher(NewSnapshot(boardOrders()), p)
	dst := orderRef(0)

	m, err := d.Dispatch(context.Background(), orderRef(1), DropTarget{OrderID: &dst})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.False(t, m.StatusChanged)
	assert.Empty(t, p.calls)
}

func TestDispatchRefusesSecondDragWhileInFlight(t *testing.T) {
	p := &fakePersister{release: make(chan struct{})}
	d := NewDispatcher(NewSnapshot(boardOrders()), p)

	done := make(chan error, 1)
	go func() {
		_, err := d.Dispatch(context.Background(), orderRef(0), DropTarget{Column: statusRef(enum.OrderStatusShipped)})
		done <- err
	}()

	// Wait until the first dispatch holds the in-flight guard.
	for {
		s := d.Snapshot()
		if s.Get(orderRef(0)).Status == enum.OrderStatusShipped {
			break
		}
	}

	_, err := d.Dispatch(context.Background(), orderRef(0), DropTarget{Column: statusRef(enum.OrderStatusDelivered)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending status change")

	close(p.release)
	require.NoError(t, <-done)
}

func TestDispatchNoOpReturnsNil(t *testing.T) {
	p := &fakePersister{}
	d := NewDispatcher(NewSnapshot(boardOrders()), p)

	m, err := d.Dispatch(context.Background(), orderRef(0), DropTarget{})
	assert.NoError(t, err)
	assert.Nil(t, m)
	assert.Empty(t, p.calls)
}
