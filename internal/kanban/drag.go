package kanban

import (
	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
)

// DragActivationDistance is the minimum pointer travel, in pixels, before a
// gesture counts as a drag rather than a click.
const DragActivationDistance = 3

// IsDragGesture reports whether pointer movement crosses the drag threshold.
// Below it the gesture is a click and should open the order detail instead.
func IsDragGesture(dx, dy float64) bool {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx >= DragActivationDistance || dy >= DragActivationDistance
}

// DropTarget identifies where a dragged card was released: over another card
// (positional) or over a column (status only). A zero target means the drop
// landed outside any droppable area.
type DropTarget struct {
	OrderID *uuid.UUID        `json:"order_id,omitempty"`
	Column  *enum.OrderStatus `json:"column,omitempty"`
}

// Mutation records a single applied board change so it can be reverted if the
// persistence call fails.
type Mutation struct {
	OrderID       uuid.UUID
	FromStatus    enum.OrderStatus
	ToStatus      enum.OrderStatus
	FromIndex     int
	ToIndex       int
	StatusChanged bool
}

// ApplyDrag applies a drag gesture to the snapshot in place and returns the
// mutation that was performed. A nil mutation with nil error means the drop
// was a no-op (dropped on itself or outside any target).
func ApplyDrag(s *Snapshot, sourceID uuid.UUID, target DropTarget) (*Mutation, error) {
	if target.OrderID == nil && target.Column == nil {
		return nil, nil
	}
	if target.OrderID != nil && *target.OrderID == sourceID {
		return nil, nil
	}

	srcIdx := s.IndexOf(sourceID)
	if srcIdx < 0 {
		return nil, apperror.NewNotFoundError("Order")
	}
	src := &s.Orders[srcIdx]

	if target.OrderID != nil {
		dstIdx := s.IndexOf(*target.OrderID)
		if dstIdx < 0 {
			return nil, apperror.NewNotFoundError("Target order")
		}
		dst := &s.Orders[dstIdx]

		if src.Status == dst.Status {
			// Same column: pure reorder, display only.
			m := &Mutation{
				OrderID:    sourceID,
				FromStatus: src.Status,
				ToStatus:   src.Status,
				FromIndex:  srcIdx,
				ToIndex:    dstIdx,
			}
			arrayMove(s.Orders, srcIdx, dstIdx)
			return m, nil
		}

		// Cross-column: restatus, then insert before the target's prior position.
		if !src.Status.CanMoveTo(dst.Status) {
			return nil, apperror.NewInvalidTransitionError(src.Status.String(), dst.Status.String())
		}
		m := &Mutation{
			OrderID:       sourceID,
			FromStatus:    src.Status,
			ToStatus:      dst.Status,
			FromIndex:     srcIdx,
			ToIndex:       insertBeforeIndex(srcIdx, dstIdx),
			StatusChanged: true,
		}
		src.Status = dst.Status
		arrayMove(s.Orders, srcIdx, m.ToIndex)
		return m, nil
	}

	// Drop over a column: restatus only, position unchanged.
	col := *target.Column
	if src.Status == col {
		return nil, nil
	}
	if !src.Status.CanMoveTo(col) {
		return nil, apperror.NewInvalidTransitionError(src.Status.String(), col.String())
	}
	m := &Mutation{
		OrderID:       sourceID,
		FromStatus:    src.Status,
		ToStatus:      col,
		FromIndex:     srcIdx,
		ToIndex:       srcIdx,
		StatusChanged: true,
	}
	src.Status = col
	return m, nil
}

// Revert undoes the mutation on the snapshot, restoring both position and
// status to their pre-drag values.
func (m *Mutation) Revert(s *Snapshot) {
	idx := s.IndexOf(m.OrderID)
	if idx < 0 {
		return
	}
	s.Orders[idx].Status = m.FromStatus
	arrayMove(s.Orders, idx, m.FromIndex)
}

// arrayMove shifts the element at from to position to, sliding the elements
// in between.
func arrayMove[T any](a []T, from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(a) || to >= len(a) {
		return
	}
	v := a[from]
	if from < to {
		copy(a[from:to], a[from+1:to+1])
	} else {
		copy(a[to+1:from+1], a[to:from])
	}
	a[to] = v
}

// insertBeforeIndex computes the final flat index when the source is removed
// and re-inserted immediately before the target's prior position.
func insertBeforeIndex(srcIdx, dstIdx int) int {
	if srcIdx < dstIdx {
		return dstIdx - 1
	}
	return dstIdx
}
