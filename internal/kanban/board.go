package kanban

import (
	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
)

// Snapshot holds the board's working copy of the pipeline: a flat slice of
// orders in display order, spanning all columns. Column membership is derived
// from each order's status.
type Snapshot struct {
	Orders []entity.Order `json:"orders"`
}

// Column is one kanban bucket: all visible orders sharing a pipeline status.
type Column struct {
	Status enum.OrderStatus `json:"status"`
	Orders []entity.Order   `json:"orders"`
}

// NewSnapshot copies orders into a fresh snapshot.
func NewSnapshot(orders []entity.Order) *Snapshot {
	s := &Snapshot{Orders: make([]entity.Order, len(orders))}
	copy(s.Orders, orders)
	return s
}

// IndexOf returns the position of the order in the flat sequence, or -1.
func (s *Snapshot) IndexOf(id uuid.UUID) int {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a pointer to the order in place, or nil.
func (s *Snapshot) Get(id uuid.UUID) *entity.Order {
	i := s.IndexOf(id)
	if i < 0 {
		return nil
	}
	return &s.Orders[i]
}

// Columns partitions the visible orders into one column per pipeline status.
// Every order lands in exactly one column; terminal statuses are not rendered
// on the board. Empty columns are included so drops on them resolve.
func Columns(orders []entity.Order) []Column {
	statuses := enum.PipelineStatuses()
	cols := make([]Column, len(statuses))
	byStatus := make(map[enum.OrderStatus]int, len(statuses))
	for i, st := range statuses {
		cols[i] = Column{Status: st, Orders: []entity.Order{}}
		byStatus[st] = i
	}
	for _, o := range orders {
		if i, ok := byStatus[o.Status]; ok {
			cols[i].Orders = append(cols[i].Orders, o)
		}
	}
	return cols
}
