package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents where an order sits in the production pipeline
type OrderStatus string

const (
	OrderStatusPendingApproval OrderStatus = "pending_approval"
	OrderStatusApproved        OrderStatus = "approved"
	OrderStatusPrinting        OrderStatus = "printing"
	OrderStatusPrinted         OrderStatus = "printed"
	OrderStatusReadyToShip     OrderStatus = "ready_to_ship"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusRejected        OrderStatus = "rejected"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// pipelineOrder fixes the forward progression of an order through production.
// Rejected and cancelled sit outside the pipeline entirely.
var pipelineOrder = []OrderStatus{
	OrderStatusPendingApproval,
	OrderStatusApproved,
	OrderStatusPrinting,
	OrderStatusPrinted,
	OrderStatusReadyToShip,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusPaid,
}

// PipelineStatuses returns the forward pipeline in order.
func PipelineStatuses() []OrderStatus {
	out := make([]OrderStatus, len(pipelineOrder))
	copy(out, pipelineOrder)
	return out
}

// PipelineIndex returns the position of s in the pipeline, or -1 if s is
// terminal or unknown.
func (s OrderStatus) PipelineIndex() int {
	for i, st := range pipelineOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendingApproval, OrderStatusApproved, OrderStatusPrinting,
		OrderStatusPrinted, OrderStatusReadyToShip, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusPaid, OrderStatusRejected, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusRejected || s == OrderStatusCancelled || s == OrderStatusPaid
}

// IsPipeline reports whether s is part of the forward production pipeline.
func (s OrderStatus) IsPipeline() bool {
	return s.PipelineIndex() >= 0
}

// Next returns the immediate successor in the pipeline. The second return is
// false when s has no successor (last pipeline stage or terminal).
func (s OrderStatus) Next() (OrderStatus, bool) {
	i := s.PipelineIndex()
	if i < 0 || i == len(pipelineOrder)-1 {
		return s, false
	}
	return pipelineOrder[i+1], true
}

// CanAdvanceTo reports whether target is the immediate pipeline successor of s.
func (s OrderStatus) CanAdvanceTo(target OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// CanMoveTo reports whether a board drag may re-status an order from s to
// target. Drags may skip forward stages but never leave or re-enter the
// pipeline, and never move an order out of pending approval.
func (s OrderStatus) CanMoveTo(target OrderStatus) bool {
	if s == target {
		return true
	}
	from := s.PipelineIndex()
	to := target.PipelineIndex()
	if from < 0 || to < 0 {
		return false
	}
	// Approval is a decision, not a drag.
	if s == OrderStatusPendingApproval || target == OrderStatusPendingApproval {
		return false
	}
	return to > from
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = OrderStatus(str)
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPendingApproval
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(string(v))
	}
	return nil
}
