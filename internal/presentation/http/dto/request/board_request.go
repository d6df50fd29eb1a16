package request

import "github.com/google/uuid"

// DragRequest represents a drop reported by the board UI. Exactly one of
// over_order_id and over_column must be set; neither means the card was
// dropped outside the board.
type DragRequest struct {
	OrderID     uuid.UUID  `json:"order_id" binding:"required"`
	OverOrderID *uuid.UUID `json:"over_order_id"`
	OverColumn  *string    `json:"over_column"`
}
