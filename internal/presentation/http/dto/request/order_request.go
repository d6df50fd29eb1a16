package request

import "github.com/google/uuid"

// CreateOrderRequest represents an order intake request
type CreateOrderRequest struct {
	CustomerName  string     `json:"customer_name" binding:"required"`
	Company       string     `json:"company"`
	Phone         string     `json:"phone" binding:"required"`
	Email         string     `json:"email"`
	WhatsApp      string     `json:"whatsapp"`
	CardDesignID  uuid.UUID  `json:"card_design_id" binding:"required"`
	Line1Text     string     `json:"line1_text"`
	Line2Text     string     `json:"line2_text"`
	SalePrice     float64    `json:"sale_price" binding:"required,gt=0"`
	AgentID       *uuid.UUID `json:"agent_id"`
	ReferralCode  string     `json:"referral_code"`
	PaymentStatus string     `json:"payment_status"`
}

// RejectOrderRequest carries the mandatory rejection reason
type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

// AdvanceOrderRequest names the status an order should advance to
type AdvanceOrderRequest struct {
	Status string `json:"status" binding:"required"`
}
