package request

import "github.com/google/uuid"

// CreateAgentRequest represents an agent onboarding request
type CreateAgentRequest struct {
	Name           string  `json:"name" binding:"required"`
	Phone          string  `json:"phone" binding:"required"`
	Email          string  `json:"email"`
	City           string  `json:"city"`
	ReferralCode   string  `json:"referral_code" binding:"required"`
	UPIID          string  `json:"upi_id"`
	BankAccount    string  `json:"bank_account"`
	BankIFSC       string  `json:"bank_ifsc"`
	BankHolderName string  `json:"bank_holder_name"`
	BaseCommission float64 `json:"base_commission"`
}

// UpdateAgentRequest represents a partial agent update. Field names follow
// the admin frontend payload, like PayoutRequest.
type UpdateAgentRequest struct {
	Status         *string  `json:"status"`
	BaseCommission *float64 `json:"baseCommission"`
	City           *string  `json:"city"`
	UPIID          *string  `json:"upiId"`
	BankAccount    *string  `json:"bankAccount"`
	BankIFSC       *string  `json:"bankIfsc"`
	BankHolderName *string  `json:"bankHolderName"`
}

// PayoutRequest represents a payout instruction against an agent's balance
type PayoutRequest struct {
	AgentID uuid.UUID `json:"agentId" binding:"required"`
	Amount  float64   `json:"amount" binding:"required"`
	Method  string    `json:"method" binding:"required"`
	Notes   string    `json:"notes"`
}
