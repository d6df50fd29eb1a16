package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Agent represents a commission-earning reseller. Balance fields are stored
// in paise and mutated only by payouts and commission accrual.
type Agent struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Phone        string    `gorm:"size:20;not null" json:"phone"`
	Email        string    `gorm:"size:255" json:"email,omitempty"`
	City         string    `gorm:"size:100" json:"city,omitempty"`
	ReferralCode string    `gorm:"size:50;uniqueIndex;not null" json:"referral_code"`

	// Payout destination
	UPIID          string `gorm:"size:100" json:"upi_id,omitempty"`
	BankAccount    string `gorm:"size:50" json:"bank_account,omitempty"`
	BankIFSC       string `gorm:"size:20" json:"bank_ifsc,omitempty"`
	BankHolderName string `gorm:"size:255" json:"bank_holder_name,omitempty"`

	BaseCommission   int64 `gorm:"default:0" json:"-"`
	TotalSales       int64 `gorm:"default:0" json:"total_sales"`
	TotalEarnings    int64 `gorm:"default:0" json:"-"`
	AvailableBalance int64 `gorm:"default:0" json:"-"`

	Status enum.AgentStatus `gorm:"size:20;not null;default:'active'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON converts paise to rupees for API responses
func (a Agent) MarshalJSON() ([]byte, error) {
	type Alias Agent
	return json.Marshal(&struct {
		Alias
		BaseCommission   float64 `json:"base_commission"`
		TotalEarnings    float64 `json:"total_earnings"`
		AvailableBalance float64 `json:"available_balance"`
	}{
		Alias:            Alias(a),
		BaseCommission:   float64(a.BaseCommission) / 100,
		TotalEarnings:    float64(a.TotalEarnings) / 100,
		AvailableBalance: float64(a.AvailableBalance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new agent
func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Agent model
func (Agent) TableName() string {
	return "agents"
}
