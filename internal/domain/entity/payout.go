package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payout is the audit record of a commission settlement. The balance
// decrement itself happens in the same transaction that inserts this row.
type Payout struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	AgentID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"agent_id"`
	Amount      int64             `gorm:"not null" json:"-"`
	Method      enum.PayoutMethod `gorm:"size:10;not null" json:"method"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	ProcessedBy uuid.UUID         `gorm:"type:uuid;not null" json:"processed_by"`
	ProcessedAt time.Time         `gorm:"not null" json:"processed_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Agent *Agent `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}

// MarshalJSON converts paise to rupees for API responses
func (p Payout) MarshalJSON() ([]byte, error) {
	type Alias Payout
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payout
func (p *Payout) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payout model
func (Payout) TableName() string {
	return "payouts"
}
