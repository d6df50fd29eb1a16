package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Expense represents a business cost. Created manually by an operator, or
// synthesized under agent_commission when a payout is recorded.
type Expense struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Category    enum.ExpenseCategory `gorm:"size:30;not null;index" json:"category"`
	Amount      int64                `gorm:"not null" json:"-"`
	Description string               `gorm:"type:text" json:"description,omitempty"`
	Date        time.Time            `gorm:"type:date;not null;index" json:"date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON converts paise to rupees for API responses
func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
