package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a smart-card order moving through the production pipeline.
// Money fields are stored in paise.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber int64     `gorm:"autoIncrement;uniqueIndex;not null" json:"order_number"`

	// Customer contact details captured at intake
	CustomerName string `gorm:"size:255;not null" json:"customer_name"`
	Company      string `gorm:"size:255" json:"company,omitempty"`
	Phone        string `gorm:"size:20;not null" json:"phone"`
	Email        string `gorm:"size:255" json:"email,omitempty"`
	WhatsApp     string `gorm:"size:20" json:"whatsapp,omitempty"`

	// Card configuration
	CardDesignID uuid.UUID `gorm:"type:uuid;not null;index" json:"card_design_id"`
	Line1Text    string    `gorm:"size:100" json:"line1_text,omitempty"`
	Line2Text    string    `gorm:"size:100" json:"line2_text,omitempty"`

	// Commercial snapshot. MSPAtOrder is frozen at creation and never updated,
	// even when the design's base MSP changes later.
	MSPAtOrder         int64 `gorm:"not null" json:"-"`
	SalePrice          int64 `gorm:"not null" json:"-"`
	CommissionAmount   int64 `gorm:"default:0" json:"-"`
	OverrideCommission int64 `gorm:"default:0" json:"-"`

	// Attribution. Nil AgentID means a direct sale.
	AgentID *uuid.UUID `gorm:"type:uuid;index" json:"agent_id,omitempty"`

	Status        enum.OrderStatus   `gorm:"size:30;not null;default:'pending_approval';index" json:"status"`
	PaymentStatus enum.PaymentStatus `gorm:"size:20;not null;default:'pending';index" json:"payment_status"`

	// Lifecycle timestamps, each set exactly once
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`

	// Set on approval; exists iff the order has passed through approved
	PortfolioSlug *string `gorm:"size:255;uniqueIndex" json:"portfolio_slug,omitempty"`

	// Set only when status becomes rejected
	RejectionReason *string `gorm:"type:text" json:"rejection_reason,omitempty"`

	// Marks that the agent's balance was credited for this order
	CommissionAccruedAt *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	CardDesign *CardDesign `gorm:"foreignKey:CardDesignID" json:"card_design,omitempty"`
	Agent      *Agent      `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}

// IsBelowMSP reports whether the sale price undercuts the MSP snapshot.
// Always computed, never persisted.
func (o *Order) IsBelowMSP() bool {
	return o.SalePrice < o.MSPAtOrder
}

// IsDirectSale reports whether the order has no agent attribution.
func (o *Order) IsDirectSale() bool {
	return o.AgentID == nil
}

// EffectiveCommission returns the commission owed in paise, honoring any
// manual override.
func (o *Order) EffectiveCommission() int64 {
	if o.OverrideCommission != 0 {
		return o.OverrideCommission
	}
	return o.CommissionAmount
}

// MarshalJSON converts paise to rupees and surfaces the derived flags
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		MSPAtOrder         float64 `json:"msp_at_order"`
		SalePrice          float64 `json:"sale_price"`
		CommissionAmount   float64 `json:"commission_amount"`
		OverrideCommission float64 `json:"override_commission"`
		IsBelowMSP         bool    `json:"is_below_msp"`
		IsDirectSale       bool    `json:"is_direct_sale"`
	}{
		Alias:              Alias(o),
		MSPAtOrder:         float64(o.MSPAtOrder) / 100,
		SalePrice:          float64(o.SalePrice) / 100,
		CommissionAmount:   float64(o.CommissionAmount) / 100,
		OverrideCommission: float64(o.OverrideCommission) / 100,
		IsBelowMSP:         o.IsBelowMSP(),
		IsDirectSale:       o.IsDirectSale(),
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
