package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer represents the public-facing portfolio created when an order is
// approved. Its lifecycle is independent of the order after creation.
type Customer struct {
	ID      uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OrderID *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`

	Slug    string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Company string `gorm:"size:255" json:"company,omitempty"`
	Phone   string `gorm:"size:20" json:"phone,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`

	// Public profile attributes
	Bio       string `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL string `gorm:"size:500" json:"avatar_url,omitempty"`
	Website   string `gorm:"size:500" json:"website,omitempty"`
	Instagram string `gorm:"size:255" json:"instagram,omitempty"`
	LinkedIn  string `gorm:"size:255" json:"linkedin,omitempty"`

	Status enum.CustomerStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
