package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardDesign represents a card template customers can order. BaseMSP is the
// floor price in paise; each order snapshots it at creation time.
type CardDesign struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	PreviewURL  string    `gorm:"size:500" json:"preview_url,omitempty"`
	BaseMSP     int64     `gorm:"not null" json:"-"`
	Active      bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON converts paise to rupees for API responses
func (d CardDesign) MarshalJSON() ([]byte, error) {
	type Alias CardDesign
	return json.Marshal(&struct {
		Alias
		BaseMSP float64 `json:"base_msp"`
	}{
		Alias:   Alias(d),
		BaseMSP: float64(d.BaseMSP) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new card design
func (d *CardDesign) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CardDesign model
func (CardDesign) TableName() string {
	return "card_designs"
}
