package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Headphone represents a product in the catalog. Brand and type references
// are nullable at the storage layer; deleting a brand or type leaves the
// headphone with a dangling reference on purpose.
type Headphone struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Price     int       `json:"price" gorm:"not null;default:0"`
	BrandID   *string   `json:"brand_id" gorm:"type:uuid"`
	TypeID    *string   `json:"type_id" gorm:"type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Brand *Brand       `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Type  *ProductType `json:"type,omitempty" gorm:"foreignKey:TypeID"`
}

// TableName returns the table name for the Headphone model
func (Headphone) TableName() string {
	return "headphones"
}

// BeforeCreate hook to assign the ID
func (h *Headphone) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// BrandName returns the joined brand name or a placeholder
func (h *Headphone) BrandName() string {
	if h.Brand != nil {
		return h.Brand.Name
	}
	return "Chưa rõ"
}

// TypeName returns the joined type name or a placeholder
func (h *Headphone) TypeName() string {
	if h.Type != nil {
		return h.Type.Name
	}
	return "Chưa rõ"
}
