package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductType represents a headphone category (bluetooth, gaming, wired, ...)
type ProductType struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Headphones []Headphone `json:"headphones,omitempty" gorm:"foreignKey:TypeID"`
}

// TableName returns the table name for the ProductType model
func (ProductType) TableName() string {
	return "types"
}

// BeforeCreate hook to assign the ID
func (t *ProductType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
