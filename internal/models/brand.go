package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand represents a headphone manufacturer
type Brand struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Headphones []Headphone `json:"headphones,omitempty" gorm:"foreignKey:BrandID"`
}

// TableName returns the table name for the Brand model
func (Brand) TableName() string {
	return "brands"
}

// BeforeCreate hook to assign the ID
func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
