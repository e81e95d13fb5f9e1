package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Category Model
type Category struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"` // UUID primary key
	Name        string    `gorm:"unique;not null" json:"name"`        // Unique category name
	Description string    `json:"description"`                        // Optional description
	Products    []Product `gorm:"constraint:OnDelete:CASCADE;" json:"products,omitempty"` // Products in this category
	CreatedAt   time.Time `json:"createdAt"`                          // Timestamp of creation
	UpdatedAt   time.Time `json:"updatedAt"`                          // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString() // Generate a UUIDv4
	}
	return nil
}
