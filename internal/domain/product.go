package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Product Model
type Product struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`     // UUID primary key
	Name        string    `gorm:"not null" json:"name"`                   // Product name
	Description string    `gorm:"type:text" json:"description"`           // Optional description
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"` // Unit price, never negative
	Stock       int       `gorm:"not null;check:stock >= 0" json:"stock"` // Available inventory, never negative
	ImageURL    string    `gorm:"not null" json:"imageUrl"`               // URL of the product image
	CategoryID  string    `gorm:"type:char(36);not null;index" json:"categoryId"` // Foreign key to Category
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // Owning category
	CreatedAt   time.Time `json:"createdAt"`                              // Timestamp of creation
	UpdatedAt   time.Time `json:"updatedAt"`                              // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString() // Generate a UUIDv4
	}
	return nil
}
