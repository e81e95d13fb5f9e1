package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// CartItem Model; one line per (user, product) pair
type CartItem struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`                           // UUID primary key
	UserID     string    `gorm:"type:char(36);not null;uniqueIndex:idx_user_product" json:"userId"`    // Foreign key to User
	ProductID  string    `gorm:"type:char(36);not null;uniqueIndex:idx_user_product" json:"productId"` // Foreign key to Product
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`                // The product in the cart
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`                           // Requested quantity
	PriceAtAdd float64   `gorm:"not null" json:"priceAtAdd"`                                   // Product price when the line was created
	CreatedAt  time.Time `json:"createdAt"`                                                    // Timestamp of creation
	UpdatedAt  time.Time `json:"updatedAt"`                                                    // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key
func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString() // Generate a UUIDv4
	}
	return nil
}
