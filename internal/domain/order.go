package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// OrderStatus of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting fulfilment
	OrderStatusCompleted OrderStatus = "completed" // Order fulfilled
	OrderStatusCancelled OrderStatus = "cancelled" // Order cancelled
)

// Order Model
type Order struct {
	ID          string      `gorm:"type:char(36);primaryKey" json:"id"`                              // UUID primary key
	UserID      string      `gorm:"type:char(36);not null;index" json:"userId"`                      // Foreign key to User
	TotalAmount float64     `gorm:"not null" json:"totalAmount"`                                     // Sum of quantity * priceAtOrder over all items
	Status      OrderStatus `gorm:"type:varchar(10);default:pending" json:"status"`                  // Order status
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE;" json:"items"`    // Line items
	CreatedAt   time.Time   `json:"createdAt"`                                                       // Timestamp of creation
	UpdatedAt   time.Time   `json:"updatedAt"`                                                       // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString() // Generate a UUIDv4
	}
	return nil
}

// OrderItem Model; price snapshot taken at purchase time and never updated
type OrderItem struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`            // UUID primary key
	OrderID      string    `gorm:"type:char(36);not null;index" json:"orderId"`   // Foreign key to Order
	ProductID    string    `gorm:"type:char(36);not null" json:"productId"`       // Foreign key to Product
	Product      *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"` // The ordered product
	Quantity     int       `gorm:"not null" json:"quantity"`                      // Ordered quantity
	PriceAtOrder float64   `gorm:"not null" json:"priceAtOrder"`                  // Product price when the order was placed
	CreatedAt    time.Time `json:"createdAt"`                                     // Timestamp of creation
}

// BeforeCreate assigns a UUID primary key
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString() // Generate a UUIDv4
	}
	return nil
}
