package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Role of a user; gates catalog mutations
type Role string

const (
	RoleUser  Role = "user"  // Regular customer
	RoleAdmin Role = "admin" // Catalog administrator
)

// User Model
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`        // UUID primary key
	Name      string    `gorm:"not null" json:"name"`                      // Display name
	Email     string    `gorm:"unique;not null" json:"email"`              // Unique email, used for login
	Password  string    `gorm:"not null" json:"-"`                         // Bcrypt hash, never serialized
	Role      Role      `gorm:"type:varchar(10);default:user" json:"role"` // Role: user or admin
	CreatedAt time.Time `json:"createdAt"`                                 // Timestamp of creation
	UpdatedAt time.Time `json:"updatedAt"`                                 // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString() // Generate a UUIDv4
	}
	return nil
}
