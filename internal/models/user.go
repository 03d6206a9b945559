package models

import (
	"time"

	"gorm.io/gorm"
)

// User account statuses
const (
	UserStatusActive = "active"
	UserStatusLocked = "locked"
)

type User struct {
	gorm.Model
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	Name                string     `gorm:"not null" json:"name"`
	Role                string     `gorm:"default:'user'" json:"role"`
	Balance             float64    `gorm:"default:0" json:"balance"`
	Status              string     `gorm:"default:'active'" json:"status"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
	LastLoginIP         string     `json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	TokenVersion        int        `gorm:"default:1" json:"-"`
}

// CreateUserInput is the payload for registering a new account.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user support admin"`
}

// Recipient is the catalogue entry shown when picking who to send money to.
type Recipient struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Balance float64 `json:"balance"`
}
