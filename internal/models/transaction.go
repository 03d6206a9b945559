package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeTransfer   = "transfer"
	TransactionTypePayment    = "payment"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

type Transaction struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Reference       string    `gorm:"uniqueIndex" json:"reference"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Type            string    `gorm:"not null" json:"type"`
	Amount          float64   `gorm:"not null" json:"amount"`
	RecipientID     *uint     `gorm:"index" json:"recipient_id,omitempty"`
	CustomRecipient string    `json:"custom_recipient,omitempty"`
	Description     string    `json:"description,omitempty"`
	DeviceInfo      string    `gorm:"index" json:"device_info,omitempty"`
	IPAddress       string    `gorm:"index" json:"ip_address,omitempty"`
	Location        string    `json:"location,omitempty"`
	RiskScore       int       `gorm:"not null;default:0" json:"risk_score"`
	Status          string    `gorm:"not null;default:'pending'" json:"status"`
	Currency        string    `gorm:"default:'USD'" json:"currency"`
	Metadata        JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
