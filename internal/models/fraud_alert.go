package models

import (
	"time"

	"gorm.io/gorm"
)

// Fraud alert statuses
const (
	AlertStatusNew       = "new"
	AlertStatusReviewing = "reviewing"
	AlertStatusResolved  = "resolved"
	AlertStatusDismissed = "dismissed"
)

// FraudAlert is created when a transaction's risk score crosses the review
// threshold. It stays open until an admin reviews it.
type FraudAlert struct {
	gorm.Model
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	TransactionID uint       `gorm:"not null;index" json:"transaction_id"`
	Description   string     `gorm:"not null" json:"description"`
	Status        string     `gorm:"not null;default:'new';index" json:"status"`
	RiskScore     int        `gorm:"not null;index" json:"risk_score"`
	Resolution    string     `json:"resolution,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}
