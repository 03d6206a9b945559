package models

import (
	"time"

	"gorm.io/gorm"
)

// Support ticket statuses
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

type SupportTicket struct {
	gorm.Model
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	Subject         string     `gorm:"not null" json:"subject"`
	Message         string     `gorm:"not null;type:text" json:"message"`
	Status          string     `gorm:"not null;default:'open';index" json:"status"`
	AssignedTo      *uint      `json:"assigned_to,omitempty"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

// TicketDetail joins the ticket with the reporter's and assignee's names
// for the admin console view.
type TicketDetail struct {
	SupportTicket
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	StaffName string `json:"staff_name,omitempty"`
}
