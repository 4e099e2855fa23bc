package models

import (
	"time"

	"gorm.io/gorm"
)

// SupportRequestStatus represents the handling state of a support ticket
type SupportRequestStatus string

const (
	SupportRequestStatusPending  SupportRequestStatus = "PENDING"
	SupportRequestStatusResolved SupportRequestStatus = "RESOLVED"
)

// SupportRequest represents a customer support ticket
type SupportRequest struct {
	// Merchant-assigned id, e.g. "SUP-1700000000"
	ID        string         `gorm:"primaryKey;type:varchar(50)" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name    string               `gorm:"type:varchar(255)" json:"name"`
	Email   string               `gorm:"type:varchar(255)" json:"email"`
	OrderID string               `gorm:"type:varchar(100)" json:"orderId,omitempty"`
	Subject string               `gorm:"type:varchar(255)" json:"subject"`
	Message string               `gorm:"type:text" json:"message"`
	Status  SupportRequestStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
}
