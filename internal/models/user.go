package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Membership level labels shown on the account page
const (
	MembershipBasic = "BASIC MEMBER"
	MembershipElite = "ELITE MEMBER"
)

// User represents a storefront customer
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name  string `gorm:"type:varchar(255)" json:"name"`
	Phone string `gorm:"type:varchar(50)" json:"phone"`
	Email string `gorm:"type:varchar(255);uniqueIndex" json:"email"`

	IsElite      bool            `gorm:"default:false" json:"isElite"`
	Level        string          `gorm:"type:varchar(50);default:'BASIC MEMBER'" json:"level"`
	ShippingInfo json.RawMessage `gorm:"type:jsonb" json:"shippingInfo,omitempty"`
}
