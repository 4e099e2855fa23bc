package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item
type Product struct {
	// Merchant-assigned id, e.g. "PROD-1700000000"
	ID        string         `gorm:"primaryKey;type:varchar(50)" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string          `gorm:"type:varchar(255)" json:"name"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	Price       float64         `gorm:"type:decimal(15,2)" json:"price"`
	Stock       int             `json:"stock"`
	Images      json.RawMessage `gorm:"type:jsonb" json:"images,omitempty"`
	Description string          `gorm:"type:text" json:"description"`
	IsTrending  bool            `gorm:"default:false" json:"isTrending"`
	IsLimited   bool            `gorm:"default:false" json:"isLimited"`
}
