package models

import (
	"encoding/json"
	"time"
)

// SiteConfig holds the site-wide content document (hero text, banners,
// featured collections) as a single jsonb row keyed by a fixed id.
type SiteConfig struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Data      json.RawMessage `gorm:"type:jsonb" json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SiteConfigID is the fixed row id of the single config document
const SiteConfigID uint = 1
