package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the payment state of an order
type OrderStatus string

const (
	// OrderStatusPending is the initial status, set before the gateway exchange begins
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusPaid means the gateway reported success and the callback signature verified
	OrderStatusPaid OrderStatus = "PAID"
	// OrderStatusFailed means the gateway reported failure or the payer cancelled
	OrderStatusFailed OrderStatus = "FAILED"
	// OrderStatusUnverified means a success callback arrived with a bad signature.
	// Such orders are held for manual review and never resolved automatically.
	OrderStatusUnverified OrderStatus = "UNVERIFIED"
)

// Terminal reports whether no further status transition is allowed
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed
}

// Order represents a customer order going through the checkout flow
type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// TxnID is the merchant-generated transaction identifier, e.g. "CLOUT-12345".
	// It keys the whole gateway exchange; the gateway never assigns it.
	TxnID string `gorm:"type:varchar(100);uniqueIndex" json:"txnid"`

	// Amount is kept as a formatted decimal string because the exact
	// textual form is part of the signed payload.
	Amount      string `gorm:"type:varchar(20)" json:"amount"`
	ProductInfo string `gorm:"type:varchar(255)" json:"productinfo"`
	Firstname   string `gorm:"type:varchar(255)" json:"firstname"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Phone       string `gorm:"type:varchar(50)" json:"phone"`

	// Opaque pass-through fields preserved across the gateway redirect.
	// Unused ones stay empty strings; their position in the signed
	// payload matters, not their presence.
	UDF1 string `gorm:"type:varchar(255)" json:"udf1"`
	UDF2 string `gorm:"type:varchar(255)" json:"udf2"`
	UDF3 string `gorm:"type:varchar(255)" json:"udf3"`
	UDF4 string `gorm:"type:varchar(255)" json:"udf4"`
	UDF5 string `gorm:"type:varchar(255)" json:"udf5"`

	Status OrderStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	Items        json.RawMessage `gorm:"type:jsonb" json:"items,omitempty"`
	ShippingInfo json.RawMessage `gorm:"type:jsonb" json:"shipping_info,omitempty"`
}
