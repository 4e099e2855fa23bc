package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type PaymentGateway string

const (
	PaymentGatewayPayU   PaymentGateway = "payu"
	PaymentGatewayManual PaymentGateway = "manual"
)

// PaymentCallbackKind distinguishes the gateway's two callback entry points
type PaymentCallbackKind string

const (
	PaymentCallbackKindSuccess PaymentCallbackKind = "success"
	PaymentCallbackKindFailure PaymentCallbackKind = "failure"
)

// PaymentCallback records every inbound gateway callback as received,
// before any verification, so disputed payments can be audited later.
type PaymentCallback struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	PaymentGateway PaymentGateway      `gorm:"type:varchar(50);not null" json:"payment_gateway"`
	TxnID          string              `gorm:"type:varchar(100);index" json:"txnid"`
	Kind           PaymentCallbackKind `gorm:"type:varchar(20)" json:"kind"`
	Metadata       json.RawMessage     `gorm:"type:jsonb" json:"metadata"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"deleted_at,omitempty"`
}
