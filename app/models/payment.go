package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

type Payment struct {
	ID      string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID string `gorm:"size:36;not null;uniqueIndex"`

	// RazorpayOrderID doubles as the idempotency token for callback
	// replays: the unique index rejects a second finalization attempt
	// for the same gateway order.
	RazorpayOrderID   string `gorm:"size:100;uniqueIndex"`
	RazorpayPaymentID string `gorm:"size:100"`
	RazorpaySignature string `gorm:"size:200"`

	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status        string          `gorm:"size:20;default:'pending'"`
	PaymentMethod string          `gorm:"size:50"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
