package models

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"

	DeliveryTypeStandard = "standard"
	DeliveryTypeExpress  = "express"
)

type Order struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderCode string `gorm:"size:20;not null;uniqueIndex" json:"order_id"`

	CustomerName  string `gorm:"size:200;not null"`
	CustomerEmail string `gorm:"size:254;not null;index"`
	CustomerPhone string `gorm:"size:15;not null"`

	AddressLine1 string `gorm:"size:200;not null"`
	AddressLine2 string `gorm:"size:200"`
	City         string `gorm:"size:100;not null"`
	State        string `gorm:"size:100;not null"`
	Pincode      string `gorm:"size:6;not null"`

	Status        string `gorm:"size:20;default:'pending'"`
	PaymentMethod string `gorm:"size:20;default:'cod'"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount       decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	DeliveryCharge decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	DeliveryType         string     `gorm:"size:20;default:'standard'"`
	ExpectedDeliveryDate *time.Time `gorm:"type:date"`

	Items     []OrderItem `gorm:"foreignKey:OrderID"`
	Payment   *Payment    `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrderCode returns a fresh public order identifier: a fixed "MAN"
// prefix followed by ten random digits. Not gateway-supplied.
func NewOrderCode() string {
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return "MAN" + string(digits)
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.OrderCode == "" {
		o.OrderCode = NewOrderCode()
	}
	return
}
