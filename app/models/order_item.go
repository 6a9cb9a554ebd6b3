package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID   string  `gorm:"size:36;not null;index"`
	ProductID string  `gorm:"size:36;not null;index"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID"`

	// Color is the variant label the buyer picked, captured as free text
	// so renaming a ProductColor later does not rewrite history.
	Color    string          `gorm:"size:50"`
	Quantity int             `gorm:"not null;default:1"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

func (oi *OrderItem) Total() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
