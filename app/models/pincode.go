package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Pincode struct {
	ID                    string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Pincode               string          `gorm:"size:6;not null;uniqueIndex"`
	City                  string          `gorm:"size:100;not null"`
	State                 string          `gorm:"size:100;not null"`
	StandardDeliveryDays  int             `gorm:"default:5"`
	ExpressDeliveryDays   int             `gorm:"default:2"`
	ExpressDeliveryCharge decimal.Decimal `gorm:"type:decimal(6,2);default:99"`
	CodAvailable          bool            `gorm:"default:true"`
	IsServiceable         bool            `gorm:"default:true"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (p *Pincode) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
