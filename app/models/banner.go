package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HeroBanner struct {
	ID           string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Title        string `gorm:"size:200;not null"`
	Subtitle     string `gorm:"size:200"`
	Description  string `gorm:"type:text"`
	Image        string `gorm:"size:255"`
	ButtonText1  string `gorm:"size:50;default:'Shop Now'"`
	ButtonLink1  string `gorm:"size:200"`
	ButtonText2  string `gorm:"size:50"`
	ButtonLink2  string `gorm:"size:200"`
	DisplayOrder int    `gorm:"default:0"`
	IsActive     bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (b *HeroBanner) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}
