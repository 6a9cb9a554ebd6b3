package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserProfile struct {
	ID         string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Email      string `gorm:"size:254;not null;uniqueIndex"`
	Name       string `gorm:"size:200;not null"`
	Phone      string `gorm:"size:15"`
	Password   string `gorm:"size:200;not null"` // bcrypt hash
	IsVerified bool   `gorm:"default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *UserProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
