package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserOTP is an ephemeral login/registration code. Rows are purged when a
// newer code is issued for the same email; expiry is checked at verify
// time against CreatedAt.
type UserOTP struct {
	ID         string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Email      string `gorm:"size:254;not null;index"`
	Code       string `gorm:"size:6;not null"`
	IsVerified bool   `gorm:"default:false"`
	CreatedAt  time.Time
}

func (o *UserOTP) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (o *UserOTP) IsExpired(ttl time.Duration, now time.Time) bool {
	return now.Sub(o.CreatedAt) > ttl
}
