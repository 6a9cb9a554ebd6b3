package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const DefaultGradient = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"

// categoryGradients maps known category names to the CSS gradient shown
// behind their tile when no image is uploaded.
var categoryGradients = map[string]string{
	"Silk Sarees":     "linear-gradient(135deg, #C41E3A 0%, #8B0000 100%)",
	"Designer Kurtis": "linear-gradient(135deg, #4B0082 0%, #8B008B 100%)",
	"Bridal Lehengas": "linear-gradient(135deg, #D4AF37 0%, #FFD700 100%)",
	"Ethnic Sets":     "linear-gradient(135deg, #2E8B57 0%, #3CB371 100%)",
}

type Category struct {
	ID           string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name         string `gorm:"size:100;not null;uniqueIndex"`
	Slug         string `gorm:"size:100;not null;uniqueIndex"`
	Description  string `gorm:"type:text"`
	Image        string `gorm:"size:255"`
	Gradient     string `gorm:"size:200"`
	IsActive     bool   `gorm:"default:true"`
	DisplayOrder int    `gorm:"default:0"`
	Products     []Product
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return
}

func (c *Category) BeforeSave(tx *gorm.DB) (err error) {
	if g, ok := categoryGradients[c.Name]; ok {
		c.Gradient = g
	} else {
		c.Gradient = DefaultGradient
	}
	return
}
