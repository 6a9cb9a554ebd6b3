package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BadgeDiscount   = "discount"
	BadgeBestseller = "bestseller"
	BadgeNew        = "new"
)

type Product struct {
	ID           string   `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CategoryID   string   `gorm:"size:36;index"`
	Category     Category `gorm:"foreignKey:CategoryID"`
	Name         string   `gorm:"size:200;not null"`
	Slug         string   `gorm:"size:200;not null;uniqueIndex"`
	Brand        string   `gorm:"size:100;default:'Manovastra'"`
	Description  string   `gorm:"type:text"`
	PrimaryColor string   `gorm:"size:50;default:'Red'"`

	CurrentPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OriginalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountPercent int             `gorm:"default:0"`

	Rating      decimal.Decimal `gorm:"type:decimal(2,1);default:4.5"`
	RatingCount int             `gorm:"default:0"`
	ReviewCount int             `gorm:"default:0"`

	BadgeType string `gorm:"size:20;default:'discount'"`

	Fabric      string `gorm:"size:100;default:'Pure Silk'"`
	Length      string `gorm:"size:50;default:'5.5 meters'"`
	BlousePiece string `gorm:"size:100;default:'Included (0.8 meters)'"`
	WeaveType   string `gorm:"size:100;default:'Handloom'"`
	WorkDetails string `gorm:"size:200;default:'Zari Work'"`
	Occasion    string `gorm:"size:200;default:'Wedding, Festival'"`

	InStock      bool `gorm:"default:true"`
	IsBestseller bool `gorm:"default:false"`
	IsActive     bool `gorm:"default:true"`

	Colors    []ProductColor `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	return
}

func (p *Product) BadgeText() string {
	switch p.BadgeType {
	case BadgeBestseller:
		return "Bestseller"
	case BadgeNew:
		return "New"
	default:
		return fmt.Sprintf("%d%% OFF", p.DiscountPercent)
	}
}

func (p *Product) OccasionsList() []string {
	parts := strings.Split(p.Occasion, ",")
	occasions := make([]string, 0, len(parts))
	for _, o := range parts {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			occasions = append(occasions, trimmed)
		}
	}
	return occasions
}

// colorGradients maps variant names to their swatch gradient.
var colorGradients = map[string]string{
	"Royal Red":     "linear-gradient(135deg, #C41E3A 0%, #8B0000 100%)",
	"Golden Yellow": "linear-gradient(135deg, #D4AF37 0%, #FFD700 100%)",
	"Royal Purple":  "linear-gradient(135deg, #4B0082 0%, #8B008B 100%)",
	"Emerald Green": "linear-gradient(135deg, #2E8B57 0%, #3CB371 100%)",
	"Royal Blue":    "linear-gradient(135deg, #00008B 0%, #4169E1 100%)",
	"Pink Blush":    "linear-gradient(135deg, #FF69B4 0%, #FFB6C1 100%)",
	"Maroon":        "linear-gradient(135deg, #800000 0%, #B22222 100%)",
	"Navy Blue":     "linear-gradient(135deg, #000080 0%, #1E90FF 100%)",
	"Orange":        "linear-gradient(135deg, #FF8C00 0%, #FFA500 100%)",
	"Black":         "linear-gradient(135deg, #000000 0%, #434343 100%)",
}

type ProductColor struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string `gorm:"size:36;not null;index"`
	Name      string `gorm:"size:50;not null"`
	Gradient  string `gorm:"size:200"`
	Images    []ColorImage `gorm:"foreignKey:ColorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (pc *ProductColor) BeforeCreate(tx *gorm.DB) (err error) {
	if pc.ID == "" {
		pc.ID = uuid.New().String()
	}
	return
}

func (pc *ProductColor) BeforeSave(tx *gorm.DB) (err error) {
	if g, ok := colorGradients[pc.Name]; ok {
		pc.Gradient = g
	} else {
		pc.Gradient = DefaultGradient
	}
	return
}

type ColorImage struct {
	ID           string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ColorID      string `gorm:"size:36;not null;index"`
	Image        string `gorm:"size:255;not null"`
	DisplayOrder int    `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ci *ColorImage) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
