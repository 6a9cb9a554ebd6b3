package migrations

import (
	"github.com/manovastra/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductColor{},
		&models.ColorImage{},
		&models.Pincode{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.UserProfile{},
		&models.UserOTP{},
		&models.HeroBanner{},
	)
}
