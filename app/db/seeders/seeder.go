package seeders

import (
	"github.com/manovastra/storefront/app/db/fakers"
	"github.com/manovastra/storefront/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func price(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func seedCategories(db *gorm.DB) ([]models.Category, error) {
	categories := []models.Category{
		{Name: "Silk Sarees", Description: "Handwoven silk sarees from master weavers", DisplayOrder: 1},
		{Name: "Designer Kurtis", Description: "Contemporary kurtis for every occasion", DisplayOrder: 2},
		{Name: "Bridal Lehengas", Description: "Statement lehengas for the big day", DisplayOrder: 3},
		{Name: "Ethnic Sets", Description: "Coordinated ethnic wear sets", DisplayOrder: 4},
	}
	for i := range categories {
		if err := db.FirstOrCreate(&categories[i], "name = ?", categories[i].Name).Error; err != nil {
			return nil, err
		}
	}
	return categories, nil
}

func seedProducts(db *gorm.DB, categories []models.Category) error {
	products := []models.Product{
		{
			CategoryID:      categories[0].ID,
			Name:            "Kanjivaram Silk Saree",
			Description:     "Pure Kanjivaram silk saree with traditional zari border",
			PrimaryColor:    "Royal Red",
			CurrentPrice:    price("1000.00"),
			OriginalPrice:   price("1250.00"),
			DiscountPercent: 20,
			Rating:          price("4.8"),
			RatingCount:     214,
			ReviewCount:     48,
			BadgeType:       models.BadgeBestseller,
			IsBestseller:    true,
			Colors: []models.ProductColor{
				{Name: "Royal Red", Images: []models.ColorImage{
					{Image: "/images/products/kanjivaram-red-1.jpg", DisplayOrder: 0},
					{Image: "/images/products/kanjivaram-red-2.jpg", DisplayOrder: 1},
				}},
				{Name: "Emerald Green", Images: []models.ColorImage{
					{Image: "/images/products/kanjivaram-green-1.jpg", DisplayOrder: 0},
				}},
			},
		},
		{
			CategoryID:      categories[0].ID,
			Name:            "Banarasi Silk Saree",
			Description:     "Banarasi weave with intricate gold motifs",
			PrimaryColor:    "Golden Yellow",
			CurrentPrice:    price("1450.00"),
			OriginalPrice:   price("1800.00"),
			DiscountPercent: 19,
			Rating:          price("4.6"),
			RatingCount:     156,
			ReviewCount:     31,
			IsBestseller:    true,
			Colors: []models.ProductColor{
				{Name: "Golden Yellow", Images: []models.ColorImage{
					{Image: "/images/products/banarasi-gold-1.jpg", DisplayOrder: 0},
				}},
				{Name: "Royal Purple", Images: []models.ColorImage{
					{Image: "/images/products/banarasi-purple-1.jpg", DisplayOrder: 0},
				}},
			},
		},
		{
			CategoryID:      categories[1].ID,
			Name:            "Chikankari Cotton Kurti",
			Description:     "Hand-embroidered chikankari kurti in soft cotton",
			PrimaryColor:    "Pink Blush",
			CurrentPrice:    price("650.00"),
			OriginalPrice:   price("850.00"),
			DiscountPercent: 23,
			Fabric:          "Pure Cotton",
			Length:          "Knee length",
			BlousePiece:     "Not applicable",
			WeaveType:       "Machine loom",
			WorkDetails:     "Chikankari Embroidery",
			Occasion:        "Casual, Office",
			Colors: []models.ProductColor{
				{Name: "Pink Blush", Images: []models.ColorImage{
					{Image: "/images/products/chikankari-pink-1.jpg", DisplayOrder: 0},
				}},
			},
		},
		{
			CategoryID:      categories[2].ID,
			Name:            "Zardozi Bridal Lehenga",
			Description:     "Heavily embellished bridal lehenga with zardozi work",
			PrimaryColor:    "Maroon",
			CurrentPrice:    price("8500.00"),
			OriginalPrice:   price("11000.00"),
			DiscountPercent: 22,
			Fabric:          "Velvet",
			Length:          "Floor length",
			BlousePiece:     "Included",
			WorkDetails:     "Zardozi Work",
			Occasion:        "Wedding",
			IsBestseller:    true,
			Colors: []models.ProductColor{
				{Name: "Maroon", Images: []models.ColorImage{
					{Image: "/images/products/lehenga-maroon-1.jpg", DisplayOrder: 0},
					{Image: "/images/products/lehenga-maroon-2.jpg", DisplayOrder: 1},
				}},
			},
		},
	}
	for i := range products {
		if err := db.FirstOrCreate(&products[i], "name = ?", products[i].Name).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedPincodes(db *gorm.DB) error {
	pincodes := []models.Pincode{
		{Pincode: "110001", City: "New Delhi", State: "Delhi", StandardDeliveryDays: 3, ExpressDeliveryDays: 1},
		{Pincode: "400001", City: "Mumbai", State: "Maharashtra", StandardDeliveryDays: 4, ExpressDeliveryDays: 2},
		{Pincode: "560001", City: "Bengaluru", State: "Karnataka", StandardDeliveryDays: 4, ExpressDeliveryDays: 2},
		{Pincode: "600001", City: "Chennai", State: "Tamil Nadu", StandardDeliveryDays: 5, ExpressDeliveryDays: 2},
		{Pincode: "700001", City: "Kolkata", State: "West Bengal", StandardDeliveryDays: 5, ExpressDeliveryDays: 2},
	}
	for i := range pincodes {
		if err := db.FirstOrCreate(&pincodes[i], "pincode = ?", pincodes[i].Pincode).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedBanners(db *gorm.DB) error {
	banners := []models.HeroBanner{
		{
			Title:        "Wedding Season Collection",
			Subtitle:     "Up to 30% off on bridal wear",
			Image:        "/images/banners/wedding-season.jpg",
			ButtonText1:  "Shop Lehengas",
			ButtonLink1:  "/category/bridal-lehengas",
			ButtonText2:  "Shop Sarees",
			ButtonLink2:  "/category/silk-sarees",
			DisplayOrder: 1,
		},
		{
			Title:        "Handloom Heritage",
			Subtitle:     "Authentic weaves, direct from artisans",
			Image:        "/images/banners/handloom.jpg",
			ButtonText1:  "Explore",
			ButtonLink1:  "/category/silk-sarees",
			DisplayOrder: 2,
		},
	}
	for i := range banners {
		if err := db.FirstOrCreate(&banners[i], "title = ?", banners[i].Title).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedDemoUsers(db *gorm.DB) error {
	for i := 0; i < 3; i++ {
		user := fakers.UserFaker(db)
		if err := db.FirstOrCreate(user, "email = ?", user.Email).Error; err != nil {
			return err
		}
	}
	return nil
}

// DBSeed populates the storefront with its launch catalog, serviceable
// pincodes, hero banners and a few demo accounts. Idempotent.
func DBSeed(db *gorm.DB) error {
	categories, err := seedCategories(db)
	if err != nil {
		return err
	}
	if err := seedProducts(db, categories); err != nil {
		return err
	}
	if err := seedPincodes(db); err != nil {
		return err
	}
	if err := seedBanners(db); err != nil {
		return err
	}
	return seedDemoUsers(db)
}
