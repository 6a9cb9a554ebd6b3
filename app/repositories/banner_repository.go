package repositories

import (
	"context"

	"github.com/manovastra/storefront/app/models"
	"gorm.io/gorm"
)

type BannerRepositoryImpl interface {
	GetActive(ctx context.Context, limit int) ([]models.HeroBanner, error)
	Create(ctx context.Context, banner *models.HeroBanner) error
	Update(ctx context.Context, banner *models.HeroBanner) error
	Delete(ctx context.Context, id string) error
}

type bannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) BannerRepositoryImpl {
	return &bannerRepository{db}
}

func (b *bannerRepository) GetActive(ctx context.Context, limit int) ([]models.HeroBanner, error) {
	var banners []models.HeroBanner
	err := b.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order").
		Limit(limit).
		Find(&banners).Error
	return banners, err
}

func (b *bannerRepository) Create(ctx context.Context, banner *models.HeroBanner) error {
	return b.db.WithContext(ctx).Create(banner).Error
}

func (b *bannerRepository) Update(ctx context.Context, banner *models.HeroBanner) error {
	return b.db.WithContext(ctx).Save(banner).Error
}

func (b *bannerRepository) Delete(ctx context.Context, id string) error {
	return b.db.WithContext(ctx).Delete(&models.HeroBanner{}, "id = ?", id).Error
}
