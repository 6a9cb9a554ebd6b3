package repositories

import (
	"context"

	"github.com/manovastra/storefront/app/models"
	"gorm.io/gorm"
)

type PincodeRepositoryImpl interface {
	FindServiceable(ctx context.Context, pincode string) (*models.Pincode, error)
	Create(ctx context.Context, pincode *models.Pincode) error
	Update(ctx context.Context, pincode *models.Pincode) error
}

type pincodeRepository struct {
	db *gorm.DB
}

func NewPincodeRepository(db *gorm.DB) PincodeRepositoryImpl {
	return &pincodeRepository{db}
}

func (p *pincodeRepository) FindServiceable(ctx context.Context, pincode string) (*models.Pincode, error) {
	var record models.Pincode
	err := p.db.WithContext(ctx).
		Where("pincode = ? AND is_serviceable = ?", pincode, true).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (p *pincodeRepository) Create(ctx context.Context, pincode *models.Pincode) error {
	return p.db.WithContext(ctx).Create(pincode).Error
}

func (p *pincodeRepository) Update(ctx context.Context, pincode *models.Pincode) error {
	return p.db.WithContext(ctx).Save(pincode).Error
}
