package repositories

import (
	"context"

	"github.com/manovastra/storefront/app/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	ExistsByGatewayOrderID(ctx context.Context, tx *gorm.DB, gatewayOrderID string) (bool, error)
}

type PaymentRepositoryImpl struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{DB: db}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) ExistsByGatewayOrderID(ctx context.Context, tx *gorm.DB, gatewayOrderID string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Payment{}).
		Where("razorpay_order_id = ?", gatewayOrderID).
		Count(&count).Error
	return count > 0, err
}
