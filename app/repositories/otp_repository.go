package repositories

import (
	"context"

	"github.com/manovastra/storefront/app/models"
	"gorm.io/gorm"
)

type OTPRepositoryImpl interface {
	Create(ctx context.Context, otp *models.UserOTP) error
	DeleteByEmail(ctx context.Context, email string) error
	FindUnverified(ctx context.Context, tx *gorm.DB, email, code string) (*models.UserOTP, error)
	MarkVerified(ctx context.Context, tx *gorm.DB, id string) error
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepositoryImpl {
	return &otpRepository{db}
}

func (r *otpRepository) Create(ctx context.Context, otp *models.UserOTP) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

func (r *otpRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&models.UserOTP{}).Error
}

func (r *otpRepository) FindUnverified(ctx context.Context, tx *gorm.DB, email, code string) (*models.UserOTP, error) {
	if tx == nil {
		tx = r.db
	}
	var otp models.UserOTP
	err := tx.WithContext(ctx).
		Where("email = ? AND code = ? AND is_verified = ?", email, code, false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) MarkVerified(ctx context.Context, tx *gorm.DB, id string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&models.UserOTP{}).
		Where("id = ?", id).
		Update("is_verified", true).Error
}
