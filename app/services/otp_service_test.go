package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/manovastra/storefront/app/models"
	"github.com/manovastra/storefront/app/models/migrations"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func newOTPService(db *gorm.DB, ttl time.Duration) *OTPService {
	return NewOTPService(
		db,
		repositories.NewUserRepository(db),
		repositories.NewOTPRepository(db),
		NewMailer(MailConfig{}),
		ttl,
	)
}

func createAccount(t *testing.T, db *gorm.DB, email string) *models.UserProfile {
	t.Helper()
	user := &models.UserProfile{Email: email, Name: "Test Buyer", Phone: "9999999999", Password: "x", IsVerified: true}
	require.NoError(t, repositories.NewUserRepository(db).Create(context.Background(), nil, user))
	return user
}

func latestOTP(t *testing.T, db *gorm.DB, email string) models.UserOTP {
	t.Helper()
	var otp models.UserOTP
	require.NoError(t, db.Where("email = ?", email).Order("created_at DESC").First(&otp).Error)
	return otp
}

func TestIssueLoginOTPUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newOTPService(db, 10*time.Minute)

	err := svc.IssueLoginOTP(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrUnknownAccount)

	var count int64
	require.NoError(t, db.Model(&models.UserOTP{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestIssueSupersedesPreviousCode(t *testing.T) {
	db := newTestDB(t)
	svc := newOTPService(db, 10*time.Minute)
	ctx := context.Background()
	createAccount(t, db, "buyer@example.com")

	require.NoError(t, svc.IssueLoginOTP(ctx, "buyer@example.com"))
	first := latestOTP(t, db, "buyer@example.com")

	require.NoError(t, svc.IssueLoginOTP(ctx, "buyer@example.com"))
	second := latestOTP(t, db, "buyer@example.com")

	// Only the newest code exists; the first can no longer authenticate.
	var count int64
	require.NoError(t, db.Model(&models.UserOTP{}).Where("email = ?", "buyer@example.com").Count(&count).Error)
	require.EqualValues(t, 1, count)

	if first.Code != second.Code {
		require.ErrorIs(t, svc.Verify(ctx, "buyer@example.com", first.Code), ErrInvalidCode)
	}
	require.NoError(t, svc.Verify(ctx, "buyer@example.com", second.Code))
}

func TestVerifyIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	svc := newOTPService(db, 10*time.Minute)
	ctx := context.Background()
	createAccount(t, db, "buyer@example.com")

	require.NoError(t, svc.IssueLoginOTP(ctx, "buyer@example.com"))
	otp := latestOTP(t, db, "buyer@example.com")

	require.NoError(t, svc.Verify(ctx, "buyer@example.com", otp.Code))
	require.ErrorIs(t, svc.Verify(ctx, "buyer@example.com", otp.Code), ErrInvalidCode)
}

func TestVerifyWrongCode(t *testing.T) {
	db := newTestDB(t)
	svc := newOTPService(db, 10*time.Minute)
	ctx := context.Background()
	createAccount(t, db, "buyer@example.com")

	require.NoError(t, svc.IssueLoginOTP(ctx, "buyer@example.com"))
	require.ErrorIs(t, svc.Verify(ctx, "buyer@example.com", "000000"), ErrInvalidCode)
}

func TestVerifyExpiredCode(t *testing.T) {
	db := newTestDB(t)
	svc := newOTPService(db, 10*time.Minute)
	ctx := context.Background()
	createAccount(t, db, "buyer@example.com")

	require.NoError(t, svc.IssueLoginOTP(ctx, "buyer@example.com"))
	otp := latestOTP(t, db, "buyer@example.com")

	issued := time.Now().Add(-11 * time.Minute)
	require.NoError(t, db.Model(&models.UserOTP{}).Where("id = ?", otp.ID).Update("created_at", issued).Error)

	require.ErrorIs(t, svc.Verify(ctx, "buyer@example.com", otp.Code), ErrOTPExpired)
}

func TestIssueRegistrationOTPEmailTaken(t *testing.T) {
	db := newTestDB(t)
	svc := newOTPService(db, 10*time.Minute)
	createAccount(t, db, "taken@example.com")

	err := svc.IssueRegistrationOTP(context.Background(), "taken@example.com")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCompleteRegistration(t *testing.T) {
	db := newTestDB(t)
	svc := newOTPService(db, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.IssueRegistrationOTP(ctx, "new@example.com"))
	otp := latestOTP(t, db, "new@example.com")

	user, err := svc.CompleteRegistration(ctx, "New Buyer", "new@example.com", "8888888888", "hashed", otp.Code)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.True(t, user.IsVerified)

	stored, err := repositories.NewUserRepository(db).FindByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "New Buyer", stored.Name)
}

func TestCompleteRegistrationWrongCodePersistsNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newOTPService(db, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.IssueRegistrationOTP(ctx, "new@example.com"))

	_, err := svc.CompleteRegistration(ctx, "New Buyer", "new@example.com", "8888888888", "hashed", "000000")
	require.ErrorIs(t, err, ErrInvalidCode)

	var count int64
	require.NoError(t, db.Model(&models.UserProfile{}).Count(&count).Error)
	require.Zero(t, count)

	// The staged code is still usable after a failed attempt.
	otp := latestOTP(t, db, "new@example.com")
	_, err = svc.CompleteRegistration(ctx, "New Buyer", "new@example.com", "8888888888", "hashed", otp.Code)
	require.NoError(t, err)
}
