package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/manovastra/storefront/app/models"
	"github.com/manovastra/storefront/app/repositories"
	"gorm.io/gorm"
)

// OTPService issues and consumes one-time login/registration codes.
// Issuing a code invalidates every earlier code for the same email;
// verification is single-use and expiry is checked lazily at verify time.
type OTPService struct {
	db       *gorm.DB
	userRepo repositories.UserRepositoryImpl
	otpRepo  repositories.OTPRepositoryImpl
	mailer   *Mailer
	ttl      time.Duration
}

func NewOTPService(
	db *gorm.DB,
	userRepo repositories.UserRepositoryImpl,
	otpRepo repositories.OTPRepositoryImpl,
	mailer *Mailer,
	ttl time.Duration,
) *OTPService {
	return &OTPService{
		db:       db,
		userRepo: userRepo,
		otpRepo:  otpRepo,
		mailer:   mailer,
		ttl:      ttl,
	}
}

func (s *OTPService) TTL() time.Duration {
	return s.ttl
}

func generateOTPCode() string {
	digits := make([]byte, 6)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}

// IssueLoginOTP creates a fresh code for an existing account and mails
// it. A mail failure is logged and swallowed: the code stands, the buyer
// can request another.
func (s *OTPService) IssueLoginOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up account for %s: %w", email, err)
	}
	if user == nil {
		return ErrUnknownAccount
	}

	return s.issue(ctx, email)
}

// IssueRegistrationOTP creates a code for a not-yet-existing account. The
// profile itself stays staged in the caller's session until the code is
// confirmed.
func (s *OTPService) IssueRegistrationOTP(ctx context.Context, email string) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing account for %s: %w", email, err)
	}
	if exists {
		return ErrEmailTaken
	}

	return s.issue(ctx, email)
}

func (s *OTPService) issue(ctx context.Context, email string) error {
	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to purge previous codes for %s: %w", email, err)
	}

	code := generateOTPCode()
	otp := &models.UserOTP{Email: email, Code: code}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return fmt.Errorf("failed to store otp for %s: %w", email, err)
	}

	if err := s.mailer.SendOTPEmail(email, code, int(s.ttl.Minutes())); err != nil {
		log.Printf("OTPService: OTP email to %s failed, code remains valid: %v", email, err)
	}

	return nil
}

// Verify consumes a code: the matched row is flagged verified so it can
// never authenticate twice.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	return s.verifyTx(ctx, s.db, email, code)
}

func (s *OTPService) verifyTx(ctx context.Context, tx *gorm.DB, email, code string) error {
	otp, err := s.otpRepo.FindUnverified(ctx, tx, email, code)
	if err != nil {
		return fmt.Errorf("failed to look up otp for %s: %w", email, err)
	}
	if otp == nil {
		return ErrInvalidCode
	}

	if otp.IsExpired(s.ttl, time.Now()) {
		return ErrOTPExpired
	}

	if err := s.otpRepo.MarkVerified(ctx, tx, otp.ID); err != nil {
		return fmt.Errorf("failed to consume otp for %s: %w", email, err)
	}
	return nil
}

// CompleteRegistration consumes the code and creates the verified profile
// in one transaction. On a wrong or expired code nothing is persisted and
// the staged data stays usable for a retry.
func (s *OTPService) CompleteRegistration(ctx context.Context, name, email, phone, passwordHash, code string) (*models.UserProfile, error) {
	user := &models.UserProfile{
		Email:      email,
		Name:       name,
		Phone:      phone,
		Password:   passwordHash,
		IsVerified: true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.verifyTx(ctx, tx, email, code); err != nil {
			return err
		}
		return s.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
		log.Printf("OTPService: welcome email to %s failed: %v", user.Email, err)
	}

	return user, nil
}
