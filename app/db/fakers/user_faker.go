package fakers

import (
	"github.com/go-faker/faker/v4"
	"github.com/manovastra/storefront/app/helpers"
	"github.com/manovastra/storefront/app/models"
	"gorm.io/gorm"
)

// UserFaker builds a verified demo account with a throwaway password.
func UserFaker(db *gorm.DB) *models.UserProfile {
	return &models.UserProfile{
		Name:       faker.Name(),
		Email:      faker.Email(),
		Phone:      faker.Phonenumber(),
		Password:   helpers.HashPassword("password123"),
		IsVerified: true,
	}
}
