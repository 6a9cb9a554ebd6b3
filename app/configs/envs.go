package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	Port              string
	AppURL            string
	AppEnv            string
	AppAuthKey        string
	AppEncKey         string
	EmailHost         string
	EmailPort         string
	EmailUsername     string
	EmailPassword     string
	EmailFrom         string
	RazorpayKeyID     string
	RazorpayKeySecret string
	OTPExpiryMinutes  int
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	otpExpiry, err := strconv.Atoi(os.Getenv("OTP_EXPIRY_MINUTES"))
	if err != nil || otpExpiry <= 0 {
		otpExpiry = 10
	}

	return ENV{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		Port:              os.Getenv("APP_PORT"),
		AppURL:            os.Getenv("APP_URL"),
		AppEnv:            os.Getenv("APP_ENV"),
		AppAuthKey:        os.Getenv("APP_AUTH_KEY"),
		AppEncKey:         os.Getenv("APP_ENC_KEY"),
		EmailHost:         os.Getenv("EMAIL_HOST"),
		EmailPort:         os.Getenv("EMAIL_PORT"),
		EmailUsername:     os.Getenv("EMAIL_USERNAME"),
		EmailPassword:     os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:         os.Getenv("EMAIL_FROM"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		OTPExpiryMinutes:  otpExpiry,
	}

}

var LoadENV = LoadEnv()
