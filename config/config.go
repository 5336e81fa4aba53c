package config

import (
	"fmt"
	"os"

	"github.com/campusride/CampusRide/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	JWTSecret         string
	Port              string
	Env               string
	PlatformEmail     string
	CarOwnerEmail     string
	SchoolEmail       string
	PaystackSecretKey string
	RedisAddr         string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional outside development
	if err := godotenv.Load(); err != nil && os.Getenv("DB_HOST") == "" {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		Port:              os.Getenv("PORT"),
		Env:               os.Getenv("ENV"),
		PlatformEmail:     os.Getenv("PLATFORM_EMAIL"),
		CarOwnerEmail:     os.Getenv("CAR_OWNER_EMAIL"),
		SchoolEmail:       os.Getenv("SCHOOL_EMAIL"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
	}

	return config, nil
}

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := Migrate(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// Migrate runs the schema migration for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.DriverInfo{},
		&models.Wallet{},
		&models.PercentagePrice{},
		&models.Transaction{},
		&models.FreeRideToken{},
		&models.Notification{},
		&models.PasswordReset{},
	)
}
