package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBDriver  string // postgres, mysql, sqlite
	DBName    string
	JWTKey    string
	SaltRound int

	QuizPassMark float64 // minimum score (0-100) to pass a course quiz
	VideoURLTTL  int     // signed video URL lifetime in seconds

	StorageServiceURL string // external storage service issuing signed URLs
	StorageApiKey     string
	StorageSignSecret string // local HMAC fallback when no storage service is set

	SendgridApiKey string
	EmailSender    string
	AdminEmail     string // recipient for pending-certificate reminders
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBDriver:  getEnv("DB_DRIVER", "postgres"),
		DBName:    getEnv("DB_NAME", "elearn"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		QuizPassMark: getEnvFloat("QUIZ_PASS_MARK", 70),
		VideoURLTTL:  getEnvInt("VIDEO_URL_TTL", 900),

		StorageServiceURL: getEnv("STORAGE_SERVICE_URL", ""),
		StorageApiKey:     getEnv("STORAGE_API_KEY", ""),
		StorageSignSecret: getEnv("STORAGE_SIGN_SECRET", "defaultSecret"),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@elearn.local"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendgridApiKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Emails will be logged, not sent.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvFloat retrieves an environment variable as a float or returns the default float value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
