package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBDriver string // sqlite, postgres or mysql
	DBName   string
	JWTKey   string

	RemoteCatalogURL string // Base URL of the managed catalog backend (blank disables remote sync)
	RemoteCatalogKey string // API key for the catalog backend

	CatalogRefreshCron string // Cron spec for periodic catalog reloads (blank disables)
	UploadDir          string // Directory for admin-uploaded thumbnails

	MaxOpenConns int
	MaxIdleConns int
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
		Port:     getEnv("PORT", "3000"),
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBName:   getEnv("DB_NAME", "cyberlearn.db"),
		JWTKey:   getEnv("JWT_SECRET_KEY", "defaultSecret"),

		RemoteCatalogURL: getEnv("REMOTE_CATALOG_URL", ""),
		RemoteCatalogKey: getEnv("REMOTE_CATALOG_KEY", ""),

		CatalogRefreshCron: getEnv("CATALOG_REFRESH_CRON", ""),
		UploadDir:          getEnv("UPLOAD_DIR", "./public/uploads"),

		MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.RemoteCatalogURL == "" {
		log.Println("Warning: REMOTE_CATALOG_URL not set. Running without remote catalog sync.")
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
