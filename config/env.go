package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	Port            string
	DatabaseURL     string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	MigrationsDir   string
	RedisURL        string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	CartSessionTTL  time.Duration
	CatalogCacheTTL time.Duration
	OriginURL       string
	TryOnEndpoint   string
	TryOnAPIKey     string
	TryOnTimeout    time.Duration
	MaxUploadSize   int64
	CloudinaryURL   string
	CloudName       string
	CloudAPIKey     string
	CloudAPISecret  string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 10485760
	}

	AppConfig = &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("APP_PORT", getEnv("PORT", "8082")),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "storefront"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "database/migration"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		CartSessionTTL:  getDuration("CART_SESSION_TTL", 24*time.Hour),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		OriginURL:       os.Getenv("ORIGIN_URL"),
		TryOnEndpoint:   os.Getenv("TRYON_ENDPOINT"),
		TryOnAPIKey:     os.Getenv("TRYON_API_KEY"),
		TryOnTimeout:    getDuration("TRYON_TIMEOUT", 90*time.Second),
		MaxUploadSize:   maxUploadSize,
		CloudinaryURL:   os.Getenv("CLOUDINARY_URL"),
		CloudName:       os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudAPIKey:     os.Getenv("CLOUDINARY_API_KEY"),
		CloudAPISecret:  os.Getenv("CLOUDINARY_API_SECRET"),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

// DatabaseConfigured reports whether a catalog database was configured at all.
func (c *Config) DatabaseConfigured() bool {
	return c.DatabaseURL != "" || c.DBHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
