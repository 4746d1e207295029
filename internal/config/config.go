package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	StorageBackend  string
	MongoURI        string
	DBName          string
	RedisAddr       string
	SessionSecret   string
	FraudAPIURL     string
	FraudAPIKey     string
	FraudTimeout    time.Duration
	OrderServiceURL string
	CatalogAPIURL   string
	CatalogCacheTTL time.Duration
	CartTTL         time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		StorageBackend:  getEnvOrDefault("STORAGE_BACKEND", "memory"),
		MongoURI:        getEnvOrDefault("MONGO_URI", ""),
		DBName:          getEnvOrDefault("DB_NAME", "storefront"),
		RedisAddr:       getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		SessionSecret:   getEnvOrDefault("SESSION_SECRET", "dev-session-secret"),
		FraudAPIURL:     getEnvOrDefault("FRAUD_API_URL", ""),
		FraudAPIKey:     getEnvOrDefault("FRAUD_API_KEY", ""),
		FraudTimeout:    getDurationEnv("FRAUD_TIMEOUT_SECONDS", 5, time.Second),
		OrderServiceURL: getEnvOrDefault("ORDER_SERVICE_URL", ""),
		CatalogAPIURL:   getEnvOrDefault("CATALOG_API_URL", ""),
		CatalogCacheTTL: getDurationEnv("CATALOG_CACHE_TTL_SECONDS", 60, time.Second),
		CartTTL:         getDurationEnv("CART_TTL_DAYS", 30, 24*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
