package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Plan cache
	PlanCacheTTLSeconds int

	// PDF export rate limit (requests per minute per IP)
	PDFExportPerMin int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		Env:                 getEnvOrDefault("ENV", "development"),
		MongoURI:            mustGetEnv("MONGO_URI"),
		MongoDatabase:       getEnvOrDefault("MONGO_DATABASE", "mockmate"),
		RedisURL:            mustGetEnv("REDIS_URL"),
		JWTSecret:           mustGetEnv("JWT_SECRET"),
		PlanCacheTTLSeconds: getEnvAsIntOrDefault("PLAN_CACHE_TTL_SECONDS", 300),
		PDFExportPerMin:     getEnvAsIntOrDefault("PDF_EXPORT_PER_MINUTE", 10),
		FrontendURL:         getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
