// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	DBPath      string

	// Gemini upstream configuration
	GeminiAPIKey          string
	GeminiModel           string
	GeminiBaseURL         string
	GeminiMaxOutputTokens int
	GeminiTemperature     float64

	// Rate limiting (fixed window per client)
	RateLimitWindow time.Duration
	RateLimitMax    int

	// Optional shared rate-limit store for multi-instance deployments.
	RedisAddr string

	// Secret of the external identity provider. The server never issues
	// tokens itself; it only validates what the auth service minted.
	SessionSecret string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: env,
		DBPath:      getEnv("DB_PATH", "sanarte.db"),

		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:         getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiMaxOutputTokens: getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 2048),
		GeminiTemperature:     getEnvAsFloat("GEMINI_TEMPERATURE", 0.7),

		RateLimitWindow: time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_MS", 60000)) * time.Millisecond,
		RateLimitMax:    getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 25),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
		if cfg.SessionSecret == "" {
			missing = append(missing, "SESSION_SECRET")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

// getEnvAsFloat gets an env var as a float, with a fallback.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as float. Using default value.", key)
		return defaultValue
	}
	return floatValue
}
