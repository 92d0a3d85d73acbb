package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database (optional, empty keeps the in-memory store)
	DatabaseURL string

	// Redis (optional, empty keeps the in-memory cursor store)
	RedisURL string

	// JWT
	JWTSecret    string
	JWTAccessTTL time.Duration

	// CORS
	AllowedOrigins []string

	// Rewards
	CoinToCurrency    int64
	MinWithdrawCoins  int64
	MinAnswerDwell    time.Duration
	MaxAnswersPerHour int

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// JWT
		JWTSecret:    getEnv("JWT_SECRET", "super-secret-key-change-me"),
		JWTAccessTTL: parseDuration(getEnv("JWT_ACCESS_TTL", "15m"), 15*time.Minute),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		// Rewards
		CoinToCurrency:    parseInt64(getEnv("COIN_TO_CURRENCY", "100"), 100),
		MinWithdrawCoins:  parseInt64(getEnv("MIN_WITHDRAW_COINS", "1000"), 1000),
		MinAnswerDwell:    parseDuration(getEnv("MIN_ANSWER_DWELL", "1500ms"), 1500*time.Millisecond),
		MaxAnswersPerHour: parseInt(getEnv("MAX_ANSWERS_PER_HOUR", "60"), 60),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseInt64(s string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	// Simple split by comma
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if start < i {
				result = append(result, s[start:i])
			}
			start = i + 1
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
