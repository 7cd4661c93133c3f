package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Backend Backend
	Cognito Cognito
	App     App
}

type Backend struct {
	BaseURL     string
	StagePrefix string
	Timeout     time.Duration
	RatePerSec  float64
	RateBurst   int
	PolicyFile  string
}

type Cognito struct {
	Region      string
	PoolID      string
	ClientID    string
	SessionFile string
}

type App struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Backend: Backend{
			BaseURL:     getEnv("BACKEND_BASE_URL", "http://localhost:3002"),
			StagePrefix: getEnv("BACKEND_STAGE_PREFIX", ""),
			Timeout:     getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
			RatePerSec:  getEnvAsFloat("BACKEND_RATE_PER_SEC", 20),
			RateBurst:   getEnvAsInt("BACKEND_RATE_BURST", 40),
			PolicyFile:  getEnv("NOTIFICATION_POLICY_FILE", ""),
		},
		Cognito: Cognito{
			Region:      getEnv("COGNITO_REGION", "eu-west-2"),
			PoolID:      getEnv("COGNITO_USER_POOL_ID", ""),
			ClientID:    getEnv("COGNITO_CLIENT_ID", ""),
			SessionFile: getEnv("SESSION_FILE", ""),
		},
		App: App{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}

	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Printf("invalid value for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("invalid value for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
