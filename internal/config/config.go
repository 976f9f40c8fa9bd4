/**
 * @description
 * Configuration loader for the ASSR check-in bot.
 * Responsible for reading environment variables, setting defaults, and performing validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 *
 * @notes
 * - Redis, Postgres and the status API are optional and only enabled when their
 *   variables are set.
 * - CLI flags may override the wallet/bearer file paths after Load().
 */

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig
	Files     FilesConfig
	Incentive IncentiveConfig
	Schedule  ScheduleConfig
	DB        DBConfig
	Redis     RedisConfig
}

// AppConfig holds process-level settings
type AppConfig struct {
	Env         string // "development", "production" or "test"
	LogLevel    string
	StatusPort  string // empty disables the status API
	StatusHost  string
	StatusToken string
}

// FilesConfig holds the local JSON file locations
type FilesConfig struct {
	Wallets string
	Bearers string
}

// IncentiveConfig holds the remote incentive API settings
type IncentiveConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ScheduleConfig holds the fixed delays of the authentication and check-in loops
type ScheduleConfig struct {
	AuthDelay       time.Duration
	CheckInDelay    time.Duration
	UsernameDelay   time.Duration
	CheckInInterval time.Duration
}

// DBConfig holds PostgreSQL settings for the check-in history
type DBConfig struct {
	URL string
}

// RedisConfig holds Redis settings for the bearer mirror and event stream
type RedisConfig struct {
	URL string
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// A missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Env:         getEnv("GO_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			StatusPort:  getEnv("STATUS_PORT", ""),
			StatusHost:  getEnv("STATUS_HOST", "127.0.0.1"),
			StatusToken: sanitizeCredential(getEnv("STATUS_TOKEN", "")),
		},
		Files: FilesConfig{
			Wallets: getEnv("WALLETS_FILE", "wallets.json"),
			Bearers: getEnv("BEARERS_FILE", "bearers.json"),
		},
		Incentive: IncentiveConfig{
			BaseURL: strings.TrimRight(getEnv("INCENTIVE_API_URL", "https://api.assisterr.ai"), "/"),
			Timeout: getEnvAsDuration("INCENTIVE_API_TIMEOUT", 15*time.Second),
		},
		Schedule: ScheduleConfig{
			AuthDelay:       getEnvAsDuration("AUTH_DELAY", time.Second),
			CheckInDelay:    getEnvAsDuration("CHECKIN_DELAY", time.Second),
			UsernameDelay:   getEnvAsDuration("USERNAME_DELAY", 500*time.Millisecond),
			CheckInInterval: getEnvAsDuration("CHECKIN_INTERVAL", 24*time.Hour),
		},
		DB: DBConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks for required variables
func validate(cfg *Config) error {
	if cfg.Incentive.BaseURL == "" {
		return fmt.Errorf("INCENTIVE_API_URL is required")
	}
	if cfg.Files.Wallets == "" || cfg.Files.Bearers == "" {
		return fmt.Errorf("WALLETS_FILE and BEARERS_FILE cannot be empty")
	}
	if cfg.Schedule.CheckInInterval <= 0 {
		return fmt.Errorf("CHECKIN_INTERVAL must be positive")
	}
	if cfg.Schedule.AuthDelay < 0 || cfg.Schedule.CheckInDelay < 0 || cfg.Schedule.UsernameDelay < 0 {
		return fmt.Errorf("delays cannot be negative")
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return fallback
}

func sanitizeCredential(value string) string {
	return strings.Trim(strings.TrimSpace(value), "\"")
}

// Helper to get env var as a time.Duration ("1s", "24h")
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}
