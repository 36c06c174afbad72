package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config stores all configuration of the application. It is built once in
// main and passed to every component that needs it; nothing reads the
// environment after startup.
type Config struct {
	// Database
	DatabaseURL string

	// Auth
	APIKey                   string
	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int

	// Server
	CORSOrigins []string
	Port        string
	Debug       bool
}

// Load reads configuration from environment variables. DATABASE_URL,
// SECRET_KEY and API_KEY are required; missing any of them is a startup
// error.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		APIKey:                   os.Getenv("API_KEY"),
		SecretKey:                os.Getenv("SECRET_KEY"),
		Algorithm:                getEnv("ALGORITHM", "HS256"),
		AccessTokenExpireMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		Port:                     getEnv("PORT", "8000"),
		Debug:                    getEnvAsBool("DEBUG", false),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.SecretKey == "" {
		missing = append(missing, "SECRET_KEY")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
