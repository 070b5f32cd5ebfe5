package config

import (
	"os"
	"strconv"
	"time"
)

// defaultUserAgent is a browser-like identity. Storefronts routinely serve
// stripped-down markup to anything that identifies as a bot.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port int // HTTP server port

	// Scan configuration
	RequestTimeout   time.Duration // Per-request timeout (page and each script)
	ScanTimeout      time.Duration // Overall timeout for one scan
	DefaultUserAgent string        // User-Agent sent with outbound requests
	MaxScripts       int           // Cap on external scripts retrieved per scan
	RateLimit        int           // Outbound requests per second per host (0 = unlimited)
	SignaturesFile   string        // Optional YAML file with extra signatures
}

// Load reads configuration from environment variables
// and returns a Config struct with defaults applied
func Load() *Config {
	return &Config{
		Port:             getEnvAsInt("PORT", 8080),
		RequestTimeout:   getEnvAsDuration("REQUEST_TIMEOUT", 15000*time.Millisecond),
		ScanTimeout:      getEnvAsDuration("SCAN_TIMEOUT", 60000*time.Millisecond),
		DefaultUserAgent: getEnv("DEFAULT_USER_AGENT", defaultUserAgent),
		MaxScripts:       getEnvAsInt("MAX_SCRIPTS", 15),
		RateLimit:        getEnvAsInt("RATE_LIMIT", 8),
		SignaturesFile:   getEnv("SIGNATURES_FILE", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as an integer
// If the variable doesn't exist or can't be parsed, returns the default
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsDuration reads an environment variable as milliseconds and converts to time.Duration
// If the variable doesn't exist or can't be parsed, returns the default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	// Parse as milliseconds
	ms, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return time.Duration(ms) * time.Millisecond
}
