package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a group of routes.
type EndpointConfig struct {
	Path   string        // Route path; a trailing "/" matches every path below it
	Method string        // HTTP method, or "*" for any
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt("RATE_LIMIT_AUTH_LIMIT", 10)),
	}
}

// DefaultEndpointConfigs returns the tracker's endpoint tiers. authLimit caps
// credential checks per client per minute.
func DefaultEndpointConfigs(authLimit int) []EndpointConfig {
	authBurst := max(authLimit/2, 1)
	return []EndpointConfig{
		// Tier 1: credential checks
		{Path: "/api/auth/login", Method: "POST", Limit: authLimit, Window: time.Minute, Burst: authBurst},
		{Path: "/api/auth/register", Method: "POST", Limit: authLimit, Window: time.Minute, Burst: authBurst},
		{Path: "/api/auth/password", Method: "PUT", Limit: authLimit, Window: time.Minute, Burst: authBurst},

		// Tier 2: writes
		{Path: "/api/applications", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/applications/", Method: "PUT", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/applications/", Method: "DELETE", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/interviews", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/interviews/", Method: "DELETE", Limit: 120, Window: time.Minute, Burst: 20},

		// Tier 3: reads use the default limit
		// Tier 4: health and schema documents are unlimited
		{Path: "/api/schemas/", Method: "GET", Limit: 0},
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
