package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	SessionTTL    time.Duration
	SessionSecret string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	WidgetTimezone            string
	AvailabilityTimeout       time.Duration
	AvailabilityFallbackDelay time.Duration
	ValidationBannerTTL       time.Duration
	AvailabilityBannerTTL     time.Duration
	DebounceWindow            time.Duration
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		SessionTTL:    getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		SessionSecret: getEnv("SESSION_SECRET", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 40),

		WidgetTimezone:            getEnv("WIDGET_TIMEZONE", "UTC"),
		AvailabilityTimeout:       getEnvAsDuration("AVAILABILITY_TIMEOUT", 10*time.Second),
		AvailabilityFallbackDelay: getEnvAsDuration("AVAILABILITY_FALLBACK_DELAY", 2*time.Second),
		ValidationBannerTTL:       getEnvAsDuration("VALIDATION_BANNER_TTL", 3*time.Second),
		AvailabilityBannerTTL:     getEnvAsDuration("AVAILABILITY_BANNER_TTL", 5*time.Second),
		DebounceWindow:            getEnvAsDuration("DEBOUNCE_WINDOW", 200*time.Millisecond),
	}
}

// Location resolves WidgetTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c == nil || c.WidgetTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.WidgetTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
