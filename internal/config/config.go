package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-app-core/internal/common"
	"github.com/i474232898/weather-app-core/internal/weather/providers"
)

type AppConfig struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// Outbound rate limit; RateLimitRPS <= 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	// Profiles come from MongoDB when MongoURI is set, otherwise from memory.
	MongoURI      string
	MongoDatabase string

	// Notification job.
	NotifyInterval time.Duration
	NotifyUsers    []string

	Port  string
	Debug bool
}

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := &AppConfig{
		WeatherAPIKey:     os.Getenv("WEATHERAPI_API_KEY"),
		WeatherAPIBaseURL: getenvDefault("WEATHERAPI_BASE_URL", providers.DefaultWeatherAPIBaseURL),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     getenvDefault("MONGO_DATABASE", "weather"),
		NotifyUsers:       common.SplitList(os.Getenv("NOTIFY_USERS")),
		Port:              getenvDefault("PORT", "8080"),
	}

	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHERAPI_API_KEY is required")
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.NotifyInterval, err = getenvDuration("NOTIFY_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}

	rps := getenvDefault("RATE_LIMIT_RPS", "5")
	if cfg.RateLimitRPS, err = strconv.ParseFloat(rps, 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = getenvInt("RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: must be at least 1 when RATE_LIMIT_RPS is set")
	}

	if v := os.Getenv("DEBUG"); v != "" {
		if cfg.Debug, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid DEBUG: %w", err)
		}
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
