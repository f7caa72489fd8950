package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Port         string
	CORSOrigins  []string
	CORSDebug    bool
	RateLimit    RateLimitConfig
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// ShutdownTimeout bounds how long in-flight requests get after the
	// context is cancelled.
	ShutdownTimeout time.Duration
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig(logger *zap.Logger) (Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using process environment")
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from getenv, applying defaults for unset keys.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	rps, err := strconv.ParseFloat(get("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("server: parse RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(get("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return Config{}, fmt.Errorf("server: parse RATE_LIMIT_BURST: %w", err)
	}
	readTimeout, err := strconv.Atoi(get("SERVER_READ_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return Config{}, fmt.Errorf("server: parse SERVER_READ_TIMEOUT_SECONDS: %w", err)
	}
	writeTimeout, err := strconv.Atoi(get("SERVER_WRITE_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return Config{}, fmt.Errorf("server: parse SERVER_WRITE_TIMEOUT_SECONDS: %w", err)
	}

	var origins []string
	for _, o := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := Config{
		Port:        get("PORT", "5000"),
		CORSOrigins: origins,
		CORSDebug:   get("CORS_DEBUG", "") == "true",
		RateLimit: RateLimitConfig{
			Enabled:           get("RATE_LIMIT_ENABLED", "true") == "true",
			RequestsPerSecond: rps,
			BurstSize:         burst,
			TrustProxy:        get("TRUST_PROXY", "") == "true",
		},
		ReadTimeout:     time.Duration(readTimeout) * time.Second,
		WriteTimeout:    time.Duration(writeTimeout) * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: defaultShutdownTimeout,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("server: PORT is required")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("server: RATE_LIMIT_RPS must be positive")
		}
		if c.RateLimit.BurstSize <= 0 {
			return fmt.Errorf("server: RATE_LIMIT_BURST must be positive")
		}
	}
	return nil
}
