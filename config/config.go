// Package config reads process settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/storage"
)

// Config holds every setting the CLI and HTTP server need.
type Config struct {
	DataSource  string // local path or s3://bucket/key
	HTTPAddr    string
	LogLevel    string
	LogFormat   string
	RedisURL    string // empty disables redis; the in-memory cache is used
	CacheTTL    time.Duration
	CORSOrigins []string
	S3          storage.Config
}

// Load reads .env (outside production) and then the environment.
func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	ttl, err := time.ParseDuration(env("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("CACHE_TTL: %w", err)
	}

	return Config{
		DataSource:  env("DATA_SOURCE", "data/pizza_sales.xlsx"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		LogLevel:    env("LOG_LEVEL", "info"),
		LogFormat:   env("LOG_FORMAT", "json"),
		RedisURL:    env("REDIS_URL", ""),
		CacheTTL:    ttl,
		CORSOrigins: splitList(env("CORS_ORIGINS", "*")),
		S3: storage.Config{
			Endpoint:  env("S3_ENDPOINT", ""),
			Region:    env("S3_REGION", "auto"),
			AccessKey: env("S3_ACCESS_KEY", ""),
			SecretKey: env("S3_SECRET_KEY", ""),
		},
	}, nil
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if c.DataSource == "" {
		return fmt.Errorf("data source cannot be empty")
	}
	if err := validateAddr(c.HTTPAddr); err != nil {
		return err
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative: %s", c.CacheTTL)
	}
	if c.S3.AccessKey != "" && c.S3.SecretKey == "" {
		return fmt.Errorf("S3_SECRET_KEY is required when S3_ACCESS_KEY is set")
	}
	return nil
}

func validateAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address '%s': %w", addr, err)
	}
	return validatePort(port)
}

func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port number '%s': must be a number", port)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("invalid port number '%d': must be between 1 and 65535", n)
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
