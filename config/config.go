package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the explorer API.
type Config struct {
	Port        int
	BearerToken string
	MaxUploadMB int
	MaxDatasets int
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:        8080,
		MaxUploadMB: 32,
		MaxDatasets: 16,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if mbStr := os.Getenv("MAX_UPLOAD_MB"); mbStr != "" {
		if mb, err := strconv.Atoi(mbStr); err == nil && mb > 0 {
			cfg.MaxUploadMB = mb
		} else {
			return cfg, fmt.Errorf("invalid MAX_UPLOAD_MB: %s", mbStr)
		}
	}

	if dsStr := os.Getenv("MAX_DATASETS"); dsStr != "" {
		if ds, err := strconv.Atoi(dsStr); err == nil && ds > 0 {
			cfg.MaxDatasets = ds
		} else {
			return cfg, fmt.Errorf("invalid MAX_DATASETS: %s", dsStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MaxUploadBytes returns the multipart upload cap in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
