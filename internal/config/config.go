package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Download DownloadConfig
	API      APIConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Host string
}

// UpstreamConfig bounds the calls made against the video platform.
type UpstreamConfig struct {
	ResolveTimeout time.Duration
	OEmbedTimeout  time.Duration
}

type DownloadConfig struct {
	BaseDir    string
	Timeout    time.Duration
	ChunkSize  int
	MP3Bitrate int
}

type APIConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "5000")
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")

	// Upstream configuration
	resolveTimeout, err := time.ParseDuration(getEnv("RESOLVE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESOLVE_TIMEOUT: %w", err)
	}
	cfg.Upstream.ResolveTimeout = resolveTimeout

	oembedTimeout, err := time.ParseDuration(getEnv("OEMBED_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OEMBED_TIMEOUT: %w", err)
	}
	cfg.Upstream.OEmbedTimeout = oembedTimeout

	// Download configuration
	cfg.Download.BaseDir = getEnv("DOWNLOAD_DIR", "downloads")
	downloadTimeout, err := time.ParseDuration(getEnv("DOWNLOAD_TIMEOUT", "300s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DOWNLOAD_TIMEOUT: %w", err)
	}
	cfg.Download.Timeout = downloadTimeout
	cfg.Download.ChunkSize = getEnvInt("DOWNLOAD_CHUNK_SIZE", 8192)
	cfg.Download.MP3Bitrate = getEnvInt("MP3_BITRATE", 128)

	// API configuration
	cfg.API.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", 100)
	rateLimitWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	cfg.API.RateLimitWindow = rateLimitWindow

	// CORS configuration
	cfg.CORS.Enabled = getEnvBool("CORS_ENABLED", true)
	cfg.CORS.AllowedOrigins = getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.CORS.AllowedMethods = getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "OPTIONS"})
	cfg.CORS.AllowedHeaders = getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{
		"Origin", "Content-Type", "Accept",
	})
	cfg.CORS.AllowCredentials = getEnvBool("CORS_ALLOW_CREDENTIALS", false)
	corsMaxAge, err := time.ParseDuration(getEnv("CORS_MAX_AGE", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CORS_MAX_AGE: %w", err)
	}
	cfg.CORS.MaxAge = corsMaxAge

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(strings.TrimSpace(value), ",")
	}
	return defaultValue
}
