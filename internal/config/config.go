package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage driver names accepted by the API.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverBlob     = "blob"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	StorageDriver          string
	DatabaseURL            string
	BlobPath               string
	BlobLatency            time.Duration
	RedisURL               string
	JWTSecret              string
	JWTExpiry              time.Duration
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	AnalyticsCacheTTL      time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MARITIME")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "MarineDeck API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("blob.path", "data/state.json")
	v.SetDefault("blob.latency", "200ms")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("cloudinary.folder", "marinedeck/certificates")
	v.SetDefault("analytics.cache_ttl", "5m")

	blobLatency, err := time.ParseDuration(v.GetString("blob.latency"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid blob latency: %w", err)
	}

	jwtExpiry, err := time.ParseDuration(v.GetString("jwt.expiry"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt expiry: %w", err)
	}

	ttl, err := time.ParseDuration(v.GetString("analytics.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid analytics cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		StorageDriver:          strings.ToLower(v.GetString("storage.driver")),
		DatabaseURL:            v.GetString("database.url"),
		BlobPath:               v.GetString("blob.path"),
		BlobLatency:            blobLatency,
		RedisURL:               v.GetString("redis.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTExpiry:              jwtExpiry,
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		AnalyticsCacheTTL:      ttl,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverBlob:
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.StorageDriver == StorageDriverPostgres && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided for the postgres driver")
	}

	return cfg, nil
}
