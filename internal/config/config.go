package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultDatabaseURL  = "assetdesk.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTAccessTTL = "24h"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration

	// ImageKit credentials for item photo uploads. Uploads are disabled when
	// the private key is empty.
	ImageKitPrivateKey  string
	ImageKitPublicKey   string
	ImageKitURLEndpoint string
	ImageKitFolder      string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.ImageKitPrivateKey = strings.TrimSpace(os.Getenv("IMAGEKIT_PRIVATE_KEY"))
	cfg.ImageKitPublicKey = strings.TrimSpace(os.Getenv("IMAGEKIT_PUBLIC_KEY"))
	cfg.ImageKitURLEndpoint = strings.TrimSpace(os.Getenv("IMAGEKIT_URL_ENDPOINT"))
	cfg.ImageKitFolder = getEnv("IMAGEKIT_FOLDER", "/assetdesk-inventory")

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
