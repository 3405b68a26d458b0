package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr           = ":8080"
	defaultDatabaseURL        = "cospace.db"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultJWTTTL             = "24h"
	defaultLifecycleInterval  = "5m"
	defaultConfirmationWindow = "5m"
	defaultApprovalInterval   = "0"
)

type RuntimeConfig struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	// LifecycleInterval is how often the reservation lifecycle scheduler
	// ticks; ConfirmationWindow is the grace period after which a pending
	// reservation auto-confirms.
	LifecycleInterval  time.Duration
	ConfirmationWindow time.Duration

	// ApprovalInterval of zero keeps the listing approval job as a
	// run-once-at-startup task.
	ApprovalInterval time.Duration
}

func LoadRuntimeConfig() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.LifecycleInterval, err = parseDurationEnv("LIFECYCLE_INTERVAL", defaultLifecycleInterval); err != nil {
		return nil, err
	}
	if cfg.ConfirmationWindow, err = parseDurationEnv("CONFIRMATION_WINDOW", defaultConfirmationWindow); err != nil {
		return nil, err
	}
	if cfg.ApprovalInterval, err = parseDurationEnv("APPROVAL_INTERVAL", defaultApprovalInterval); err != nil {
		return nil, err
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
