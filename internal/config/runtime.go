package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultKeyID         = "rzp_test_key"
	defaultKeySecret     = "change-me-razorpay-secret"
	defaultWebhookSecret = "change-me-webhook-secret"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultAdminEmail    = "sriabhayanjaneyaswamytemplegpl@gmail.com"
	defaultAdminPhone    = "8885209456"
	defaultTempleName    = "Sri Abhayanjaneya Swamy Temple"
)

// RuntimeConfig carries everything read from the environment at startup,
// including the designated operator identities that are always admins even
// before any admins-table row exists.
type RuntimeConfig struct {
	AppEnv string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	JWTSecret string

	AdminEmail string
	AdminPhone string
	TempleName string

	StorageBackend string // "local" or "s3"
	StorageDir     string
	StorageBaseURL string
	S3Bucket       string
	S3Region       string
}

func Load() (*RuntimeConfig, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}

	cfg := &RuntimeConfig{
		AppEnv:                strings.ToLower(appEnv),
		RazorpayKeyID:         getEnv("RAZORPAY_KEY_ID", defaultKeyID),
		RazorpayKeySecret:     getEnv("RAZORPAY_KEY_SECRET", defaultKeySecret),
		RazorpayWebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", defaultWebhookSecret),
		JWTSecret:             getEnv("JWT_SECRET", defaultJWTSecret),
		AdminEmail:            getEnv("ADMIN_EMAIL", defaultAdminEmail),
		AdminPhone:            getEnv("ADMIN_PHONE", defaultAdminPhone),
		TempleName:            getEnv("TEMPLE_NAME", defaultTempleName),
		StorageBackend:        getEnv("STORAGE_BACKEND", "local"),
		StorageDir:            getEnv("STORAGE_DIR", "./uploads"),
		StorageBaseURL:        getEnv("STORAGE_BASE_URL", "/static/uploads"),
		S3Bucket:              os.Getenv("S3_BUCKET"),
		S3Region:              getEnv("AWS_REGION", "ap-south-1"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *RuntimeConfig) error {
	if cfg.StorageBackend != "local" && cfg.StorageBackend != "s3" {
		return fmt.Errorf("STORAGE_BACKEND must be local or s3")
	}
	if cfg.StorageBackend == "s3" && cfg.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET must be set when STORAGE_BACKEND=s3")
	}
	if cfg.AdminEmail == "" || cfg.AdminPhone == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PHONE must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RazorpayKeySecret, defaultKeySecret) {
			return fmt.Errorf("in prod/release RAZORPAY_KEY_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RazorpayWebhookSecret, defaultWebhookSecret) {
			return fmt.Errorf("in prod/release RAZORPAY_WEBHOOK_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
