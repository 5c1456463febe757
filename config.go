package siteapi

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the server needs at startup. It is built once and
// passed into New; nothing reads the environment after that.
type Config struct {
	Addr         string // listen address (default ":4000", or ":"+PORT)
	DatabasePath string // SQLite path (default "data/site.db")
	UploadsDir   string // uploaded image directory (default "data/uploads")

	AdminToken string // required: shared secret for x-admin-token

	ResendAPIKey      string // required: outbound email provider key
	NotificationEmail string // required: contact form recipient
	FromEmail         string // required: sender address

	CacheTTL          time.Duration // published-content cache TTL (default 5min)
	ContactRateLimit  int           // contact submissions per IP per window (default 5)
	ContactRateWindow time.Duration // contact rate window (default 1min)
}

// LoadConfig reads configuration from environment variables. A missing
// required variable is a startup failure, never a request-time one.
func LoadConfig() (Config, error) {
	cfg := Config{
		Addr:              ":4000",
		DatabasePath:      "data/site.db",
		UploadsDir:        "data/uploads",
		CacheTTL:          5 * time.Minute,
		ContactRateLimit:  5,
		ContactRateWindow: time.Minute,
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		cfg.UploadsDir = v
	}

	var err error
	if cfg.AdminToken, err = requireEnv("ADMIN_TOKEN"); err != nil {
		return Config{}, err
	}
	if cfg.ResendAPIKey, err = requireEnv("RESEND_API_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.NotificationEmail, err = requireEnv("NOTIFICATION_EMAIL"); err != nil {
		return Config{}, err
	}
	if cfg.FromEmail, err = requireEnv("FROM_EMAIL"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s environment variable is required", key)
	}
	return v, nil
}
