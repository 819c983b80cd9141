package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/AnjaliSharma2212/portfolio-app/internal/contact"
)

// Config is read once at startup from the environment (and .env if present).
type Config struct {
	Port          string
	FormEndpoint  string
	AdminUsername string
	AdminPassword string
	DatabasePath  string
	AllowedHosts  []string
	ContactRate   float64
	ContactBurst  int
	SessionTTL    time.Duration
	ContentFile   string
	SecureCookies bool
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:          envOr("PORT", "8080"),
		FormEndpoint:  envOr("FORM_ENDPOINT", contact.DefaultEndpoint),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		DatabasePath:  os.Getenv("DATABASE_PATH"),
		ContentFile:   os.Getenv("CONTENT_FILE"),
		ContactRate:   10,
		ContactBurst:  3,
		SessionTTL:    24 * time.Hour,
	}

	for _, h := range strings.Split(os.Getenv("ALLOWED_HOSTS"), ",") {
		if h = strings.TrimSpace(h); h != "" {
			cfg.AllowedHosts = append(cfg.AllowedHosts, h)
		}
	}

	if v := os.Getenv("CONTACT_RATE_PER_MINUTE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("CONTACT_RATE_PER_MINUTE: %w", err)
		}
		cfg.ContactRate = rate
	}
	if v := os.Getenv("CONTACT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("CONTACT_BURST: %w", err)
		}
		cfg.ContactBurst = burst
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("SESSION_TTL: %w", err)
		}
		if ttl <= 0 {
			return cfg, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
		}
		cfg.SessionTTL = ttl
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("SECURE_COOKIES: %w", err)
		}
		cfg.SecureCookies = secure
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
