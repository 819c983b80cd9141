package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnjaliSharma2212/portfolio-app/internal/contact"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "FORM_ENDPOINT", "ALLOWED_HOSTS", "CONTACT_RATE_PER_MINUTE", "CONTACT_BURST", "SESSION_TTL", "SECURE_COOKIES"} {
		t.Setenv(k, "")
	}

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, contact.DefaultEndpoint, cfg.FormEndpoint)
	assert.Empty(t, cfg.AllowedHosts)
	assert.Equal(t, 10.0, cfg.ContactRate)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_HOSTS", "anjali.dev, www.anjali.dev ,")
	t.Setenv("CONTACT_RATE_PER_MINUTE", "2.5")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SECURE_COOKIES", "true")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"anjali.dev", "www.anjali.dev"}, cfg.AllowedHosts)
	assert.Equal(t, 2.5, cfg.ContactRate)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "-1h")
	_, err := loadConfig()
	assert.Error(t, err)

	t.Setenv("SESSION_TTL", "")
	t.Setenv("CONTACT_RATE_PER_MINUTE", "lots")
	_, err = loadConfig()
	assert.Error(t, err)
}
