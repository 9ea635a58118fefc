package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example/, https://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderResend, cfg.EmailProvider)
	assert.True(t, cfg.EmailDevFallback)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.SubmissionWindow())
	assert.Equal(t, 5, cfg.RateLimitSubmissionMax)
}

func TestLoadConfigProductionDisablesFallback(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("EMAIL_PROVIDER", "smtp")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.EmailDevFallback)
	assert.Equal(t, ProviderSMTP, cfg.EmailProvider)
}

func TestLoadConfigExplicitFallbackWins(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("EMAIL_DEV_FALLBACK", "true")
	t.Setenv("RATE_LIMIT_SUBMISSION_MAX", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.EmailDevFallback)
	assert.Equal(t, 5, cfg.RateLimitSubmissionMax)
}
