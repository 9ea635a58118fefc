package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Email provider names accepted in EMAIL_PROVIDER
const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
)

type Config struct {
	Port        string
	Environment string // "production" or "development"
	BrandName   string
	// Comma separated list of site origins allowed to post forms
	AllowedOrigins []string
	// Email delivery
	EmailProvider    string
	ResendAPIKey     string
	EmailTo          string
	EmailFrom        string
	EmailDevFallback bool // Report success without sending when delivery config is incomplete
	// SMTP Configuration (used when EMAIL_PROVIDER=smtp)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitSubmissionMax   int
	RateLimitGlobalThreshold int
	RateLimitGlobalWindow    int
}

func LoadConfig() (*Config, error) {
	// Load .env file when present (local development only)
	_ = godotenv.Load()

	env := strings.ToLower(getEnv("APP_ENV", "development"))

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		BrandName:      getEnv("BRAND_NAME", "Atlantic Drive Tours"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "https://www.atlanticdrivetours.ie,https://atlanticdrivetours.ie")),
		// Email
		EmailProvider:    strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderResend)),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		EmailTo:          getEnv("EMAIL_TO", ""),
		EmailFrom:        getEnv("EMAIL_FROM", ""),
		EmailDevFallback: getEnvBool("EMAIL_DEV_FALLBACK", env != "production"),
		// SMTP
		SMTPHost:     getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		// Redis/Upstash
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate limiting
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 3600),  // 1 hour window
		RateLimitSubmissionMax:   getEnvInt("RATE_LIMIT_SUBMISSION_MAX", 5),     // 5 submissions per window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 60),  // 60 requests per global window
		RateLimitGlobalWindow:    getEnvInt("RATE_LIMIT_GLOBAL_WINDOW_SECONDS", 60),
	}

	if cfg.EmailProvider != ProviderResend && cfg.EmailProvider != ProviderSMTP {
		log.Printf("WARNING: unknown EMAIL_PROVIDER %q, using %q", cfg.EmailProvider, ProviderResend)
		cfg.EmailProvider = ProviderResend
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory store.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SubmissionWindow is the rate limit window for form submissions
func (c *Config) SubmissionWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// GlobalWindow is the rate limit window for the global per-IP limiter
func (c *Config) GlobalWindow() time.Duration {
	return time.Duration(c.RateLimitGlobalWindow) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
