package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	Prospect  ProspectConfig
	Webhook   WebhookConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls page retrieval for the check-site endpoint.
type FetchConfig struct {
	// Timeout is the fixed deadline for one fetch. No retries happen within
	// or around it.
	Timeout time.Duration // default: 10s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication. Off by default: the checker is
	// meant to sit behind the marketing site's own backend.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key or client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per identity.
	Burst int // default: 10
}

// CacheConfig controls the check-result cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached verdicts.
	MaxEntries int // default: 1000

	// TTL is how long a cached verdict stays valid. Zero disables caching.
	TTL time.Duration // default: 15m
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// ProspectConfig controls the prospecting pipeline.
type ProspectConfig struct {
	// ListingURL is the product listing page to harvest.
	ListingURL string // default: "https://www.producthunt.com/"

	// CookiePath is where browser cookies are persisted between runs, so a
	// manually solved bot challenge survives restarts.
	CookiePath string // default: "./prospect_cookies.json"

	// Headless controls whether the browser runs headless. Keep false when a
	// challenge needs solving by hand.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// ChallengeWait is how long to wait for a manual challenge solve when no
	// saved cookies exist.
	ChallengeWait time.Duration // default: 20s

	// MaxProducts bounds how many listing entries are processed per run.
	MaxProducts int // default: 5

	// SearchEndpoint is the instant-answer API used to resolve product sites.
	SearchEndpoint string // default: "https://api.duckduckgo.com/"

	// LookupsPerSecond throttles per-product lookups out of politeness.
	LookupsPerSecond float64 // default: 1

	// EmailScopeSelector optionally narrows email harvesting to a CSS
	// selector region of each page (e.g. "footer, .contact").
	EmailScopeSelector string

	// PageSpeedAPIKey enables the SEO audit step when non-empty.
	PageSpeedAPIKey string
}

// WebhookConfig controls run-completion notifications.
type WebhookConfig struct {
	// URL receives the completed prospect run. Empty disables delivery.
	URL string

	// Secret signs the payload with HMAC-SHA256 when non-empty.
	Secret string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SITECHECK_HOST", "0.0.0.0"),
			Port: envIntOr("SITECHECK_PORT", 8080),
			Mode: envOr("SITECHECK_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout: envDurationOr("SITECHECK_FETCH_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SITECHECK_AUTH_ENABLED", false),
			APIKeys: envSliceOr("SITECHECK_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SITECHECK_RATE_RPS", 5.0),
			Burst:             envIntOr("SITECHECK_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("SITECHECK_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("SITECHECK_CACHE_TTL", 15*time.Minute),
		},
		Log: LogConfig{
			Level:  envOr("SITECHECK_LOG_LEVEL", "info"),
			Format: envOr("SITECHECK_LOG_FORMAT", "json"),
		},
		Prospect: ProspectConfig{
			ListingURL:         envOr("SITECHECK_LISTING_URL", "https://www.producthunt.com/"),
			CookiePath:         envOr("SITECHECK_COOKIE_PATH", "./prospect_cookies.json"),
			Headless:           envBoolOr("SITECHECK_HEADLESS", true),
			NoSandbox:          envBoolOr("SITECHECK_NO_SANDBOX", false),
			BrowserBin:         os.Getenv("SITECHECK_BROWSER_BIN"),
			ChallengeWait:      envDurationOr("SITECHECK_CHALLENGE_WAIT", 20*time.Second),
			MaxProducts:        envIntOr("SITECHECK_MAX_PRODUCTS", 5),
			SearchEndpoint:     envOr("SITECHECK_SEARCH_ENDPOINT", "https://api.duckduckgo.com/"),
			LookupsPerSecond:   envFloatOr("SITECHECK_LOOKUP_RPS", 1.0),
			EmailScopeSelector: os.Getenv("SITECHECK_EMAIL_SCOPE"),
			PageSpeedAPIKey:    os.Getenv("PAGESPEED_INSIGHTS_API_KEY"),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("SITECHECK_WEBHOOK_URL"),
			Secret: os.Getenv("SITECHECK_WEBHOOK_SECRET"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
