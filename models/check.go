package models

// CheckRequest is the payload for POST /api/v1/check-site.
//
// URL is deliberately untyped here: the handler validates presence and type
// itself so that a missing key, a non-string value, and an empty string each
// produce their own message instead of one generic binding error.
type CheckRequest struct {
	URL any `json:"url"`
}

// CheckResponse is the response for POST /api/v1/check-site.
//
// The wire contract is intentionally flat: on success {compatible, frameworks},
// on any failure {compatible:false, error}. Fetch failures, parse failures and
// "site builder detected" all share the error field and are distinguished only
// by message text.
type CheckResponse struct {
	// Compatible reports whether the site can be worked with. False when a
	// site builder was detected or when the page could not be analyzed.
	Compatible bool `json:"compatible"`

	// Frameworks lists detected JS frameworks in canonical order, or
	// ["Unknown"] when nothing matched. Omitted on failure.
	Frameworks []string `json:"frameworks,omitempty"`

	// Error is the human-readable failure message. Omitted on success.
	Error string `json:"error,omitempty"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching disabled).
	CacheStatus string `json:"cache_status,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
