package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prospectkit/sitecheck/cache"
	"github.com/prospectkit/sitecheck/detect"
	"github.com/prospectkit/sitecheck/fetch"
	"github.com/prospectkit/sitecheck/models"
)

// CheckSite returns a handler for POST /api/v1/check-site.
//
// Status-code contract:
//
//	400 — request validation failures (absent body, missing/mistyped/empty url)
//	200 — everything downstream of validation, including fetch failures and
//	      "site builder detected": those are domain verdicts, not transport
//	      errors, and are reported as {compatible:false, error}.
//	500 — handler panics (gin.Recovery backstop).
//
// Callers can only tell "blocked by policy" from "could not analyze" by the
// error text. That is a known weakness of the wire contract, kept for
// compatibility with existing consumers.
func CheckSite(f *fetch.Fetcher, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, ok := validateRequest(c)
		if !ok {
			return
		}

		normalized := fetch.NormalizeURL(url)

		// Cache lookup.
		key := cache.Key(normalized)
		if cached, hit := cc.Get(key); hit {
			resp := cached.(models.CheckResponse)
			resp.CacheStatus = "hit"
			c.JSON(http.StatusOK, resp)
			return
		}

		start := time.Now()
		resp, cacheable := runCheck(c, f, normalized)

		if resp.Error == "" {
			slog.Info("site checked",
				"url", normalized,
				"compatible", resp.Compatible,
				"frameworks", resp.Frameworks,
				"duration", time.Since(start),
			)
		} else {
			slog.Info("site check failed",
				"url", normalized,
				"error", resp.Error,
				"duration", time.Since(start),
			)
		}

		if cacheable {
			cc.Set(key, resp)
		}
		resp.CacheStatus = "miss"
		c.JSON(http.StatusOK, resp)
	}
}

// validateRequest enforces the input taxonomy. Each failure mode owns its
// message, so the checks cannot be folded into a single binding call.
func validateRequest(c *gin.Context) (string, bool) {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil || payload == nil {
		c.JSON(http.StatusBadRequest, models.CheckResponse{Error: "No data provided"})
		return "", false
	}

	raw, exists := payload["url"]
	if !exists {
		c.JSON(http.StatusBadRequest, models.CheckResponse{Error: "URL is required"})
		return "", false
	}

	// A JSON null unmarshals into a string as a no-op, so it has to be
	// rejected explicitly: null is not a string.
	var url string
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &url) != nil {
		c.JSON(http.StatusBadRequest, models.CheckResponse{Error: "URL must be a string"})
		return "", false
	}

	url = strings.TrimSpace(url)
	if url == "" {
		c.JSON(http.StatusBadRequest, models.CheckResponse{Error: "URL cannot be empty"})
		return "", false
	}

	return url, true
}

// runCheck performs fetch → parse → classify for an already-normalized URL.
// It never returns a transport-level failure: anything that goes wrong comes
// back as {compatible:false, error}, and a stray panic is flattened into an
// "Unexpected error" verdict so one bad page cannot take the process down.
//
// cacheable is false for transient outcomes (timeouts, connection failures,
// panics) that must not be replayed from the cache for the full TTL.
func runCheck(c *gin.Context, f *fetch.Fetcher, url string) (resp models.CheckResponse, cacheable bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("check panicked", "url", url, "panic", r)
			resp = models.CheckResponse{
				Compatible: false,
				Error:      "Unexpected error: check failed",
			}
			cacheable = false
		}
	}()

	body, err := f.Fetch(c.Request.Context(), url)
	if err != nil {
		return models.CheckResponse{Compatible: false, Error: checkMessage(err)}, cacheableError(err)
	}
	slog.Debug("page fetched", "url", url, "bytes", len(body), "title", fetch.Title(body))

	doc, err := detect.ParseDocument(url, body)
	if err != nil {
		return models.CheckResponse{
			Compatible: false,
			Error:      "Error parsing website content: " + err.Error(),
		}, true
	}

	result := detect.Classify(doc)
	if !result.Compatible {
		return models.CheckResponse{Compatible: false, Error: result.Message}, true
	}
	return models.CheckResponse{Compatible: true, Frameworks: result.Frameworks}, true
}

// cacheableError reports whether a fetch failure is deterministic enough to
// cache. A timeout or refused connection says something about the moment,
// not the site; caching it would replay one flaky fetch to every caller
// until the TTL runs out.
func cacheableError(err error) bool {
	var checkErr *models.CheckError
	if errors.As(err, &checkErr) {
		switch checkErr.Code {
		case models.ErrCodeTimeout, models.ErrCodeConnection:
			return false
		}
	}
	return true
}

// checkMessage surfaces a CheckError's prepared message, falling back to a
// generic wrapper for anything untyped.
func checkMessage(err error) string {
	if checkErr, ok := err.(*models.CheckError); ok {
		return checkErr.Message
	}
	return "Error accessing the website: " + err.Error()
}
