package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prospectkit/sitecheck/cache"
	"github.com/prospectkit/sitecheck/fetch"
	"github.com/prospectkit/sitecheck/models"
)

func newTestRouter(timeout time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/check-site", CheckSite(fetch.New(timeout), cache.New(100, time.Minute)))
	return r
}

func postCheck(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, models.CheckResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/check-site", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp models.CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func TestCheckSite_Validation(t *testing.T) {
	r := newTestRouter(time.Second)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"no body", "", "No data provided"},
		{"invalid json", "{", "No data provided"},
		{"missing url", `{"site":"example.com"}`, "URL is required"},
		{"non-string url", `{"url":123}`, "URL must be a string"},
		{"null url", `{"url":null}`, "URL must be a string"},
		{"empty url", `{"url":"   "}`, "URL cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postCheck(t, r, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if resp.Error != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, resp.Error)
			}
			if resp.Compatible {
				t.Error("validation failures must report compatible=false")
			}
		})
	}
}

func TestCheckSite_DetectsFramework(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div id="root" data-reactroot=""></div></body></html>`))
	}))
	defer upstream.Close()

	r := newTestRouter(2 * time.Second)
	w, resp := postCheck(t, r, `{"url":"`+upstream.URL+`"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !resp.Compatible {
		t.Fatalf("expected compatible verdict, got %+v", resp)
	}
	found := false
	for _, fw := range resp.Frameworks {
		if fw == "React" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected React in frameworks, got %v", resp.Frameworks)
	}
}

func TestCheckSite_BuilderIsDomainError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><script src="https://cdn.shopify.com/assets/theme.js"></script></body></html>`))
	}))
	defer upstream.Close()

	r := newTestRouter(2 * time.Second)
	w, resp := postCheck(t, r, `{"url":"`+upstream.URL+`"}`)

	// Builder detection is a domain verdict, not a transport failure: 200.
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp.Compatible {
		t.Fatalf("expected incompatible verdict, got %+v", resp)
	}
	if !strings.Contains(resp.Error, "Framework not supported") || !strings.Contains(resp.Error, "Shopify") {
		t.Errorf("unexpected error text: %q", resp.Error)
	}
	if len(resp.Frameworks) != 0 {
		t.Errorf("frameworks must be omitted on failure, got %v", resp.Frameworks)
	}
}

func TestCheckSite_TimeoutIsDomainError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer upstream.Close()

	r := newTestRouter(100 * time.Millisecond)
	w, resp := postCheck(t, r, `{"url":"`+upstream.URL+`"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("fetch failures are domain-level: expected 200, got %d", w.Code)
	}
	if resp.Compatible {
		t.Error("expected compatible=false")
	}
	if resp.Error != "Request timed out. Please check the URL and try again." {
		t.Errorf("unexpected error text: %q", resp.Error)
	}
}

func TestCheckSite_CacheHit(t *testing.T) {
	hits := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`<html><body><div id="__next"></div></body></html>`))
	}))
	defer upstream.Close()

	r := newTestRouter(2 * time.Second)
	_, first := postCheck(t, r, `{"url":"`+upstream.URL+`"}`)
	_, second := postCheck(t, r, `{"url":"`+upstream.URL+`"}`)

	if first.CacheStatus != "miss" {
		t.Errorf("first response should be a miss, got %q", first.CacheStatus)
	}
	if second.CacheStatus != "hit" {
		t.Errorf("second response should be a hit, got %q", second.CacheStatus)
	}
	if hits != 1 {
		t.Errorf("upstream should be fetched once, got %d", hits)
	}
	if !second.Compatible || second.Frameworks[0] != "Next.js" {
		t.Errorf("cached verdict mangled: %+v", second)
	}
}

func TestCheckSite_TimeoutNotCached(t *testing.T) {
	// First request times out; the upstream recovers for the second. A
	// cached timeout verdict would replay the error instead of refetching.
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			time.Sleep(2 * time.Second)
			return
		}
		w.Write([]byte(`<html><body><div id="root" data-reactroot=""></div></body></html>`))
	}))
	defer upstream.Close()

	r := newTestRouter(300 * time.Millisecond)

	_, first := postCheck(t, r, `{"url":"`+upstream.URL+`"}`)
	if first.Error != "Request timed out. Please check the URL and try again." {
		t.Fatalf("expected timeout verdict first, got %+v", first)
	}

	_, second := postCheck(t, r, `{"url":"`+upstream.URL+`"}`)
	if second.CacheStatus != "miss" {
		t.Errorf("transient failure was cached: second status %q", second.CacheStatus)
	}
	if !second.Compatible {
		t.Errorf("expected recovered verdict on retry, got %+v", second)
	}
}
