package prospect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const pagespeedFixture = `{
	"lighthouseResult": {
		"audits": {
			"document-title": {"score": 1, "description": "Document has a title element"},
			"meta-description": {"score": 0, "description": "Document does not have a meta description"},
			"robots-txt": {
				"score": 0,
				"description": "robots.txt is not valid",
				"details": {"items": [{"line": "Disallow: /"}]}
			},
			"is-crawlable": {"score": null, "description": "Not applicable"}
		}
	}
}`

func TestAuditor_FailingSEOAudits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category"); got != "seo" {
			t.Errorf("category = %q, want seo", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pagespeedFixture))
	}))
	defer srv.Close()

	a := NewAuditor(srv.URL, "test-key")
	issues, err := a.FailingSEOAudits(context.Background(), "https://acme.io")
	if err != nil {
		t.Fatalf("FailingSEOAudits: %v", err)
	}

	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %+v", len(issues), issues)
	}
	if issues[0].ID != "meta-description" {
		t.Errorf("issue 0 = %q, want meta-description", issues[0].ID)
	}
	if issues[1].ID != "robots-txt" {
		t.Errorf("issue 1 = %q, want robots-txt", issues[1].ID)
	}
	if !strings.Contains(issues[1].Description, "Disallow: /") {
		t.Errorf("robots-txt description missing line snippet: %q", issues[1].Description)
	}
}

func TestAuditor_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := NewAuditor(srv.URL, "")
	if _, err := a.FailingSEOAudits(context.Background(), "https://acme.io"); err == nil {
		t.Error("expected error for non-OK audit response")
	}
}

func TestRobotsSnippet_Truncates(t *testing.T) {
	long := strings.Repeat("x", 150)
	got := robotsSnippet([]map[string]any{{"line": long}})
	if len(got) != 100 {
		t.Errorf("snippet length = %d, want 100", len(got))
	}
}
