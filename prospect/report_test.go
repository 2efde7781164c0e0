package prospect

import (
	"strings"
	"testing"
	"time"

	"github.com/prospectkit/sitecheck/models"
)

func TestSummarize(t *testing.T) {
	s := NewSummarizer()
	html := `<html><head><title>Acme</title><script>track()</script></head>
	<body><article><h1>Acme Analytics</h1>
	<p>Product analytics without the dashboard sprawl. Acme gives small teams
	the answers they need in minutes, not weeks of setup. Connect your data
	sources, ask questions in plain language, and share living reports.</p>
	<p>Trusted by over two thousand teams worldwide.</p></article></body></html>`

	got := s.Summarize(html, "https://acme.io")
	if got == "" {
		t.Fatal("expected non-empty summary")
	}
	if !strings.Contains(got, "Acme") {
		t.Errorf("summary lost product name: %q", got)
	}
	if strings.Contains(got, "track()") {
		t.Errorf("summary contains script content: %q", got)
	}
}

func TestSummarize_Truncation(t *testing.T) {
	s := NewSummarizer()
	html := "<html><body><p>" + strings.Repeat("word ", 2000) + "</p></body></html>"

	got := s.Summarize(html, "https://acme.io")
	if len(got) > maxSummaryLength+len("…") {
		t.Errorf("summary length = %d, want <= %d", len(got), maxSummaryLength+len("…"))
	}
}

func TestRenderMarkdownReport(t *testing.T) {
	run := &models.ProspectRun{
		ListingURL: "https://www.producthunt.com/",
		StartedAt:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 1, 9, 5, 0, 0, time.UTC),
		Skipped:    1,
		Leads: []models.Lead{
			{
				Name:    "Acme Analytics",
				PostURL: "https://www.producthunt.com/posts/acme-analytics",
				Website: "https://acme.io",
				Emails:  []string{"hello@acme.io"},
				Summary: "Product analytics for small teams.",
				Issues: []models.AuditIssue{
					{ID: "meta-description", Description: "Document does not have a meta description"},
				},
			},
		},
	}

	report := RenderMarkdownReport(run)

	for _, want := range []string{
		"# Prospect report",
		"## Acme Analytics",
		"https://acme.io",
		"hello@acme.io",
		"**meta-description**",
		"skipped 1",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
