package prospect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/prospectkit/sitecheck/models"
)

const defaultPageSpeedEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// Auditor runs the PageSpeed Insights SEO category against a website and
// reports the audits it failed.
type Auditor struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewAuditor creates an Auditor. An empty endpoint selects the public
// PageSpeed Insights API.
func NewAuditor(endpoint, apiKey string) *Auditor {
	if endpoint == "" {
		endpoint = defaultPageSpeedEndpoint
	}
	return &Auditor{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// pagespeedResult is the slice of the Lighthouse response we consume.
type pagespeedResult struct {
	LighthouseResult struct {
		Audits map[string]struct {
			Score       *float64 `json:"score"`
			Description string   `json:"description"`
			Details     struct {
				Items []map[string]any `json:"items"`
			} `json:"details"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

// FailingSEOAudits returns the SEO audits the site failed, sorted by audit
// ID. A nil slice with no error means a clean report.
func (a *Auditor) FailingSEOAudits(ctx context.Context, website string) ([]models.AuditIssue, error) {
	params := url.Values{
		"url":      {website},
		"category": {"seo"},
	}
	if a.apiKey != "" {
		params.Set("key", a.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build audit request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("audit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audit API returned status %d", resp.StatusCode)
	}

	var result pagespeedResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode audit response: %w", err)
	}

	var issues []models.AuditIssue
	for id, audit := range result.LighthouseResult.Audits {
		if audit.Score == nil || *audit.Score != 0 {
			continue
		}

		description := audit.Description
		if id == "robots-txt" {
			if snippet := robotsSnippet(audit.Details.Items); snippet != "" {
				description = fmt.Sprintf("%s (e.g. %s)", description, snippet)
			}
		}

		issues = append(issues, models.AuditIssue{ID: id, Description: description})
	}

	sort.Slice(issues, func(i, j int) bool { return issues[i].ID < issues[j].ID })
	return issues, nil
}

// robotsSnippet pulls the first offending robots.txt line out of the audit
// details, truncated so reports stay readable.
func robotsSnippet(items []map[string]any) string {
	for _, item := range items {
		line, ok := item["line"].(string)
		if !ok {
			if content, ok := item["lineContent"].(string); ok {
				line = content
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 100 {
			line = line[:100]
		}
		return line
	}
	return ""
}
