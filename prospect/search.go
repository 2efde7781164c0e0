package prospect

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const searchUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// skipDomains are hosts that can never be a product's own website: the
// listing site itself, social profiles, and generic reference sites.
var skipDomains = []string{
	"producthunt.com", "twitter.com", "x.com", "facebook.com",
	"linkedin.com", "instagram.com", "github.com", "youtube.com",
	"medium.com", "lu.ma", "google.com", "wikipedia.org",
}

// Searcher resolves product websites via a search engine's instant-answer
// API.
type Searcher struct {
	endpoint string
	client   *http.Client
}

// NewSearcher creates a Searcher against the given instant-answer endpoint.
func NewSearcher(endpoint string) *Searcher {
	return &Searcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// instantAnswer is the subset of the instant-answer response we consult,
// in order of reliability.
type instantAnswer struct {
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
	Redirect string `json:"Redirect"`
}

// ProductWebsite searches for the product's own website. It returns an
// empty string (and no error) when the search succeeds but yields nothing
// usable.
func (s *Searcher) ProductWebsite(ctx context.Context, productName string) (string, error) {
	cleanName := strings.TrimSpace(strings.ReplaceAll(productName, "-", " "))
	query := fmt.Sprintf("what is %s on product hunt -producthunt -twitter -facebook", cleanName)

	params := url.Values{
		"q":           {query},
		"format":      {"json"},
		"no_html":     {"1"},
		"no_redirect": {"1"},
		"kl":          {"wt-wt"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", searchUA)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("search returned non-OK status", "status", resp.StatusCode, "product", productName)
		return "", nil
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}

	// The abstract is usually the most relevant result; related topics and
	// the redirect URL are progressively weaker fallbacks.
	if LikelyProductURL(answer.AbstractURL) {
		return answer.AbstractURL, nil
	}
	for _, topic := range answer.RelatedTopics {
		if LikelyProductURL(topic.FirstURL) {
			return topic.FirstURL, nil
		}
	}
	if LikelyProductURL(answer.Redirect) {
		return answer.Redirect, nil
	}

	return "", nil
}

// LikelyProductURL reports whether a URL plausibly points at a product's own
// website rather than a social profile, a search page, or the listing site.
func LikelyProductURL(raw string) bool {
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Host)
	for _, skip := range skipDomains {
		if strings.Contains(host, skip) {
			return false
		}
	}

	lower := strings.ToLower(raw)
	for _, term := range []string{"search?", "profile", "/search/", "/users/"} {
		if strings.Contains(lower, term) {
			return false
		}
	}

	return true
}
