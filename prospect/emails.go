package prospect

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/prospectkit/sitecheck/fetch"
)

// contactPaths are the site paths most likely to carry a mailto link, tried
// in order after the homepage.
var contactPaths = []string{"", "about", "contact", "team", "info", "support"}

// Harvester collects contact emails from a product's website.
type Harvester struct {
	fetcher       *fetch.Fetcher
	scopeSelector string
}

// NewHarvester creates a Harvester. scopeSelector optionally narrows the
// markup searched for mailto links (footers are a common choice); empty
// means the whole page.
func NewHarvester(fetcher *fetch.Fetcher, scopeSelector string) *Harvester {
	return &Harvester{fetcher: fetcher, scopeSelector: scopeSelector}
}

// HarvestEmails fetches the site's likely contact pages and returns every
// distinct mailto address found, sorted. Individual page failures are
// logged and skipped.
//
// Contact paths are joined onto the site root, not the website URL as
// given: resolved websites often carry tracking queries (?ref=...), and
// appending a path to those would land it inside the query string.
func (h *Harvester) HarvestEmails(ctx context.Context, website string) []string {
	root := siteRoot(fetch.NormalizeURL(website))

	seen := make(map[string]struct{})
	for _, path := range contactPaths {
		pageURL := root
		if path != "" {
			pageURL = root + "/" + path
		}

		body, err := h.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			slog.Debug("contact page fetch failed", "url", pageURL, "error", err)
			continue
		}

		for _, email := range extractMailtos(string(body), h.scopeSelector) {
			seen[email] = struct{}{}
		}
	}

	emails := make([]string, 0, len(seen))
	for email := range seen {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

// extractMailtos pulls the addresses out of a page's mailto anchors,
// stripping any ?subject=... style query suffix. scopeSelector optionally
// narrows which part of the page is searched.
func extractMailtos(markup, scopeSelector string) []string {
	var emails []string
	for _, a := range mailtoAnchors(markup, scopeSelector) {
		for _, attr := range a.Attr {
			if attr.Key != "href" {
				continue
			}
			addr := strings.TrimPrefix(attr.Val, "mailto:")
			if i := strings.Index(addr, "?"); i >= 0 {
				addr = addr[:i]
			}
			addr = strings.TrimSpace(addr)
			if addr != "" {
				emails = append(emails, addr)
			}
		}
	}
	return emails
}
