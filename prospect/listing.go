package prospect

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// ListingEntry is one product card extracted from the listing page.
type ListingEntry struct {
	Name    string
	PostURL string
}

// expandButtonText identifies the control that reveals the full day's
// products instead of the trimmed homepage selection.
const expandButtonText = "See all of today's products"

// CollectListing opens the listing page, reuses or establishes a session,
// expands the product list, and returns the unique product entries in
// first-seen order.
func (b *Browser) CollectListing(ctx context.Context, listingURL string) ([]ListingEntry, error) {
	page, err := b.newPage(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	slog.Info("opening listing page", "url", listingURL)
	if err := page.Navigate(listingURL); err != nil {
		return nil, fmt.Errorf("navigate to listing: %w", err)
	}
	waitSettled(page)

	// Session handling: with saved cookies we just reload; without, the
	// operator gets a window to solve the bot challenge by hand, and the
	// resulting cookies are kept for next time.
	if err := b.LoadCookies(b.cfg.CookiePath); err != nil {
		slog.Warn("no saved cookies: solve the bot challenge manually in the browser window",
			"wait", b.cfg.ChallengeWait,
		)
		select {
		case <-time.After(b.cfg.ChallengeWait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if saveErr := b.SaveCookies(b.cfg.CookiePath); saveErr != nil {
			slog.Warn("could not persist cookies", "error", saveErr)
		}
	} else {
		if err := page.Reload(); err != nil {
			return nil, fmt.Errorf("reload with cookies: %w", err)
		}
		waitSettled(page)
	}

	before := len(b.snapshotEntries(page, listingURL))
	slog.Debug("products before expanding", "count", before)

	// Best effort: the expander may be absent when the listing is already
	// fully shown.
	if err := b.expandListing(ctx, page); err != nil {
		slog.Warn("could not expand listing, continuing with visible products", "error", err)
	}

	entries := b.snapshotEntries(page, listingURL)
	slog.Info("listing collected", "before", before, "after", len(entries))
	return entries, nil
}

// expandListing scrolls the "see all" button into view and clicks it.
func (b *Browser) expandListing(ctx context.Context, page *rod.Page) error {
	el, err := page.Timeout(15 * time.Second).ElementR("button", expandButtonText)
	if err != nil {
		return fmt.Errorf("expand button not found: %w", err)
	}
	if err := el.ScrollIntoView(); err != nil {
		return fmt.Errorf("scroll to expand button: %w", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click expand button: %w", err)
	}

	// Give the expanded cards time to stream in.
	select {
	case <-time.After(5 * time.Second):
	case <-ctx.Done():
		return ctx.Err()
	}
	waitSettled(page)
	return nil
}

// snapshotEntries parses the current DOM and extracts product entries.
// Extraction failures are not fatal: an unparseable snapshot just yields
// nothing.
func (b *Browser) snapshotEntries(page *rod.Page, listingURL string) []ListingEntry {
	html, err := page.HTML()
	if err != nil {
		slog.Warn("could not read listing HTML", "error", err)
		return nil
	}
	return extractListingEntries(html, listingURL)
}

// waitSettled waits for the DOM to stop mutating, proceeding with whatever
// is there when it does not converge.
func waitSettled(page *rod.Page) {
	if err := page.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("DOM did not settle, proceeding", "error", err)
	}
}

// extractListingEntries pulls product links out of the listing markup.
//
// Primary path: each product card links directly to its /posts/ page.
// Fallback: cards that only carry the post-name button get a slug-derived
// URL, matching how the listing site builds its own links.
func extractListingEntries(html, listingURL string) []ListingEntry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	base := siteRoot(listingURL)
	seen := make(map[string]struct{})
	var entries []ListingEntry

	section := doc.Find(`div[data-test="homepage-section-0"]`)
	section.Find(`section[data-test^="post-item-"]`).Each(func(_ int, card *goquery.Selection) {
		name, postURL := cardEntry(card, base)
		if postURL == "" {
			return
		}
		if _, dup := seen[postURL]; dup {
			return
		}
		seen[postURL] = struct{}{}
		entries = append(entries, ListingEntry{Name: name, PostURL: postURL})
	})

	return entries
}

// cardEntry resolves one product card to its name and post URL.
func cardEntry(card *goquery.Selection, base string) (name, postURL string) {
	link := card.Find("a[href]").First()
	if href, ok := link.Attr("href"); ok && strings.HasPrefix(href, "/posts/") {
		return strings.TrimSpace(link.Text()), base + href
	}

	button := card.Find(`button[data-test="post-name-link"]`).First()
	name = strings.TrimSpace(button.Text())
	if name == "" {
		return "", ""
	}
	slug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	return name, base + "/posts/" + slug
}

// siteRoot reduces a URL to scheme://host.
func siteRoot(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimRight(raw, "/")
	}
	return u.Scheme + "://" + u.Host
}
