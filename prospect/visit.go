package prospect

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ResolveWebsite opens a post page in the browser and extracts the target
// of its "Visit" button. This is the fallback path for products the search
// lookup could not resolve.
func (b *Browser) ResolveWebsite(ctx context.Context, postURL string) (string, error) {
	page, err := b.newPage(ctx, postURL)
	if err != nil {
		return "", err
	}
	defer page.Close()

	if err := page.Navigate(postURL); err != nil {
		return "", fmt.Errorf("navigate to post %s: %w", postURL, err)
	}
	waitSettled(page)

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read post page markup: %w", err)
	}

	href := visitLink(html)
	if href == "" {
		return "", fmt.Errorf("no visit link on post %s", postURL)
	}
	return href, nil
}

// visitLink finds the href behind a post page's "Visit" control. The button
// usually wraps or sits next to the real anchor, so we probe inward, then
// outward, then fall back to any anchor labelled Visit.
func visitLink(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var href string
	doc.Find("button").EachWithBreak(func(_ int, btn *goquery.Selection) bool {
		if !strings.Contains(btn.Text(), "Visit") {
			return true
		}
		if h, ok := btn.Find("a[href]").First().Attr("href"); ok && h != "" {
			href = h
			return false
		}
		if h, ok := btn.Closest("a[href]").Attr("href"); ok && h != "" {
			href = h
			return false
		}
		return true
	})
	if href != "" {
		return href
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(a.Text(), "Visit") {
			href, _ = a.Attr("href")
			return false
		}
		return true
	})
	return href
}
