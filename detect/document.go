package detect

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MetaTag is one <meta> element's name/content pair. Content is kept verbatim;
// the classifier lowercases at match time.
type MetaTag struct {
	Name    string
	Content string
}

// Document is the parsed, read-only view of a fetched page that the classifier
// operates on. It is produced once per fetch and never mutated afterwards.
type Document struct {
	// URL is the originating page URL (as requested, after scheme
	// normalization).
	URL string

	// MetaTags are all <meta> elements in document order. Tags without a
	// content attribute appear with an empty Content.
	MetaTags []MetaTag

	// ScriptSrcs are the src attributes of all <script> elements in document
	// order, empty string for inline scripts.
	ScriptSrcs []string

	// RawMarkup is the lowercased re-serialization of the parsed document.
	// Marker and builder signatures search this, so matching is insensitive
	// to the source's attribute quoting and tag casing.
	RawMarkup string
}

// ParseDocument builds a Document from raw HTML. The markup is re-serialized
// from the parsed tree (not taken verbatim from the wire) so attribute
// normalization applies before signature search.
func ParseDocument(pageURL string, markup []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(markup)))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	d := &Document{URL: pageURL}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		d.MetaTags = append(d.MetaTags, MetaTag{Name: name, Content: content})
	})

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		d.ScriptSrcs = append(d.ScriptSrcs, src)
	})

	rendered, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return nil, fmt.Errorf("serialize markup: %w", err)
	}
	d.RawMarkup = strings.ToLower(rendered)

	return d, nil
}
