package prospect

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// mailtoAnchorSel matches anchors whose href carries a mailto address.
var mailtoAnchorSel = cascadia.MustCompile(`a[href^="mailto:"]`)

// mailtoAnchors returns every mailto anchor in markup. A non-empty
// scopeSelector restricts the search to the regions it matches; when the
// selector is invalid or matches nothing, the whole document is scanned so
// a stale selector degrades to unscoped harvesting instead of losing the
// page's addresses.
func mailtoAnchors(markup, scopeSelector string) []*html.Node {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	roots := []*html.Node{doc}
	if scopeSelector != "" {
		if sel, err := cascadia.Parse(scopeSelector); err == nil {
			if scoped := cascadia.QueryAll(doc, sel); len(scoped) > 0 {
				roots = scoped
			}
		}
	}

	var anchors []*html.Node
	for _, root := range roots {
		anchors = append(anchors, cascadia.QueryAll(root, mailtoAnchorSel)...)
	}
	return anchors
}
