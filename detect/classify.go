// Package detect implements signature-based detection of the front-end
// framework or site builder behind a fetched page.
//
// Detection is presence-based substring matching over four evidence sources:
// meta tag content, script src attributes, the lowercased page markup, and the
// page URL. Frameworks (React, Angular, Next.js) are informational; site
// builders (Wix, Squarespace, Shopify, Webflow) force an incompatible verdict.
//
// Classify is a pure function over an immutable signature table: no I/O, no
// state, safe for concurrent use.
package detect

import "strings"

// unknownTechnology is reported when no framework evidence matched.
const unknownTechnology = "Unknown"

// unsupportedPrefix heads the error message when a site builder is detected.
const unsupportedPrefix = "Framework not supported: "

// Result is the classifier's verdict for a single document.
type Result struct {
	// Compatible is false exactly when at least one site builder matched.
	Compatible bool

	// Frameworks lists matched frameworks in canonical order, or ["Unknown"].
	// Only populated when Compatible.
	Frameworks []string

	// Builders lists matched site builders in canonical order. Only populated
	// when !Compatible.
	Builders []string

	// Message is the user-facing refusal text when !Compatible.
	Message string
}

// Classify runs the full signature scan over doc and returns the verdict.
// Calling it twice on the same document yields identical results.
func Classify(doc *Document) Result {
	matched := make(map[string]bool, len(frameworkOrder)+len(builderOrder))

	// 1-2. Meta contents and script srcs share the ordered first-match-wins
	// chain: one technology at most per tag.
	for _, tag := range doc.MetaTags {
		matchTagChain(tag.Content, matched)
	}
	for _, src := range doc.ScriptSrcs {
		matchTagChain(src, matched)
	}

	// 3. Markup markers are independent of each other and of steps 1-2.
	for _, rule := range markerRules {
		if strings.Contains(doc.RawMarkup, rule.Pattern) {
			matched[rule.Technology] = true
		}
	}

	// 4. Builder signatures, also independent. URL and markup evidence are
	// unioned: a builder marketing domain in the URL alone is enough.
	lowerURL := strings.ToLower(doc.URL)
	for _, rule := range builderRules {
		switch rule.Kind {
		case URLSubstring:
			if strings.Contains(lowerURL, rule.Pattern) {
				matched[rule.Technology] = true
			}
		default:
			if strings.Contains(doc.RawMarkup, rule.Pattern) {
				matched[rule.Technology] = true
			}
		}
	}

	// 5. Decision: builders win over any framework evidence.
	builders := inOrder(builderOrder, matched)
	if len(builders) > 0 {
		return Result{
			Compatible: false,
			Builders:   builders,
			Message:    unsupportedPrefix + strings.Join(builders, ", "),
		}
	}

	frameworks := inOrder(frameworkOrder, matched)
	if len(frameworks) == 0 {
		frameworks = []string{unknownTechnology}
	}
	return Result{Compatible: true, Frameworks: frameworks}
}

// matchTagChain applies the ordered tag rules to a single attribute value.
// The first matching rule registers its technology and ends the chain.
func matchTagChain(value string, matched map[string]bool) {
	lower := strings.ToLower(value)
	for _, rule := range tagRules {
		if strings.Contains(lower, rule.Pattern) {
			matched[rule.Technology] = true
			return
		}
	}
}

// inOrder filters the canonical list down to the matched entries, preserving
// canonical order so output never depends on map iteration.
func inOrder(canonical []string, matched map[string]bool) []string {
	var out []string
	for _, tech := range canonical {
		if matched[tech] {
			out = append(out, tech)
		}
	}
	return out
}
