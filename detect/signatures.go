package detect

// EvidenceKind says where a signature pattern is looked for.
type EvidenceKind int

const (
	// MetaContent matches against the content attribute of a <meta> tag.
	MetaContent EvidenceKind = iota
	// ScriptSrc matches against the src attribute of a <script> tag.
	ScriptSrc
	// BodyMarker matches against the full lowercased page markup.
	BodyMarker
	// URLSubstring matches against the page's own URL.
	URLSubstring
)

// SignatureRule associates a technology with a single case-insensitive
// substring signature. Rules are evaluated in table order; the tables below
// are fixed at init and never mutated.
type SignatureRule struct {
	Technology string
	Kind       EvidenceKind
	Pattern    string
}

// Canonical technology order. All result slices are emitted in this order so
// output stays deterministic regardless of which evidence matched first.
var (
	frameworkOrder = []string{"React", "Angular", "Next.js"}
	builderOrder   = []string{"Wix", "Squarespace", "Shopify", "Webflow"}
)

// tagRules is the ordered chain applied to each meta content value and each
// script src. Per tag, the FIRST matching rule wins and the rest of the chain
// is skipped — a content value containing both "react" and "angular" only
// registers React. The independent marker/builder rules below do not share
// this behaviour; the asymmetry is inherited and load-bearing, do not unify.
var tagRules = []SignatureRule{
	{Technology: "React", Kind: MetaContent, Pattern: "react"},
	{Technology: "Angular", Kind: MetaContent, Pattern: "angular"},
	{Technology: "Next.js", Kind: MetaContent, Pattern: "next"},
}

// markerRules are independent framework checks over the lowercased markup.
// Multiple rules may fire for the same document.
var markerRules = []SignatureRule{
	{Technology: "React", Kind: BodyMarker, Pattern: "data-reactroot"},
	{Technology: "React", Kind: BodyMarker, Pattern: "react-root"},
	{Technology: "Angular", Kind: BodyMarker, Pattern: "ng-"},
	{Technology: "Angular", Kind: BodyMarker, Pattern: "angular"},
	{Technology: "Next.js", Kind: BodyMarker, Pattern: "__next"},
}

// builderRules are independent site-builder checks over the lowercased markup
// and the page URL. Any match forces an incompatible verdict.
var builderRules = []SignatureRule{
	{Technology: "Wix", Kind: URLSubstring, Pattern: "wixsite.com"},
	{Technology: "Wix", Kind: BodyMarker, Pattern: "static.parastorage.com"},
	{Technology: "Wix", Kind: BodyMarker, Pattern: "wix.com"},
	{Technology: "Squarespace", Kind: BodyMarker, Pattern: "squarespace.com"},
	{Technology: "Squarespace", Kind: BodyMarker, Pattern: `content="squarespace"`},
	{Technology: "Shopify", Kind: BodyMarker, Pattern: "cdn.shopify.com"},
	{Technology: "Shopify", Kind: BodyMarker, Pattern: `content="shopify"`},
	{Technology: "Shopify", Kind: BodyMarker, Pattern: "shopify"},
	{Technology: "Webflow", Kind: BodyMarker, Pattern: "webflow.com"},
	{Technology: "Webflow", Kind: BodyMarker, Pattern: `content="webflow"`},
}
