package prospect

import "testing"

func TestVisitLink_AnchorInsideButton(t *testing.T) {
	html := `<div><button>Visit <a href="https://acme.io?ref=producthunt">website</a></button></div>`
	if got := visitLink(html); got != "https://acme.io?ref=producthunt" {
		t.Errorf("visitLink = %q", got)
	}
}

func TestVisitLink_ButtonWrappedInAnchor(t *testing.T) {
	html := `<a href="https://beacon-crm.com"><button>Visit</button></a>`
	if got := visitLink(html); got != "https://beacon-crm.com" {
		t.Errorf("visitLink = %q", got)
	}
}

func TestVisitLink_PlainAnchorFallback(t *testing.T) {
	html := `<div><a href="/posts/other">Other post</a><a href="https://acme.io">Visit website</a></div>`
	if got := visitLink(html); got != "https://acme.io" {
		t.Errorf("visitLink = %q", got)
	}
}

func TestVisitLink_NoVisitControl(t *testing.T) {
	html := `<div><a href="https://acme.io">Homepage</a><button>Upvote</button></div>`
	if got := visitLink(html); got != "" {
		t.Errorf("visitLink = %q, want empty", got)
	}
}
