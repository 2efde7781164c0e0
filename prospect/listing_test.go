package prospect

import "testing"

const listingFixture = `<!DOCTYPE html>
<html><body>
<div data-test="homepage-section-0">
  <section data-test="post-item-1">
    <a href="/posts/acme-analytics">Acme Analytics</a>
  </section>
  <section data-test="post-item-2">
    <button data-test="post-name-link" data-url-slug="beacon-crm">Beacon CRM</button>
  </section>
  <section data-test="post-item-3">
    <a href="/posts/acme-analytics">Acme Analytics (dup)</a>
  </section>
  <section data-test="post-item-4">
    <span>No link here</span>
  </section>
</div>
<div data-test="homepage-section-1">
  <section data-test="post-item-9">
    <a href="/posts/yesterday-product">Yesterday's product</a>
  </section>
</div>
</body></html>`

func TestExtractListingEntries(t *testing.T) {
	entries := extractListingEntries(listingFixture, "https://www.producthunt.com/")

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}

	if entries[0].Name != "Acme Analytics" {
		t.Errorf("entry 0 name = %q", entries[0].Name)
	}
	if entries[0].PostURL != "https://www.producthunt.com/posts/acme-analytics" {
		t.Errorf("entry 0 url = %q", entries[0].PostURL)
	}

	if entries[1].Name != "Beacon CRM" {
		t.Errorf("entry 1 name = %q", entries[1].Name)
	}
	if entries[1].PostURL != "https://www.producthunt.com/posts/beacon-crm" {
		t.Errorf("entry 1 url = %q", entries[1].PostURL)
	}
}

func TestExtractListingEntries_NoSection(t *testing.T) {
	entries := extractListingEntries("<html><body><p>maintenance</p></body></html>", "https://www.producthunt.com/")
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %+v", entries)
	}
}

func TestSiteRoot(t *testing.T) {
	cases := map[string]string{
		"https://www.producthunt.com/posts/foo": "https://www.producthunt.com",
		"https://example.com":                   "https://example.com",
	}
	for in, want := range cases {
		if got := siteRoot(in); got != want {
			t.Errorf("siteRoot(%q) = %q, want %q", in, got, want)
		}
	}
}
