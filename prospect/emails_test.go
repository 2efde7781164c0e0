package prospect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/prospectkit/sitecheck/fetch"
)

func TestExtractMailtos(t *testing.T) {
	markup := `<footer>
		<a href="mailto:hello@acme.io">Email us</a>
		<a href="mailto:support@acme.io?subject=Help">Support</a>
		<a href="mailto:">broken</a>
		<a href="https://acme.io/contact">Contact form</a>
	</footer>`

	got := extractMailtos(markup, "")
	want := []string{"hello@acme.io", "support@acme.io"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractMailtos = %v, want %v", got, want)
	}
}

func TestExtractMailtos_ScopedToSelector(t *testing.T) {
	markup := `<body>
		<nav><a href="mailto:noise@tracker.example">x</a></nav>
		<footer class="site-footer"><a href="mailto:hello@acme.io">mail</a></footer>
	</body>`

	got := extractMailtos(markup, "footer.site-footer")
	want := []string{"hello@acme.io"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scoped extractMailtos = %v, want %v", got, want)
	}
}

func TestExtractMailtos_NoMatchScansWholePage(t *testing.T) {
	markup := `<p><a href="mailto:hello@acme.io">mail</a></p>`

	got := extractMailtos(markup, ".does-not-exist")
	want := []string{"hello@acme.io"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractMailtos = %v, want %v", got, want)
	}
}

func TestExtractMailtos_BadSelectorScansWholePage(t *testing.T) {
	markup := `<p><a href="mailto:hello@acme.io">mail</a></p>`

	got := extractMailtos(markup, "[[[")
	want := []string{"hello@acme.io"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractMailtos = %v, want %v", got, want)
	}
}

func TestHarvestEmails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><a href="mailto:hello@acme.io">mail</a></body></html>`)
		case "/contact":
			fmt.Fprint(w, `<html><body>
				<a href="mailto:hello@acme.io">mail</a>
				<a href="mailto:sales@acme.io?subject=Demo">sales</a>
			</body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	h := NewHarvester(fetch.New(2*time.Second), "")
	got := h.HarvestEmails(context.Background(), srv.URL)

	want := []string{"hello@acme.io", "sales@acme.io"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HarvestEmails = %v, want %v", got, want)
	}
}

func TestHarvestEmails_QueryBearingWebsite(t *testing.T) {
	// Resolved websites often carry tracking queries; contact paths must
	// join onto the site root, not land inside the query string.
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/contact" {
			fmt.Fprint(w, `<html><body><a href="mailto:sales@acme.io">sales</a></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body>home</body></html>`)
	}))
	defer srv.Close()

	h := NewHarvester(fetch.New(2*time.Second), "")
	got := h.HarvestEmails(context.Background(), srv.URL+"/?ref=producthunt")

	want := []string{"sales@acme.io"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HarvestEmails = %v, want %v", got, want)
	}

	sawContact := false
	for _, p := range paths {
		if p == "/contact" {
			sawContact = true
		}
	}
	if !sawContact {
		t.Errorf("contact page never requested, paths: %v", paths)
	}
}
