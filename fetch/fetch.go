// Package fetch retrieves pages for classification. It is the only part of
// the check-site path that performs I/O: it normalizes the URL scheme, does a
// single GET with a fixed deadline and a Chrome TLS fingerprint, and maps
// every transport failure to one of a small set of user-facing messages.
// No retries, no JS rendering.
package fetch

import (
	"bytes"
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prospectkit/sitecheck/models"
	"golang.org/x/net/html"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a page is read for analysis.
const maxBodyBytes = 10 * 1024 * 1024

// User-facing failure messages. These are the wire contract for fetch
// failures; callers surface them verbatim.
const (
	msgTimeout    = "Request timed out. Please check the URL and try again."
	msgTLS        = "SSL certificate verification failed. The site might not be secure."
	msgConnection = "Could not connect to the website. Please check the URL and try again."
)

// Fetcher performs page retrieval with a fixed per-request timeout.
type Fetcher struct {
	timeout time.Duration
}

// New creates a Fetcher. timeout bounds the entire request including body
// read; zero falls back to 10 seconds.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{timeout: timeout}
}

// NormalizeURL prepends https:// when the raw input carries no scheme.
func NormalizeURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// Fetch retrieves targetURL (already normalized) and returns the body bytes.
// Failures come back as *models.CheckError whose Message is ready to surface.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}

	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, models.NewCheckError(models.ErrCodeFetch,
			fmt.Sprintf("Error accessing the website: %v", err), err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := fmt.Sprintf("HTTP Error: %d %s for %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), targetURL)
		return nil, models.NewCheckError(models.ErrCodeHTTPStatus, msg, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	return body, nil
}

// classifyTransportError maps a transport-level error to the fixed message
// taxonomy. Order matters: a refused connection can also look like an
// *net.OpError, and a timed-out TLS handshake is still a timeout.
func classifyTransportError(err error) *models.CheckError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return models.NewCheckError(models.ErrCodeTimeout, msgTimeout, err)
	}

	var hsErr *tlsHandshakeError
	var unknownAuthority x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var certInvalid x509.CertificateInvalidError
	if errors.As(err, &hsErr) ||
		errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &certInvalid) {
		return models.NewCheckError(models.ErrCodeTLS, msgTLS, err)
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return models.NewCheckError(models.ErrCodeConnection, msgConnection, err)
	}

	return models.NewCheckError(models.ErrCodeFetch,
		fmt.Sprintf("Error accessing the website: %v", err), err)
}

// Title extracts the <title> content from raw HTML bytes. Used only for log
// context; returns "" when no title is found.
func Title(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "title" {
				if tokenizer.Next() == html.TextToken {
					return strings.TrimSpace(string(tokenizer.Text()))
				}
				return ""
			}
		}
	}
}
