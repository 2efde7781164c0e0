// Package prospect implements the lead-sourcing pipeline: expand a product
// listing page in a real browser, extract product links, resolve each
// product's own website, and harvest contact details from it.
//
// The listing site sits behind bot protection, so the browser runs with
// stealth patches and persists its cookies between runs — a challenge solved
// by hand once keeps working until the cookies expire.
package prospect

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/prospectkit/sitecheck/config"
	"github.com/ysmood/gson"
)

// Browser manages the automation browser's lifecycle.
type Browser struct {
	browser *rod.Browser
	cfg     config.ProspectConfig
}

// NewBrowser launches Chrome with automation markers suppressed and connects
// to it.
func NewBrowser(cfg config.ProspectConfig) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	slog.Info("browser launched", "controlURL", controlURL, "headless", cfg.Headless)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	return &Browser{browser: browser, cfg: cfg}, nil
}

// Close shuts the browser down. Call on exit to prevent zombie Chrome
// processes.
func (b *Browser) Close() {
	b.browser.MustClose()
	slog.Info("browser closed")
}

// newPage opens a stealth-patched page bound to ctx, with a plausible
// Referer so the first navigation doesn't arrive out of nowhere.
func (b *Browser) newPage(ctx context.Context, targetURL string) (*rod.Page, error) {
	page, err := stealth.Page(b.browser)
	if err != nil {
		return nil, fmt.Errorf("open stealth page: %w", err)
	}

	if u, parseErr := url.Parse(targetURL); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(page)
	}

	return page.Context(ctx), nil
}

// LoadCookies restores a previously saved cookie jar into the browser.
// Returns an error when the file is missing or unreadable, which callers
// treat as "no saved session".
func (b *Browser) LoadCookies(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var cookies []*proto.NetworkCookieParam
	if err := json.Unmarshal(data, &cookies); err != nil {
		return fmt.Errorf("decode cookie jar: %w", err)
	}

	if err := b.browser.SetCookies(cookies); err != nil {
		return fmt.Errorf("install cookies: %w", err)
	}
	slog.Info("cookies restored", "path", path, "count", len(cookies))
	return nil
}

// SaveCookies writes the browser's current cookie jar to disk so the next
// run can skip the bot challenge.
func (b *Browser) SaveCookies(path string) error {
	cookies, err := b.browser.GetCookies()
	if err != nil {
		return fmt.Errorf("read cookies: %w", err)
	}

	data, err := json.MarshalIndent(proto.CookiesToParams(cookies), "", "  ")
	if err != nil {
		return fmt.Errorf("encode cookie jar: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write cookie jar: %w", err)
	}
	slog.Info("cookies saved", "path", path, "count", len(cookies))
	return nil
}
