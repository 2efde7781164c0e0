package prospect

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/prospectkit/sitecheck/config"
	"github.com/prospectkit/sitecheck/fetch"
	"github.com/prospectkit/sitecheck/models"
)

// Pipeline wires the browser, the search lookup, email harvesting, the SEO
// audit, and summarisation into a single prospect run.
type Pipeline struct {
	cfg        config.ProspectConfig
	browser    *Browser
	searcher   *Searcher
	harvester  *Harvester
	auditor    *Auditor
	summarizer *Summarizer
	fetcher    *fetch.Fetcher

	// limiter paces outbound lookups so the run stays polite to the
	// listing site and the search endpoint.
	limiter *rate.Limiter
}

// NewPipeline assembles a Pipeline from configuration. The caller owns the
// browser and must Close it after Run returns.
func NewPipeline(cfg config.ProspectConfig, browser *Browser, fetcher *fetch.Fetcher) *Pipeline {
	lps := cfg.LookupsPerSecond
	if lps <= 0 {
		lps = 1
	}

	var auditor *Auditor
	if cfg.PageSpeedAPIKey != "" {
		auditor = NewAuditor("", cfg.PageSpeedAPIKey)
	}

	return &Pipeline{
		cfg:        cfg,
		browser:    browser,
		searcher:   NewSearcher(cfg.SearchEndpoint),
		harvester:  NewHarvester(fetcher, cfg.EmailScopeSelector),
		auditor:    auditor,
		summarizer: NewSummarizer(),
		fetcher:    fetcher,
		limiter:    rate.NewLimiter(rate.Limit(lps), 1),
	}
}

// Run walks the configured listing page and produces a lead per product:
// resolve the website (search first, Visit button as fallback), harvest
// contact emails, summarise the homepage, and audit SEO when an API key is
// configured. Products whose website cannot be resolved are counted as
// skipped rather than failing the run.
func (p *Pipeline) Run(ctx context.Context) (*models.ProspectRun, error) {
	run := &models.ProspectRun{
		ListingURL: p.cfg.ListingURL,
		StartedAt:  time.Now().UTC(),
	}

	entries, err := p.browser.CollectListing(ctx, p.cfg.ListingURL)
	if err != nil {
		return nil, err
	}
	slog.Info("collected listing", "url", p.cfg.ListingURL, "entries", len(entries))

	if p.cfg.MaxProducts > 0 && len(entries) > p.cfg.MaxProducts {
		entries = entries[:p.cfg.MaxProducts]
	}

	for _, entry := range entries {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		lead, ok := p.processEntry(ctx, entry)
		if !ok {
			run.Skipped++
			continue
		}
		run.Leads = append(run.Leads, lead)
	}

	run.FinishedAt = time.Now().UTC()
	return run, nil
}

func (p *Pipeline) processEntry(ctx context.Context, entry ListingEntry) (models.Lead, bool) {
	lead := models.Lead{Name: entry.Name, PostURL: entry.PostURL}

	website, err := p.searcher.ProductWebsite(ctx, entry.Name)
	if err != nil {
		slog.Warn("search lookup failed", "product", entry.Name, "error", err)
	}
	if website == "" {
		website, err = p.browser.ResolveWebsite(ctx, entry.PostURL)
		if err != nil {
			slog.Warn("could not resolve website", "product", entry.Name, "error", err)
			return lead, false
		}
	}
	lead.Website = website
	slog.Info("resolved website", "product", entry.Name, "website", website)

	lead.Emails = p.harvester.HarvestEmails(ctx, website)

	if body, err := p.fetcher.Fetch(ctx, website); err != nil {
		slog.Warn("homepage fetch failed", "website", website, "error", err)
	} else {
		lead.Summary = p.summarizer.Summarize(string(body), fetch.NormalizeURL(website))
	}

	if p.auditor != nil {
		issues, err := p.auditor.FailingSEOAudits(ctx, website)
		if err != nil {
			slog.Warn("SEO audit failed", "website", website, "error", err)
		} else {
			lead.Issues = issues
		}
	}

	return lead, true
}
