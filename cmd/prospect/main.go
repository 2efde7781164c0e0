// Command prospect walks a product listing page, resolves each product's
// website, and emits a lead report with contact emails, SEO issues, and a
// homepage summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prospectkit/sitecheck/config"
	"github.com/prospectkit/sitecheck/fetch"
	"github.com/prospectkit/sitecheck/notify"
	"github.com/prospectkit/sitecheck/prospect"
)

func main() {
	limit := flag.Int("limit", 0, "max products to process (0 uses SITECHECK_MAX_PRODUCTS)")
	output := flag.String("output", "markdown", "output format: markdown or json")
	outPath := flag.String("o", "", "write the report to this file instead of stdout")
	flag.Parse()

	cfg := config.Load()
	initLogger(cfg.Log)

	if *limit > 0 {
		cfg.Prospect.MaxProducts = *limit
	}

	slog.Info("prospect run starting",
		"listing", cfg.Prospect.ListingURL,
		"maxProducts", cfg.Prospect.MaxProducts,
		"headless", cfg.Prospect.Headless,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	browser, err := prospect.NewBrowser(cfg.Prospect)
	if err != nil {
		slog.Error("browser launch failed", "error", err)
		os.Exit(1)
	}
	defer browser.Close()

	f := fetch.New(cfg.Fetch.Timeout)
	pipeline := prospect.NewPipeline(cfg.Prospect, browser, f)

	run, err := pipeline.Run(ctx)
	if err != nil {
		slog.Error("prospect run failed", "error", err)
		notifyResult(ctx, cfg, "prospect.failed", map[string]string{"error": err.Error()})
		os.Exit(1)
	}
	slog.Info("prospect run finished", "leads", len(run.Leads), "skipped", run.Skipped)

	var rendered []byte
	switch *output {
	case "json":
		rendered, err = json.MarshalIndent(run, "", "  ")
		if err != nil {
			slog.Error("encode report", "error", err)
			os.Exit(1)
		}
	default:
		rendered = []byte(prospect.RenderMarkdownReport(run))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, rendered, 0o644); err != nil {
			slog.Error("write report", "path", *outPath, "error", err)
			os.Exit(1)
		}
		slog.Info("report written", "path", *outPath)
	} else {
		fmt.Println(string(rendered))
	}

	notifyResult(ctx, cfg, "prospect.completed", run)
}

// notifyResult posts the run outcome to the configured webhook, if any.
func notifyResult(ctx context.Context, cfg *config.Config, eventType string, data any) {
	if cfg.Webhook.URL == "" {
		return
	}
	event := &notify.Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}
	if err := notify.DeliverWithRetry(ctx, cfg.Webhook.URL, cfg.Webhook.Secret, event); err != nil {
		slog.Warn("webhook notification failed", "error", err)
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
