package prospect

import (
	"fmt"
	"log/slog"
	nurl "net/url"
	"os"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	readability "github.com/go-shiori/go-readability"

	"github.com/prospectkit/sitecheck/models"
)

// maxSummaryLength bounds per-lead summaries so reports stay scannable.
const maxSummaryLength = 1200

// Summarizer turns a homepage into a short Markdown pitch summary.
//
// The converter is created once and reused across all leads
// (goroutine-safe).
type Summarizer struct {
	mdConverter *converter.Converter
}

// NewSummarizer initialises the Summarizer with a pre-configured Markdown
// converter.
func NewSummarizer() *Summarizer {
	return &Summarizer{mdConverter: newMarkdownConverter()}
}

// newMarkdownConverter creates a reusable, goroutine-safe Converter:
//
//   - base plugin: strips script, style, iframe, noscript, head, meta, link,
//     input, textarea, HTML comments.
//   - commonmark plugin: standard Markdown rendering.
//   - table plugin: preserves pricing/feature tables with minimal cell
//     padding.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// Summarize extracts the main content of a homepage and renders it as
// Markdown, truncated to a report-friendly length. Extraction failures fall
// back to converting the raw markup.
func (s *Summarizer) Summarize(rawHTML, sourceURL string) string {
	content := rawHTML

	parsedURL, err := nurl.Parse(sourceURL)
	if err == nil {
		article, rerr := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
		if rerr != nil {
			slog.Warn("readability extraction failed, using raw markup",
				"url", sourceURL, "error", rerr,
			)
		} else if strings.TrimSpace(article.Content) != "" {
			content = article.Content
		}
	}

	domain := ""
	if parsedURL != nil {
		domain = parsedURL.Scheme + "://" + parsedURL.Host
	}

	markdown, err := s.mdConverter.ConvertString(content, converter.WithDomain(domain))
	if err != nil {
		slog.Warn("markdown conversion failed", "url", sourceURL, "error", err)
		return ""
	}

	markdown = strings.TrimSpace(markdown)
	if len(markdown) > maxSummaryLength {
		markdown = markdown[:maxSummaryLength] + "…"
	}
	return markdown
}

// RenderMarkdownReport formats a completed run as a Markdown document, one
// section per lead.
func RenderMarkdownReport(run *models.ProspectRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Prospect report\n\n")
	fmt.Fprintf(&b, "- Listing: %s\n", run.ListingURL)
	fmt.Fprintf(&b, "- Started: %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Finished: %s\n", run.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Leads: %d (skipped %d)\n\n", len(run.Leads), run.Skipped)

	for _, lead := range run.Leads {
		fmt.Fprintf(&b, "## %s\n\n", lead.Name)
		fmt.Fprintf(&b, "- Post: %s\n", lead.PostURL)
		if lead.Website != "" {
			fmt.Fprintf(&b, "- Website: %s\n", lead.Website)
		}
		if len(lead.Emails) > 0 {
			fmt.Fprintf(&b, "- Emails: %s\n", strings.Join(lead.Emails, ", "))
		}
		b.WriteString("\n")

		if len(lead.Issues) > 0 {
			b.WriteString("### SEO issues\n\n")
			for _, issue := range lead.Issues {
				fmt.Fprintf(&b, "- **%s**: %s\n", issue.ID, issue.Description)
			}
			b.WriteString("\n")
		}

		if lead.Summary != "" {
			b.WriteString("### Summary\n\n")
			b.WriteString(lead.Summary)
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

// WriteMarkdownReport renders the run and writes it to path.
func WriteMarkdownReport(run *models.ProspectRun, path string) error {
	if err := os.WriteFile(path, []byte(RenderMarkdownReport(run)), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
