package models

import "time"

// Lead is one prospected product: its listing entry plus everything the
// pipeline could resolve about it.
type Lead struct {
	// Name is the product name as shown on the listing page.
	Name string `json:"name"`

	// PostURL is the product's page on the listing site.
	PostURL string `json:"post_url"`

	// Website is the product's own site, if one could be resolved.
	Website string `json:"website,omitempty"`

	// Emails are contact addresses harvested from the product site.
	Emails []string `json:"emails,omitempty"`

	// Summary is the product homepage's main content as Markdown.
	Summary string `json:"summary,omitempty"`

	// Issues are failing SEO audits for the product site.
	Issues []AuditIssue `json:"issues,omitempty"`
}

// AuditIssue is a single failing audit from the SEO check.
type AuditIssue struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// ProspectRun summarises one full pipeline execution. It is the payload
// delivered to the completion webhook and the top-level structure of the
// JSON output.
type ProspectRun struct {
	ListingURL string    `json:"listing_url"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Leads      []Lead    `json:"leads"`
	Skipped    int       `json:"skipped"`
}
