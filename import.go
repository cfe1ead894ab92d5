package mapsync

import "context"

// ImportReport summarizes one imported document.
type ImportReport struct {
	// Detected counts raw listing blocks found in the document.
	Detected int

	// Skipped counts blocks dropped because they had no name.
	Skipped int

	// Duplicates counts blocks folded into an earlier listing.
	Duplicates int

	// Results holds one entry per unique prospect, in document order.
	Results []SyncResult
}

// Summary counts the results by status.
func (r *ImportReport) Summary() SyncSummary {
	return Summarize(r.Results)
}

// ImportService extracts the prospects of a saved Maps page and upserts them
// into the workspace table.
type ImportService interface {
	// Import returns EINVALID when the document is not a text document.
	// Per-prospect failures are reported in the results, not as an error.
	Import(ctx context.Context, html string, opts NormalizeOptions) (*ImportReport, error)
}
