package tablesync

import (
	"context"

	"github.com/fwojciec/mapsync"
	"github.com/fwojciec/mapsync/pipeline"
)

var _ mapsync.ImportService = (*Importer)(nil)

// Importer runs the extraction pipeline over a document and syncs the
// resulting prospects.
type Importer struct {
	Pipeline *pipeline.Pipeline
	Syncer   *Syncer
}

// Import extracts and syncs the prospects of html.
func (i *Importer) Import(ctx context.Context, html string, opts mapsync.NormalizeOptions) (*mapsync.ImportReport, error) {
	report := i.Pipeline.Run(html, opts)
	if report.Err != nil {
		return nil, report.Err
	}

	return &mapsync.ImportReport{
		Detected:   report.Detected,
		Skipped:    report.Skipped,
		Duplicates: report.Duplicates,
		Results:    i.Syncer.Sync(ctx, report.Prospects),
	}, nil
}
