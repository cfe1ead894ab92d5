package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/mapsync"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	var total mapsync.SyncSummary
	var failedFiles int

	for _, path := range c.Files {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %v\n", path, err)
			failedFiles++
			continue
		}

		report, err := deps.Importer.Import(deps.Ctx, string(content), c.options())
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", path, mapsync.ErrorMessage(err))
			failedFiles++
			continue
		}

		fmt.Fprintf(deps.Stdout, "%s: %d listings detected, %d skipped, %d duplicates\n",
			path, report.Detected, report.Skipped, report.Duplicates)
		for _, r := range report.Results {
			printResult(deps, r)
		}

		summary := report.Summary()
		total.Created += summary.Created
		total.Updated += summary.Updated
		total.Failed += summary.Failed
	}

	fmt.Fprintf(deps.Stdout, "Synced %d prospects: %d created, %d updated, %d failed\n",
		total.Created+total.Updated+total.Failed, total.Created, total.Updated, total.Failed)

	if failedFiles > 0 {
		return fmt.Errorf("%d of %d files could not be imported", failedFiles, len(c.Files))
	}
	return nil
}

func printResult(deps *Dependencies, r mapsync.SyncResult) {
	name := ""
	if r.Prospect != nil {
		name = r.Prospect.Name
	}
	switch r.Status {
	case mapsync.SyncFailed:
		fmt.Fprintf(deps.Stdout, "  %-8s %s: %s\n", r.Status, name, r.Reason)
	default:
		fmt.Fprintf(deps.Stdout, "  %-8s %s  %s\n", r.Status, name, r.RowID)
	}
}
