// Package pipeline turns one saved Maps page into a clean, duplicate-free
// list of prospects. It is pure: no table calls happen here.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/fwojciec/mapsync"
)

// Pipeline runs extraction, normalization and deduplication.
type Pipeline struct {
	Extractor mapsync.ListingExtractor

	// Resolver decides which records describe the same business.
	// Defaults to mapsync.NameAddressResolver.
	Resolver mapsync.IdentityResolver

	// Logger receives the extraction summary. Defaults to discarding.
	Logger *slog.Logger
}

// Report holds the outcome of one Run.
type Report struct {
	// Prospects are unique by identity key, in document order.
	Prospects []*mapsync.Prospect

	// Detected counts the raw field sets produced by the extractor.
	Detected int

	// Skipped counts field sets dropped because they had no name.
	Skipped int

	// Duplicates counts records folded into an earlier record.
	Duplicates int

	// Err is set when the document was rejected before extraction.
	// It is never returned by Run.
	Err error
}

// Run extracts prospects from html. Rejected documents produce an empty
// report with Err set. When two fragments describe the same business, the
// first one in the document wins.
func (p *Pipeline) Run(html string, opts mapsync.NormalizeOptions) *Report {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	report := &Report{Prospects: []*mapsync.Prospect{}}
	if err := mapsync.ValidateDocument(html); err != nil {
		logger.Warn("document rejected", "error", err)
		report.Err = err
		return report
	}
	html = mapsync.SanitizeDocument(html)

	resolver := p.Resolver
	if resolver == nil {
		resolver = mapsync.NameAddressResolver{}
	}

	begin := time.Now()
	seen := make(map[string]bool)
	for fs := range p.Extractor.Extract(html) {
		report.Detected++

		prospect, ok := mapsync.Normalize(fs, opts)
		if !ok {
			report.Skipped++
			continue
		}

		key := resolver.Key(prospect)
		if seen[key] {
			report.Duplicates++
			continue
		}
		seen[key] = true
		report.Prospects = append(report.Prospects, prospect)
	}

	logger.Info("extraction summary",
		"detected", report.Detected,
		"extracted", len(report.Prospects),
		"skipped", report.Skipped,
		"duplicates", report.Duplicates,
		"duration", time.Since(begin),
	)
	return report
}
