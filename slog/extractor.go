package slog

import (
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/mapsync"
)

// Ensure LoggingExtractor implements mapsync.ListingExtractor.
var _ mapsync.ListingExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a ListingExtractor and logs each pass over its
// sequence once the consumer is done with it.
type LoggingExtractor struct {
	next   mapsync.ListingExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next mapsync.ListingExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string) iter.Seq[mapsync.FieldSet] {
	seq := e.next.Extract(html)
	return func(yield func(mapsync.FieldSet) bool) {
		var count int
		stopped := false
		defer func(begin time.Time) {
			e.logger.Info("extract",
				"bytes", len(html),
				"count", count,
				"stopped", stopped,
				"duration", time.Since(begin),
			)
		}(time.Now())

		for fs := range seq {
			count++
			if !yield(fs) {
				stopped = true
				return
			}
		}
	}
}
