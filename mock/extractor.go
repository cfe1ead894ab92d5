package mock

import (
	"iter"

	"github.com/fwojciec/mapsync"
)

var _ mapsync.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of mapsync.ListingExtractor.
type ListingExtractor struct {
	ExtractFn func(html string) iter.Seq[mapsync.FieldSet]
}

func (e *ListingExtractor) Extract(html string) iter.Seq[mapsync.FieldSet] {
	return e.ExtractFn(html)
}
