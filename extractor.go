package mapsync

import "iter"

// ListingExtractor turns one HTML document into raw field sets, one per
// detected listing block.
type ListingExtractor interface {
	// Extract returns a lazy sequence of field sets in document order.
	// Nothing is parsed until the sequence is ranged over, and ranging it
	// again yields the same values. A document that cannot be parsed yields
	// an empty sequence.
	Extract(html string) iter.Seq[FieldSet]
}
