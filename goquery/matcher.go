package goquery

import "github.com/PuerkitoBio/goquery"

// Matcher recognises listing containers of one Google Maps markup version
// and knows where each field lives inside them.
//
// Maps class names are obfuscated and change without notice. When markup
// drifts, add a new Matcher and register it ahead of the stale one instead of
// editing the extractor.
type Matcher interface {
	// Name returns the matcher's identifier (e.g., "maps-list-v1").
	Name() string

	// Containers returns the listing containers found in doc.
	Containers(doc *goquery.Document) *goquery.Selection

	// Rules returns the field rules applied to each container.
	Rules() []FieldRule
}

// leafInfoLines selects the innermost Maps info lines. Result cards nest
// .W4Efsd blocks, and only the leaves keep their middle-dot separators intact.
const leafInfoLines = ".W4Efsd:not(:has(.W4Efsd))"
