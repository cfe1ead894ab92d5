package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mapsync"
)

var _ Matcher = (*ArticleMatcher)(nil)

// ArticleMatcher is the catch-all for listings rendered as labelled ARIA
// articles. It relies on accessibility attributes, which Maps changes far
// less often than its class names.
type ArticleMatcher struct{}

// NewArticleMatcher creates a new ArticleMatcher.
func NewArticleMatcher() *ArticleMatcher {
	return &ArticleMatcher{}
}

// Name returns the matcher's identifier.
func (m *ArticleMatcher) Name() string {
	return "maps-article-v1"
}

// Containers returns labelled article elements.
func (m *ArticleMatcher) Containers(doc *goquery.Document) *goquery.Selection {
	return doc.Find("[role='article'][aria-label]")
}

// Rules returns the generic field rules.
func (m *ArticleMatcher) Rules() []FieldRule {
	return []FieldRule{
		{
			Field:    mapsync.FieldName,
			Primary:  Signature{Read: AriaLabel()},
			Fallback: Signature{Selector: ".fontHeadlineSmall", Read: Text()},
		},
		{
			Field:    mapsync.FieldAddress,
			Primary:  Signature{Selector: "[data-item-id='address']", Read: Text()},
			Fallback: Signature{Selector: "*:not(:has(*))", Read: Segment(IsAddress)},
		},
		{
			Field:    mapsync.FieldPhone,
			Primary:  Signature{Selector: "[data-item-id^='phone:tel:'], a[href^='tel:']", Read: Tel()},
			Fallback: Signature{Selector: "*:not(:has(*))", Read: Segment(IsPhone)},
		},
		{
			Field:    mapsync.FieldWebsite,
			Primary:  Signature{Selector: "a[data-item-id='authority']", Read: Website()},
			Fallback: Signature{Selector: "a[href^='http']", Read: Website()},
		},
		{
			Field:    mapsync.FieldCategory,
			Primary:  Signature{Selector: "button.DkEaL", Read: Text()},
			Fallback: Signature{Selector: leafInfoLines, Read: Segment(IsCategory)},
		},
	}
}
