package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mapsync"
)

var _ Matcher = (*ListCardMatcher)(nil)

// ListCardMatcher reads the result cards of the Maps search feed.
// Validated against snapshots saved between 2023 and 2025.
//
// It targets:
// - div.Nv2PK for each card
// - .qBF1Pd (fontHeadlineSmall) for the business name
// - .W4Efsd info lines ("Bakery · 12 Main St") for category and address
// - span.UsdlK for the phone and a.lcr4fd for the website button
// - span.ZkP5Je for rating and reviews, coloured spans for open status
type ListCardMatcher struct{}

// NewListCardMatcher creates a new ListCardMatcher.
func NewListCardMatcher() *ListCardMatcher {
	return &ListCardMatcher{}
}

// Name returns the matcher's identifier.
func (m *ListCardMatcher) Name() string {
	return "maps-list-v1"
}

// Containers returns every result card.
func (m *ListCardMatcher) Containers(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.Nv2PK")
}

// Rules returns the result card field rules.
func (m *ListCardMatcher) Rules() []FieldRule {
	return []FieldRule{
		{
			Field:    mapsync.FieldName,
			Primary:  Signature{Selector: ".qBF1Pd", Read: Text()},
			Fallback: Signature{Selector: "a.hfpxzc[aria-label]", Read: AriaLabel()},
		},
		{
			Field:    mapsync.FieldAddress,
			Primary:  Signature{Selector: leafInfoLines, Read: Segment(IsAddress)},
			Fallback: Signature{Selector: "[data-item-id='address']", Read: Text()},
		},
		{
			Field:    mapsync.FieldPhone,
			Primary:  Signature{Selector: "span.UsdlK", Read: Text()},
			Fallback: Signature{Selector: "a[href^='tel:']", Read: Tel()},
		},
		{
			Field:    mapsync.FieldWebsite,
			Primary:  Signature{Selector: "a.lcr4fd[href]", Read: Website()},
			Fallback: Signature{Selector: "a[aria-label*='Website'], a[aria-label*='Site Web']", Read: Website()},
		},
		{
			Field:    mapsync.FieldCategory,
			Primary:  Signature{Selector: leafInfoLines, Read: Segment(IsCategory)},
			Fallback: Signature{Selector: "button.DkEaL", Read: Text()},
		},
		{
			Field:    mapsync.FieldRating,
			Primary:  Signature{Selector: "span.ZkP5Je span.MW4etd", Read: Text()},
			Fallback: Signature{Selector: "span.MW4etd", Read: Text()},
		},
		{
			Field:    mapsync.FieldReviews,
			Primary:  Signature{Selector: "span.ZkP5Je span.UY7F9", Read: Text()},
			Fallback: Signature{Selector: "span.UY7F9", Read: Text()},
		},
		{
			Field:   mapsync.FieldOpenStatus,
			Primary: Signature{Selector: openStatusSpans, Read: Text()},
		},
	}
}

// openStatusSpans matches the opening status, which Maps colours green when
// open, orange when closing soon and red when closed.
const openStatusSpans = "span[style*='rgba(25,134,57'], span[style*='rgba(178,108,0'], span[style*='rgba(220,54,46']"
