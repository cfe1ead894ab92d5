package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mapsync"
)

var _ Matcher = (*PlacePanelMatcher)(nil)

// PlacePanelMatcher reads the place detail panel that opens next to the
// feed when a listing is selected. The panel repeats the card's listing with
// richer contact data.
type PlacePanelMatcher struct{}

// NewPlacePanelMatcher creates a new PlacePanelMatcher.
func NewPlacePanelMatcher() *PlacePanelMatcher {
	return &PlacePanelMatcher{}
}

// Name returns the matcher's identifier.
func (m *PlacePanelMatcher) Name() string {
	return "maps-place-v1"
}

// Containers returns main regions that hold a place title.
func (m *PlacePanelMatcher) Containers(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div[role='main']:has(h1.DUwDvf)")
}

// Rules returns the detail panel field rules.
func (m *PlacePanelMatcher) Rules() []FieldRule {
	return []FieldRule{
		{
			Field:    mapsync.FieldName,
			Primary:  Signature{Selector: "h1.DUwDvf", Read: Text()},
			Fallback: Signature{Read: AriaLabel()},
		},
		{
			Field:    mapsync.FieldAddress,
			Primary:  Signature{Selector: "[data-item-id='address'] .Io6YTe", Read: Text()},
			Fallback: Signature{Selector: "[data-item-id='address'][aria-label]", Read: AriaLabel("Address:", "Adresse :", "Adresse:")},
		},
		{
			Field:    mapsync.FieldPhone,
			Primary:  Signature{Selector: "[data-item-id^='phone:tel:'], a[href^='tel:']", Read: Tel()},
			Fallback: Signature{Selector: "[aria-label^='Phone'], [aria-label^='Téléphone']", Read: AriaLabel("Phone:", "Téléphone :", "Téléphone:")},
		},
		{
			Field:    mapsync.FieldWebsite,
			Primary:  Signature{Selector: "a[data-item-id='authority']", Read: Website()},
			Fallback: Signature{Selector: "a[aria-label^='Website'], a[aria-label^='Site Web']", Read: Website()},
		},
		{
			Field:    mapsync.FieldCategory,
			Primary:  Signature{Selector: "button.DkEaL", Read: Text()},
			Fallback: Signature{Selector: "button[jsaction*='category']", Read: Text()},
		},
		{
			Field:   mapsync.FieldRating,
			Primary: Signature{Selector: "div.F7nice span[aria-hidden='true']", Read: Text()},
		},
		{
			Field:   mapsync.FieldReviews,
			Primary: Signature{Selector: "div.F7nice span[aria-label]", Read: AriaLabel()},
		},
		{
			Field:    mapsync.FieldOpenStatus,
			Primary:  Signature{Selector: openStatusSpans, Read: Text()},
			Fallback: Signature{Selector: "span.ZDu9vd > span", Read: Text()},
		},
	}
}
