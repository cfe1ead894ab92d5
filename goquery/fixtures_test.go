package goquery_test

import (
	"slices"

	pq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mapsync"
	"github.com/fwojciec/mapsync/goquery"
)

// acmeCard is a search feed result card as saved from Maps in 2024.
const acmeCard = `<div class="Nv2PK THOPZb CpccDe" role="article" aria-label="Acme Bakery">
  <a class="hfpxzc" aria-label="Acme Bakery" href="https://www.google.com/maps/place/Acme+Bakery/data=!4m7"></a>
  <div class="bfdHYd Ppzolf OFBs3e">
    <div class="lI9IFe">
      <div class="qBF1Pd fontHeadlineSmall">Acme Bakery</div>
      <div class="W4Efsd">
        <div class="AJB7ye"><span class="ZkP5Je" role="img" aria-label="4.6 stars 120 Reviews"><span class="MW4etd">4,6</span><span class="UY7F9">(120)</span></span></div>
      </div>
      <div class="W4Efsd">
        <div class="W4Efsd"><span><span>Food</span></span><span><span aria-hidden="true">·</span> <span>12 Main St</span></span></div>
        <div class="W4Efsd"><span><span style="color: rgba(25,134,57,1.00);">Open</span><span> ⋅ Closes 7 PM</span></span></div>
      </div>
      <span class="UsdlK">555-0100</span>
    </div>
    <a class="lcr4fd S9kvJb" href="https://acme.example/" aria-label="Visit Acme Bakery's website"></a>
  </div>
</div>`

const boulangerieCard = `<div class="Nv2PK tH5CWc THOPZb" role="article" aria-label="Boulangerie Martin">
  <a class="hfpxzc" aria-label="Boulangerie Martin" href="https://www.google.com/maps/place/Boulangerie+Martin"></a>
  <div class="qBF1Pd fontHeadlineSmall">Boulangerie Martin</div>
  <div class="W4Efsd">
    <div class="W4Efsd"><span>Boulangerie</span><span> · </span><span>5 Rue de la Paix</span></div>
  </div>
  <span class="UsdlK">02 99 00 11 22</span>
  <a class="lcr4fd S9kvJb" href="https://www.google.com/url?q=https://boulangerie-martin.example/&amp;sa=U"></a>
</div>`

const acmePanel = `<div role="main" aria-label="Acme Bakery">
  <h1 class="DUwDvf lfPIob">Acme Bakery</h1>
  <button class="DkEaL" jsaction="pane.rating.category">Bakery</button>
  <button data-item-id="address" aria-label="Address: 12 Main St "><div class="Io6YTe fontBodyMedium">12 Main St</div></button>
  <a data-item-id="authority" href="https://acme.example/" aria-label="Website: acme.example"><div class="Io6YTe">acme.example</div></a>
  <button data-item-id="phone:tel:555-0199" aria-label="Phone: 555-0199 "><div class="Io6YTe">555-0199</div></button>
</div>`

// brokenCard is a result card with no resolvable name.
const brokenCard = `<div class="Nv2PK THOPZb"><div class="W4Efsd"><span>4,1</span><span>(9)</span></div><span class="UsdlK"></span></div>`

// feed wraps result cards in the Maps results feed.
func feed(cards ...string) string {
	html := `<div class="m6QErb DxyBCb" role="feed" aria-label="Results for bakeries">`
	for _, c := range cards {
		html += c
	}
	return html + `</div>`
}

// page wraps body fragments in a saved Maps document.
func page(body ...string) string {
	html := `<!DOCTYPE html><html lang="en"><head><title>bakeries - Google Maps</title></head><body>`
	for _, b := range body {
		html += b
	}
	return html + `</body></html>`
}

// ruleMatcher is a Matcher configured inline by tests.
type ruleMatcher struct {
	name     string
	selector string
	rules    []goquery.FieldRule
}

func (m *ruleMatcher) Name() string { return m.name }

func (m *ruleMatcher) Containers(doc *pq.Document) *pq.Selection { return doc.Find(m.selector) }

func (m *ruleMatcher) Rules() []goquery.FieldRule { return m.rules }

func collect(e *goquery.Extractor, html string) []mapsync.FieldSet {
	return slices.Collect(e.Extract(html))
}
