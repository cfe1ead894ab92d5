package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detection reports how many containers one matcher found in a document.
type Detection struct {
	Matcher    string
	Containers int
}

// Detector reports which Maps markup versions a saved page carries. It is
// used for diagnostics when a page yields fewer listings than expected.
type Detector struct {
	registry *Registry
}

// NewDetector creates a new Detector. A nil registry uses DefaultRegistry.
func NewDetector(registry *Registry) *Detector {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Detector{registry: registry}
}

// Detect returns one entry per registered matcher, in registry order.
func (d *Detector) Detect(html string) []Detection {
	matchers := d.registry.Matchers()
	detections := make([]Detection, 0, len(matchers))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		for _, m := range matchers {
			detections = append(detections, Detection{Matcher: m.Name()})
		}
		return detections
	}

	for _, m := range matchers {
		detections = append(detections, Detection{
			Matcher:    m.Name(),
			Containers: m.Containers(doc).Length(),
		})
	}
	return detections
}

// LooksLikeMaps reports whether the page carries markers of a Google Maps
// page at all, such as the results feed or the place panel.
func (d *Detector) LooksLikeMaps(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	if hasSelector(doc, "div[role='feed']") ||
		hasSelector(doc, "div.m6QErb") ||
		hasSelector(doc, "h1.DUwDvf") ||
		hasSelector(doc, "div.Nv2PK") {
		return true
	}

	found := false
	doc.Find("meta[property='og:url'], link[rel='canonical']").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range []string{"content", "href"} {
			if v, ok := s.Attr(attr); ok && strings.Contains(v, "google.") && strings.Contains(v, "/maps") {
				found = true
			}
		}
	})
	return found
}

// hasSelector checks if the document contains at least one element matching the selector.
func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
