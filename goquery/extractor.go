package goquery

import (
	"iter"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mapsync"
	"golang.org/x/net/html"
)

var _ mapsync.ListingExtractor = (*Extractor)(nil)

// Extractor finds listing blocks in saved Google Maps pages using the
// matchers of a Registry.
//
// Every matcher runs against the document. A node already claimed by an
// earlier matcher is not emitted twice, and containers are emitted in
// document order regardless of which matcher found them.
type Extractor struct {
	registry *Registry
}

// NewExtractor creates a new Extractor. A nil registry uses DefaultRegistry.
func NewExtractor(registry *Registry) *Extractor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Extractor{registry: registry}
}

// container is a listing block found by a matcher.
type container struct {
	node    *html.Node
	sel     *goquery.Selection
	matcher Matcher
}

// Extract returns a lazy sequence of field sets, one per listing block.
func (e *Extractor) Extract(rawHTML string) iter.Seq[mapsync.FieldSet] {
	return func(yield func(mapsync.FieldSet) bool) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
		if err != nil {
			return
		}

		for _, c := range e.containers(doc) {
			fs, ok := extractFields(c.sel, c.matcher.Rules())
			if !ok {
				continue
			}
			if !yield(fs) {
				return
			}
		}
	}
}

// containers collects the listing blocks of every matcher in document order.
func (e *Extractor) containers(doc *goquery.Document) []container {
	position := make(map[*html.Node]int)
	doc.Find("*").Each(func(i int, sel *goquery.Selection) {
		position[sel.Get(0)] = i
	})

	claimed := make(map[*html.Node]bool)
	var found []container
	for _, m := range e.registry.Matchers() {
		m.Containers(doc).Each(func(_ int, sel *goquery.Selection) {
			node := sel.Get(0)
			if claimed[node] {
				return
			}
			claimed[node] = true
			found = append(found, container{node: node, sel: sel, matcher: m})
		})
	}

	slices.SortStableFunc(found, func(a, b container) int {
		return position[a.node] - position[b.node]
	})
	return found
}

// extractFields applies rules to one container. It returns false when the
// container has no name. A panic inside a rule only discards this container.
func extractFields(sel *goquery.Selection, rules []FieldRule) (fs mapsync.FieldSet, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			fs, ok = nil, false
		}
	}()

	fs = make(mapsync.FieldSet)
	for _, rule := range rules {
		if _, done := fs[rule.Field]; done {
			continue
		}
		if v, found := rule.Primary.find(sel); found {
			fs[rule.Field] = v
		} else if v, found := rule.Fallback.find(sel); found {
			fs[rule.Field] = v
		}
	}

	if _, named := fs[mapsync.FieldName]; !named {
		return nil, false
	}
	return fs, true
}
