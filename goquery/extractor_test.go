package goquery_test

import (
	"slices"
	"testing"

	pq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mapsync"
	"github.com/fwojciec/mapsync/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts every field of a result card", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(nil)
		sets := slices.Collect(e.Extract(page(feed(acmeCard))))

		require.Len(t, sets, 1)
		assert.Equal(t, mapsync.FieldSet{
			mapsync.FieldName:     "Acme Bakery",
			mapsync.FieldAddress:  "12 Main St",
			mapsync.FieldPhone:    "555-0100",
			mapsync.FieldWebsite:  "https://acme.example/",
			mapsync.FieldCategory: "Food",
			mapsync.FieldRating:   "4,6",
			mapsync.FieldReviews:  "(120)",

			mapsync.FieldOpenStatus: "Open",
		}, sets[0])
	})

	t.Run("emits cards and panels in document order", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(nil)
		sets := slices.Collect(e.Extract(page(feed(acmeCard, boulangerieCard), acmePanel)))

		require.Len(t, sets, 3)
		assert.Equal(t, "Acme Bakery", sets[0][mapsync.FieldName])
		assert.Equal(t, "555-0100", sets[0][mapsync.FieldPhone])
		assert.Equal(t, "Boulangerie Martin", sets[1][mapsync.FieldName])
		assert.Equal(t, "Acme Bakery", sets[2][mapsync.FieldName])
		assert.Equal(t, "555-0199", sets[2][mapsync.FieldPhone])
	})

	t.Run("panel listed before cards keeps its position", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(nil)
		sets := slices.Collect(e.Extract(page(acmePanel, feed(boulangerieCard))))

		require.Len(t, sets, 2)
		assert.Equal(t, "Acme Bakery", sets[0][mapsync.FieldName])
		assert.Equal(t, "Boulangerie Martin", sets[1][mapsync.FieldName])
	})

	t.Run("card claimed by list matcher is not emitted again as an article", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(nil)
		sets := slices.Collect(e.Extract(page(feed(acmeCard))))

		assert.Len(t, sets, 1)
	})

	t.Run("drops container without a name and keeps the others", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(nil)
		sets := slices.Collect(e.Extract(page(feed(acmeCard, brokenCard, boulangerieCard))))

		require.Len(t, sets, 2)
		assert.Equal(t, "Acme Bakery", sets[0][mapsync.FieldName])
		assert.Equal(t, "Boulangerie Martin", sets[1][mapsync.FieldName])
	})

	t.Run("leaves missing fields absent", func(t *testing.T) {
		t.Parallel()

		html := page(feed(`<div class="Nv2PK"><div class="qBF1Pd fontHeadlineSmall">Solo Café</div></div>`))
		e := goquery.NewExtractor(nil)
		sets := slices.Collect(e.Extract(html))

		require.Len(t, sets, 1)
		assert.Equal(t, mapsync.FieldSet{mapsync.FieldName: "Solo Café"}, sets[0])
	})

	t.Run("tolerates truncated documents", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="Nv2PK"><div class="qBF1Pd fontHeadlineSmall">Acme Bakery</div><div class="W4Efsd"><span>Bakery</span> · <span>12 Ma`
		e := goquery.NewExtractor(nil)
		sets := slices.Collect(e.Extract(html))

		require.Len(t, sets, 1)
		assert.Equal(t, "Acme Bakery", sets[0][mapsync.FieldName])
	})

	t.Run("yields nothing for non-Maps or empty input", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(nil)

		assert.Empty(t, slices.Collect(e.Extract("")))
		assert.Empty(t, slices.Collect(e.Extract("<html><body><p>Hello</p></body></html>")))
		assert.Empty(t, slices.Collect(e.Extract("not html at all <<<>>>")))
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(nil)
		seq := e.Extract(page(feed(acmeCard, boulangerieCard)))

		first := slices.Collect(seq)
		second := slices.Collect(seq)
		assert.Equal(t, first, second)
		assert.Len(t, second, 2)
	})

	t.Run("stops when the consumer stops", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(nil)
		var names []string
		for fs := range e.Extract(page(feed(acmeCard, boulangerieCard))) {
			names = append(names, fs[mapsync.FieldName])
			break
		}

		assert.Equal(t, []string{"Acme Bakery"}, names)
	})

	t.Run("isolates a matcher that panics on one container", func(t *testing.T) {
		t.Parallel()

		explosive := &ruleMatcher{
			name:     "explosive",
			selector: "div.boom",
			rules: []goquery.FieldRule{{
				Field: mapsync.FieldName,
				Primary: goquery.Signature{Read: func(sel *pq.Selection) (string, bool) {
					panic("unexpected markup")
				}},
			}},
		}
		registry := goquery.NewRegistry(explosive, goquery.NewListCardMatcher())
		e := goquery.NewExtractor(registry)

		sets := slices.Collect(e.Extract(page(feed(acmeCard, `<div class="boom">x</div>`, boulangerieCard))))

		require.Len(t, sets, 2)
		assert.Equal(t, "Acme Bakery", sets[0][mapsync.FieldName])
		assert.Equal(t, "Boulangerie Martin", sets[1][mapsync.FieldName])
	})
}
