package goquery_test

import (
	"testing"

	"github.com/fwojciec/mapsync/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("counts containers per matcher", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDetector(nil)
		detections := d.Detect(page(feed(acmeCard, boulangerieCard, brokenCard), acmePanel))

		assert.Equal(t, []goquery.Detection{
			{Matcher: "maps-list-v1", Containers: 3},
			{Matcher: "maps-place-v1", Containers: 1},
			{Matcher: "maps-article-v1", Containers: 2},
		}, detections)
	})

	t.Run("reports zero containers for unrelated pages", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDetector(nil)
		detections := d.Detect("<html><body><p>Hello</p></body></html>")

		for _, det := range detections {
			assert.Zero(t, det.Containers, det.Matcher)
		}
		assert.Len(t, detections, 3)
	})
}

func TestDetector_LooksLikeMaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want bool
	}{
		{name: "results feed", html: page(feed()), want: true},
		{name: "place panel", html: page(acmePanel), want: true},
		{name: "bare result card", html: `<div class="Nv2PK"></div>`, want: true},
		{
			name: "canonical Maps URL",
			html: `<html><head><link rel="canonical" href="https://www.google.com/maps/search/bakeries"></head><body></body></html>`,
			want: true,
		},
		{
			name: "og:url Maps URL",
			html: `<html><head><meta property="og:url" content="https://www.google.fr/maps/place/Acme"></head><body></body></html>`,
			want: true,
		},
		{name: "unrelated page", html: `<html><body><h1>Acme Bakery</h1></body></html>`, want: false},
		{name: "empty document", html: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, goquery.NewDetector(nil).LooksLikeMaps(tt.html))
		})
	}
}
