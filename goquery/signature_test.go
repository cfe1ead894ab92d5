package goquery_test

import (
	"strings"
	"testing"

	pq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mapsync/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selectFirst parses fragment and returns its first element matching selector.
func selectFirst(t *testing.T, fragment, selector string) *pq.Selection {
	t.Helper()
	doc, err := pq.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	sel := doc.Find(selector).First()
	require.Equal(t, 1, sel.Length(), "fixture has no %q", selector)
	return sel
}

func TestText(t *testing.T) {
	t.Parallel()

	t.Run("reads trimmed text", func(t *testing.T) {
		t.Parallel()

		v, ok := goquery.Text()(selectFirst(t, `<div class="qBF1Pd">  Acme Bakery
		</div>`, ".qBF1Pd"))

		assert.True(t, ok)
		assert.Equal(t, "Acme Bakery", v)
	})

	t.Run("rejects blank text", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.Text()(selectFirst(t, `<span class="UsdlK">   </span>`, ".UsdlK"))

		assert.False(t, ok)
	})
}

func TestAriaLabel(t *testing.T) {
	t.Parallel()

	t.Run("strips matching prefix case-insensitively", func(t *testing.T) {
		t.Parallel()

		read := goquery.AriaLabel("Address:", "Adresse :")
		v, ok := read(selectFirst(t, `<button aria-label="adresse : 5 Rue de la Paix ">x</button>`, "button"))

		assert.True(t, ok)
		assert.Equal(t, "5 Rue de la Paix", v)
	})

	t.Run("keeps label without prefix", func(t *testing.T) {
		t.Parallel()

		v, ok := goquery.AriaLabel("Address:")(selectFirst(t, `<a aria-label="Acme Bakery"></a>`, "a"))

		assert.True(t, ok)
		assert.Equal(t, "Acme Bakery", v)
	})

	t.Run("rejects missing or empty label", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.AriaLabel()(selectFirst(t, `<a href="/x"></a>`, "a"))
		assert.False(t, ok)

		_, ok = goquery.AriaLabel("Phone:")(selectFirst(t, `<a aria-label="Phone: "></a>`, "a"))
		assert.False(t, ok)
	})
}

func TestTel(t *testing.T) {
	t.Parallel()

	t.Run("reads data-item-id", func(t *testing.T) {
		t.Parallel()

		v, ok := goquery.Tel()(selectFirst(t, `<button data-item-id="phone:tel:+33299001122"></button>`, "button"))

		assert.True(t, ok)
		assert.Equal(t, "+33299001122", v)
	})

	t.Run("reads tel href", func(t *testing.T) {
		t.Parallel()

		v, ok := goquery.Tel()(selectFirst(t, `<a href="TEL:555-0100">Call</a>`, "a"))

		assert.True(t, ok)
		assert.Equal(t, "555-0100", v)
	})

	t.Run("rejects other links", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.Tel()(selectFirst(t, `<a href="https://acme.example/">Site</a>`, "a"))

		assert.False(t, ok)
	})
}

func TestWebsite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "keeps absolute https URL", href: "https://acme.example/", want: "https://acme.example/"},
		{name: "keeps http URL", href: "http://acme.example/menu", want: "http://acme.example/menu"},
		{name: "unwraps Google redirect", href: "https://www.google.com/url?q=https://acme.example/&sa=U", want: "https://acme.example/"},
		{name: "unwraps relative redirect", href: "/url?q=https%3A%2F%2Facme.example%2Fcontact", want: "https://acme.example/contact"},
		{name: "rejects Maps links", href: "https://www.google.com/maps/place/Acme", want: ""},
		{name: "rejects relative links", href: "/maps/place/Acme", want: ""},
		{name: "rejects mailto", href: "mailto:hello@acme.example", want: ""},
		{name: "rejects redirect without target", href: "https://www.google.fr/url?sa=U", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fragment := `<a href="` + strings.ReplaceAll(tt.href, "&", "&amp;") + `">site</a>`
			v, ok := goquery.Website()(selectFirst(t, fragment, "a"))

			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestSegment(t *testing.T) {
	t.Parallel()

	t.Run("returns first accepted segment", func(t *testing.T) {
		t.Parallel()

		sel := selectFirst(t, `<div class="W4Efsd"><span>Boulangerie</span><span> · </span><span>5 Rue de la Paix</span></div>`, ".W4Efsd")

		addr, ok := goquery.Segment(goquery.IsAddress)(sel)
		assert.True(t, ok)
		assert.Equal(t, "5 Rue de la Paix", addr)

		category, ok := goquery.Segment(goquery.IsCategory)(sel)
		assert.True(t, ok)
		assert.Equal(t, "Boulangerie", category)
	})

	t.Run("rejects when no segment matches", func(t *testing.T) {
		t.Parallel()

		sel := selectFirst(t, `<div class="W4Efsd"><span>Open</span><span> ⋅ Closes 7 PM</span></div>`, ".W4Efsd")

		_, ok := goquery.Segment(goquery.IsCategory)(sel)

		assert.False(t, ok)
	})
}

func TestIsAddress(t *testing.T) {
	t.Parallel()

	assert.True(t, goquery.IsAddress("12 Main St"))
	assert.True(t, goquery.IsAddress("5 Rue de la Paix"))
	assert.True(t, goquery.IsAddress("21 bd Voltaire"))
	assert.False(t, goquery.IsAddress("Rue de la Paix"))
	assert.False(t, goquery.IsAddress("Bakery"))
	assert.False(t, goquery.IsAddress("Closes 7 PM"))
}

func TestIsPhone(t *testing.T) {
	t.Parallel()

	assert.True(t, goquery.IsPhone("02 99 00 11 22"))
	assert.True(t, goquery.IsPhone("+33 2 99 00 11 22"))
	assert.True(t, goquery.IsPhone("(555) 010-0100"))
	assert.False(t, goquery.IsPhone("4,6"))
	assert.False(t, goquery.IsPhone("12 Main St"))
	assert.False(t, goquery.IsPhone("2023"))
}

func TestIsCategory(t *testing.T) {
	t.Parallel()

	assert.True(t, goquery.IsCategory("Bakery"))
	assert.True(t, goquery.IsCategory("Boulangerie-pâtisserie"))
	assert.False(t, goquery.IsCategory(""))
	assert.False(t, goquery.IsCategory("4,6"))
	assert.False(t, goquery.IsCategory("(120)"))
	assert.False(t, goquery.IsCategory("Open"))
	assert.False(t, goquery.IsCategory("Fermé"))
	assert.False(t, goquery.IsCategory("12 Main St"))
	assert.False(t, goquery.IsCategory("€€"))
	assert.False(t, goquery.IsCategory(strings.Repeat("a", 61)))
}
