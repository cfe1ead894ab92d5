package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mapsync"
)

// Reader reads a candidate value from one matched node.
// It returns false when the node carries no plausible value.
type Reader func(sel *goquery.Selection) (string, bool)

// Signature locates a field value inside a listing container.
type Signature struct {
	// Selector is a CSS selector evaluated against the container's
	// descendants. An empty selector means the container itself.
	Selector string

	// Read extracts the value from a matched node.
	Read Reader
}

// FieldRule pairs a field with its primary signature and the fallback
// signature tried when the primary finds nothing.
type FieldRule struct {
	Field    mapsync.Field
	Primary  Signature
	Fallback Signature
}

// find returns the first plausible value for the signature within container.
func (s Signature) find(container *goquery.Selection) (string, bool) {
	if s.Read == nil {
		return "", false
	}

	candidates := container
	if s.Selector != "" {
		candidates = container.Find(s.Selector)
	}

	var value string
	var found bool
	candidates.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		value, found = s.Read(sel)
		return !found
	})
	return value, found
}

// Text reads the node's trimmed text content.
func Text() Reader {
	return func(sel *goquery.Selection) (string, bool) {
		text := strings.TrimSpace(sel.Text())
		return text, text != ""
	}
}

// AriaLabel reads the aria-label attribute and removes the first matching
// label prefix, compared case-insensitively (e.g. "Address: 12 Main St").
func AriaLabel(prefixes ...string) Reader {
	return func(sel *goquery.Selection) (string, bool) {
		label, ok := sel.Attr("aria-label")
		if !ok {
			return "", false
		}
		label = strings.TrimSpace(label)
		for _, prefix := range prefixes {
			if len(label) >= len(prefix) && strings.EqualFold(label[:len(prefix)], prefix) {
				label = strings.TrimSpace(label[len(prefix):])
				break
			}
		}
		return label, label != ""
	}
}

// Tel reads a phone number from a phone:tel: data-item-id or a tel: href.
func Tel() Reader {
	return func(sel *goquery.Selection) (string, bool) {
		if id, ok := sel.Attr("data-item-id"); ok {
			if rest, found := cutPrefixFold(id, "phone:tel:"); found && strings.TrimSpace(rest) != "" {
				return strings.TrimSpace(rest), true
			}
		}
		if href, ok := sel.Attr("href"); ok {
			if rest, found := cutPrefixFold(strings.TrimSpace(href), "tel:"); found && strings.TrimSpace(rest) != "" {
				return strings.TrimSpace(rest), true
			}
		}
		return "", false
	}
}

// Website reads an href as a business website. Google redirect links are
// unwrapped; relative, non-HTTP and Google-owned URLs are rejected.
func Website() Reader {
	return func(sel *goquery.Selection) (string, bool) {
		href, ok := sel.Attr("href")
		if !ok {
			return "", false
		}
		website := normalizeWebsite(href)
		return website, website != ""
	}
}

// Segment splits the node's text on Maps' middle-dot separators and returns
// the first segment accepted by match.
func Segment(match func(string) bool) Reader {
	return func(sel *goquery.Selection) (string, bool) {
		for _, part := range segmentSplitter.Split(sel.Text(), -1) {
			part = strings.TrimSpace(part)
			if part != "" && match(part) {
				return part, true
			}
		}
		return "", false
	}
}

var segmentSplitter = regexp.MustCompile(`[·⋅•]`)

// normalizeWebsite returns an absolute http(s) URL or an empty string.
func normalizeWebsite(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	// Google wraps outbound links as /url?q=<target>.
	if isGoogleHost(u.Host) || u.Host == "" {
		if u.Path == "/url" {
			target := u.Query().Get("q")
			if target == "" {
				target = u.Query().Get("url")
			}
			if target == "" {
				return ""
			}
			if u, err = url.Parse(target); err != nil {
				return ""
			}
		}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" || isGoogleHost(u.Host) {
		return ""
	}
	return u.String()
}

func isGoogleHost(host string) bool {
	host = strings.ToLower(host)
	return strings.Contains(host, "google.") || strings.HasSuffix(host, "gstatic.com")
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

var (
	// streetPattern matches common French and English street designators.
	streetPattern = regexp.MustCompile(`(?i)\b(rue|avenue|av|boulevard|bd|blvd|place|pl|chemin|impasse|quai|route|cours|street|st|road|rd|ave|lane|ln|drive|dr|way|square|sq)\b`)
	digitPattern  = regexp.MustCompile(`\d`)
	phonePattern  = regexp.MustCompile(`^\+?[\d\s().-]{7,}$`)
	statusPattern = regexp.MustCompile(`(?i)\b(open|closed|closes|ouvert|ouvre|fermé|ferme)`)
	ratingPattern = regexp.MustCompile(`^\d+([.,]\d+)?(\s*\(\s*[\d\s.,]+\))?$`)
)

// IsAddress reports whether a text segment looks like a postal address.
func IsAddress(s string) bool {
	return streetPattern.MatchString(s) && digitPattern.MatchString(s)
}

// IsPhone reports whether a text segment looks like a phone number.
func IsPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s)) && len(digitPattern.FindAllString(s, -1)) >= 6
}

// IsCategory reports whether a text segment looks like a business category
// label rather than a rating, price level, address or opening status.
func IsCategory(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return false
	}
	if digitPattern.MatchString(s) || statusPattern.MatchString(s) || ratingPattern.MatchString(s) {
		return false
	}
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}
