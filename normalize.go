package mapsync

import (
	"strconv"
	"strings"
	"unicode"
)

// NormalizeOptions carries the user-supplied values applied to every record
// of an upload.
type NormalizeOptions struct {
	// CategoryOverride replaces any scraped category when non-empty.
	CategoryOverride string

	// CityHint fills the city field when non-empty. City is never inferred
	// from the address.
	CityHint string
}

// phoneLabels are prefixes Maps renders in front of phone numbers,
// compared case-insensitively.
var phoneLabels = []string{
	"téléphone :",
	"téléphone:",
	"phone:",
	"tél. :",
	"tél :",
	"tel:",
}

// Normalize cleans a raw field set into a Prospect. It returns false when
// the record has no name; every other field is accepted as-is.
func Normalize(fs FieldSet, opts NormalizeOptions) (*Prospect, bool) {
	p := &Prospect{
		Name:     NormalizeText(fs[FieldName]),
		Address:  NormalizeText(fs[FieldAddress]),
		Phone:    CleanPhone(fs[FieldPhone]),
		Website:  NormalizeText(fs[FieldWebsite]),
		Category: NormalizeText(fs[FieldCategory]),

		Rating:     NormalizeRating(fs[FieldRating]),
		Reviews:    ParseReviewCount(fs[FieldReviews]),
		OpenStatus: NormalizeText(fs[FieldOpenStatus]),
	}
	if p.Name == "" {
		return nil, false
	}

	if category := NormalizeText(opts.CategoryOverride); category != "" {
		p.Category = category
	}
	p.City = NormalizeText(opts.CityHint)

	return p, true
}

// NormalizeRating returns a star rating written with a decimal point, or an
// empty string when s is not a rating between 0 and 5 ("4,6" -> "4.6").
func NormalizeRating(s string) string {
	s = strings.ReplaceAll(NormalizeText(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 5 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseReviewCount reads the digits of a review count such as "(1 234)" or
// "120 reviews". It returns 0 when s holds no digits.
func ParseReviewCount(s string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// CleanPhone strips icon glyphs, invisible formatting marks and labels from
// a scraped phone string. Digits and their grouping are left untouched.
func CleanPhone(s string) string {
	s = strings.Map(func(r rune) rune {
		// Icon fonts use the private use area; bidi and zero-width marks are format runes.
		if unicode.Is(unicode.Co, r) || unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
	s = NormalizeText(s)

	for _, label := range phoneLabels {
		if len(s) >= len(label) && strings.EqualFold(s[:len(label)], label) {
			s = s[len(label):]
			break
		}
	}

	s = strings.TrimLeftFunc(s, isPhoneDecoration)
	return strings.TrimSpace(s)
}

func isPhoneDecoration(r rune) bool {
	if r == '+' || r == '(' {
		return false
	}
	return unicode.IsSpace(r) || unicode.IsSymbol(r) || unicode.IsPunct(r)
}
