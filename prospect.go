package mapsync

import "strings"

// Field names a value that can be scraped from a listing block.
type Field string

// Listing fields recognised by extractors.
const (
	FieldName     Field = "name"
	FieldAddress  Field = "address"
	FieldPhone    Field = "phone"
	FieldWebsite  Field = "website"
	FieldCategory Field = "category"

	// Listing details Maps shows next to the name. They are informational
	// and never take part in matching.
	FieldRating     Field = "rating"
	FieldReviews    Field = "reviews"
	FieldOpenStatus Field = "open_status"
)

// FieldSet is the raw, unvalidated output of an extractor for one listing
// block. A missing key means no plausible value was found.
type FieldSet map[Field]string

// Prospect is a normalized business listing ready to be synchronized.
type Prospect struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
	Category string `json:"category"`
	City     string `json:"city"`

	// Rating is the average star rating as a decimal string ("4.6").
	Rating     string `json:"rating,omitempty"`
	Reviews    int    `json:"reviews,omitempty"`
	OpenStatus string `json:"open_status,omitempty"`
}

// Validate returns an error if the prospect contains invalid fields.
func (p *Prospect) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Errorf(EINVALID, "prospect name required")
	}
	return nil
}

// ValidateDocument returns an EINVALID error when html cannot be treated as a
// text document at all. Stray invalid UTF-8 bytes are not an error; see
// SanitizeDocument.
func ValidateDocument(html string) error {
	if strings.TrimSpace(html) == "" {
		return Errorf(EINVALID, "empty document")
	}
	if strings.IndexByte(html, 0) >= 0 {
		return Errorf(EINVALID, "document contains binary data")
	}
	return nil
}

// SanitizeDocument replaces each run of invalid UTF-8 bytes with U+FFFD, so a
// page saved with a stray Latin-1 byte still yields all of its listings.
func SanitizeDocument(html string) string {
	return strings.ToValidUTF8(html, "\uFFFD")
}
