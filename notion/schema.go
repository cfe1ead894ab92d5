package notion

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/mapsync"
)

// Schema names the database properties a prospect is written to.
type Schema struct {
	Name     string // title
	Address  string // rich_text
	Phone    string // phone_number
	Website  string // url
	Category string // select
	City     string // rich_text

	// Status, DateAdded and Comments are only written when a row is
	// created. Empty names skip them.
	Status        string // select
	DefaultStatus string
	DateAdded     string // date
	Comments      string // rich_text
}

// DefaultSchema returns the property names of the prospecting database.
func DefaultSchema() Schema {
	return Schema{
		Name:          "Nom",
		Address:       "Adresse",
		Phone:         "Téléphone",
		Website:       "Site Web",
		Category:      "Type d'entreprise",
		City:          "Ville",
		Status:        "Statut",
		DefaultStatus: "À contacter",
		DateAdded:     "Date Ajout",
		Comments:      "Commentaires",
	}
}

// maxTextLength is Notion's limit for one rich text item.
const maxTextLength = 2000

type page struct {
	Object         string              `json:"object,omitempty"`
	ID             string              `json:"id"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Archived       bool                `json:"archived,omitempty"`
	Properties     map[string]property `json:"properties"`
}

type property struct {
	Type        string        `json:"type,omitempty"`
	Title       []richText    `json:"title,omitempty"`
	RichText    []richText    `json:"rich_text,omitempty"`
	PhoneNumber *string       `json:"phone_number,omitempty"`
	URL         *string       `json:"url,omitempty"`
	Email       *string       `json:"email,omitempty"`
	Select      *selectOption `json:"select,omitempty"`
	Date        *dateValue    `json:"date,omitempty"`
}

type richText struct {
	Type      string       `json:"type,omitempty"`
	Text      *textContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type textContent struct {
	Content string `json:"content"`
}

type selectOption struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

func textProperty(s string) []richText {
	return []richText{{Type: "text", Text: &textContent{Content: truncate(s, maxTextLength)}}}
}

// plain returns the visible text of a property whatever its type.
func (p property) plain() string {
	var parts []richText
	switch {
	case len(p.Title) > 0:
		parts = p.Title
	case len(p.RichText) > 0:
		parts = p.RichText
	case p.PhoneNumber != nil:
		return *p.PhoneNumber
	case p.URL != nil:
		return *p.URL
	case p.Email != nil:
		return *p.Email
	case p.Select != nil:
		return p.Select.Name
	}

	var b strings.Builder
	for _, rt := range parts {
		if rt.PlainText != "" {
			b.WriteString(rt.PlainText)
		} else if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}

// encode converts the set fields of upd into page properties.
func (s Schema) encode(upd mapsync.RowUpdate) map[string]property {
	props := make(map[string]property)
	if upd.Name != nil && s.Name != "" {
		props[s.Name] = property{Title: textProperty(*upd.Name)}
	}
	if upd.Address != nil && s.Address != "" {
		props[s.Address] = property{RichText: textProperty(*upd.Address)}
	}
	if upd.Phone != nil && s.Phone != "" {
		props[s.Phone] = property{PhoneNumber: upd.Phone}
	}
	if upd.Website != nil && s.Website != "" {
		props[s.Website] = property{URL: upd.Website}
	}
	if upd.Category != nil && s.Category != "" {
		props[s.Category] = property{Select: &selectOption{Name: selectName(*upd.Category)}}
	}
	if upd.City != nil && s.City != "" {
		props[s.City] = property{RichText: textProperty(*upd.City)}
	}
	return props
}

// encodeNew converts p into the properties of a new row, including the
// default status and the date it was added.
func (s Schema) encodeNew(p *mapsync.Prospect, added time.Time) map[string]property {
	props := s.encode(mapsync.MergeUpdate(p))
	if s.Status != "" && s.DefaultStatus != "" {
		props[s.Status] = property{Select: &selectOption{Name: selectName(s.DefaultStatus)}}
	}
	if s.DateAdded != "" {
		props[s.DateAdded] = property{Date: &dateValue{Start: added.Format(time.DateOnly)}}
	}
	if c := comments(p); s.Comments != "" && c != "" {
		props[s.Comments] = property{RichText: textProperty(c)}
	}
	return props
}

// comments renders the listing details that have no column of their own,
// one "label: value" line each.
func comments(p *mapsync.Prospect) string {
	var lines []string
	if p.Address != "" {
		lines = append(lines, "Adresse: "+p.Address)
	}
	if p.OpenStatus != "" {
		lines = append(lines, "Statut ouverture: "+p.OpenStatus)
	}
	if p.Rating != "" {
		lines = append(lines, "Note: "+p.Rating+"/5")
	}
	if p.Reviews > 0 {
		lines = append(lines, fmt.Sprintf("Nombre d'avis: %d", p.Reviews))
	}
	return strings.Join(lines, "\n")
}

// decode converts a page into a row.
func (s Schema) decode(pg *page) *mapsync.Row {
	get := func(name string) string {
		if name == "" {
			return ""
		}
		return strings.TrimSpace(pg.Properties[name].plain())
	}
	return &mapsync.Row{
		ID:           pg.ID,
		LastEditedAt: pg.LastEditedTime,
		Prospect: mapsync.Prospect{
			Name:     get(s.Name),
			Address:  get(s.Address),
			Phone:    get(s.Phone),
			Website:  get(s.Website),
			Category: get(s.Category),
			City:     get(s.City),
		},
	}
}

// selectName makes s acceptable as a select option; Notion rejects commas.
func selectName(s string) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, ",", " ")), " ")
	return truncate(s, 100)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
