package mapsync

import (
	"strings"

	"golang.org/x/text/cases"
)

// identitySeparator joins the parts of an identity key. It cannot appear in
// normalized text.
const identitySeparator = "\x1f"

// IdentityResolver decides which stored rows describe the same business as
// a prospect. Implementations are heuristics; a stronger key (such as a Maps
// place identifier) can replace the default without touching sync logic.
type IdentityResolver interface {
	// Key returns the identity key for p. Two prospects with equal keys are
	// considered the same business.
	Key(p *Prospect) string

	// Filter returns a query that narrows stored rows to candidates for p.
	// Stores may return extra rows; callers compare keys afterwards.
	Filter(p *Prospect) RowFilter
}

var _ IdentityResolver = NameAddressResolver{}

// NameAddressResolver identifies prospects by case-folded, whitespace
// collapsed name and address. Two businesses with the same name and no
// address collapse into one identity.
type NameAddressResolver struct{}

// Key returns IdentityKey(p.Name, p.Address).
func (NameAddressResolver) Key(p *Prospect) string {
	return IdentityKey(p.Name, p.Address)
}

// Filter matches rows by name and identity key.
func (r NameAddressResolver) Filter(p *Prospect) RowFilter {
	name := NormalizeText(p.Name)
	key := r.Key(p)
	return RowFilter{Name: &name, Key: &key}
}

// IdentityKey builds the composite (name, address) identity key.
func IdentityKey(name, address string) string {
	return FoldKey(name) + identitySeparator + FoldKey(address)
}

// FoldKey case-folds s and collapses its whitespace.
func FoldKey(s string) string {
	return NormalizeText(cases.Fold().String(s))
}

// NormalizeText trims s and collapses internal runs of whitespace to a
// single space.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
