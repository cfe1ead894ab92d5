package mapsync

import (
	"context"
	"time"
)

// Row is a prospect as stored in the workspace table.
type Row struct {
	Prospect

	ID           string    `json:"id"`
	LastEditedAt time.Time `json:"lastEditedAt"`
}

// TableService represents the external workspace table holding prospects.
type TableService interface {
	// FindRows returns rows that may match the filter. Implementations are
	// allowed to over-match; callers compare identity keys themselves.
	FindRows(ctx context.Context, filter RowFilter) ([]*Row, error)

	// CreateRow inserts a new row populated from p.
	CreateRow(ctx context.Context, p *Prospect) (*Row, error)

	// UpdateRow writes the non-nil fields of upd to an existing row.
	// Returns ENOTFOUND if the row does not exist.
	UpdateRow(ctx context.Context, id string, upd RowUpdate) (*Row, error)
}

// RowFilter represents a filter for FindRows.
type RowFilter struct {
	// Name matches rows whose name contains this value, ignoring case.
	Name *string `json:"name"`

	// Key matches rows by identity key, for stores that index it.
	Key *string `json:"key"`

	Limit int `json:"limit"`
}

// RowUpdate represents fields that can be updated on a row. Nil fields are
// left untouched.
type RowUpdate struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Website  *string `json:"website"`
	Category *string `json:"category"`
	City     *string `json:"city"`
}

// MergeUpdate returns an update carrying only the non-empty fields of p, so
// that a value stored earlier is never blanked by a record with less data.
func MergeUpdate(p *Prospect) RowUpdate {
	var upd RowUpdate
	set := func(dst **string, v string) {
		if v != "" {
			*dst = &v
		}
	}
	set(&upd.Name, p.Name)
	set(&upd.Address, p.Address)
	set(&upd.Phone, p.Phone)
	set(&upd.Website, p.Website)
	set(&upd.Category, p.Category)
	set(&upd.City, p.City)
	return upd
}

// Apply writes the non-nil fields of u onto p.
func (u RowUpdate) Apply(p *Prospect) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Website != nil {
		p.Website = *u.Website
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.City != nil {
		p.City = *u.City
	}
}
