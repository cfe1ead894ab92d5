package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mapsync"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ mapsync.TableService = (*ProspectTable)(nil)

// DefaultStatus is the status given to newly created rows.
const DefaultStatus = "À contacter"

// ProspectTable implements mapsync.TableService using SQLite.
//
// Rows are indexed by a 64-bit xxhash of their identity key, so lookups by
// RowFilter.Key do not scan the table. Hash collisions only widen the
// candidate set; callers compare full keys.
type ProspectTable struct {
	db       *DB
	resolver mapsync.IdentityResolver
}

// NewProspectTable creates a new ProspectTable. A nil resolver uses
// mapsync.NameAddressResolver.
func NewProspectTable(db *DB, resolver mapsync.IdentityResolver) *ProspectTable {
	if resolver == nil {
		resolver = mapsync.NameAddressResolver{}
	}
	return &ProspectTable{db: db, resolver: resolver}
}

const prospectColumns = "id, name, address, phone, website, category, city, last_edited_at"

// identityHash returns the indexed form of an identity key.
func identityHash(key string) int64 {
	return int64(xxhash.Sum64String(key))
}

// FindRows returns rows matching filter, most recently edited first. Key
// takes precedence over Name.
func (t *ProspectTable) FindRows(ctx context.Context, filter mapsync.RowFilter) ([]*mapsync.Row, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + prospectColumns + " FROM prospects WHERE 1=1")

	switch {
	case filter.Key != nil:
		query.WriteString(" AND identity_hash = ?")
		args = append(args, identityHash(*filter.Key))
	case filter.Name != nil:
		query.WriteString(" AND instr(lower(name), lower(?)) > 0")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY last_edited_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, 0)

	rows, err := t.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*mapsync.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// FindRowByID retrieves a row by ID.
func (t *ProspectTable) FindRowByID(ctx context.Context, id string) (*mapsync.Row, error) {
	row, err := scanRow(t.db.QueryRowContext(ctx,
		"SELECT "+prospectColumns+" FROM prospects WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mapsync.Errorf(mapsync.ENOTFOUND, "row not found")
	}
	return row, err
}

// CreateRow inserts a new row populated from p.
func (t *ProspectTable) CreateRow(ctx context.Context, p *mapsync.Prospect) (*mapsync.Row, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &mapsync.Row{
		Prospect:     *p,
		ID:           uuid.New().String(),
		LastEditedAt: now,
	}

	_, err := t.db.ExecContext(ctx, `
		INSERT INTO prospects (id, name, address, phone, website, category, city, status, identity_hash, created_at, last_edited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, row.ID, row.Name, row.Address, row.Phone, row.Website, row.Category, row.City,
		DefaultStatus, identityHash(t.resolver.Key(p)),
		formatTimestamp(now), formatTimestamp(now))
	if err != nil {
		return nil, err
	}

	return row, nil
}

// UpdateRow writes the non-nil fields of upd to an existing row.
func (t *ProspectTable) UpdateRow(ctx context.Context, id string, upd mapsync.RowUpdate) (*mapsync.Row, error) {
	row, err := t.FindRowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(&row.Prospect)

	if err := row.Validate(); err != nil {
		return nil, err
	}

	row.LastEditedAt = time.Now().UTC()

	_, err = t.db.ExecContext(ctx, `
		UPDATE prospects
		SET name = ?, address = ?, phone = ?, website = ?, category = ?, city = ?, identity_hash = ?, last_edited_at = ?
		WHERE id = ?
	`, row.Name, row.Address, row.Phone, row.Website, row.Category, row.City,
		identityHash(t.resolver.Key(&row.Prospect)), formatTimestamp(row.LastEditedAt), id)
	if err != nil {
		return nil, err
	}

	return row, nil
}

// CountRows returns the number of stored rows.
func (t *ProspectTable) CountRows(ctx context.Context) (int, error) {
	var n int
	err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM prospects").Scan(&n)
	return n, err
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (*mapsync.Row, error) {
	var row mapsync.Row
	var lastEditedAt string
	if err := s.Scan(&row.ID, &row.Name, &row.Address, &row.Phone, &row.Website,
		&row.Category, &row.City, &lastEditedAt); err != nil {
		return nil, err
	}

	var err error
	row.LastEditedAt, err = parseRFC3339(lastEditedAt, "last_edited_at")
	if err != nil {
		return nil, err
	}
	return &row, nil
}
