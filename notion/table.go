package notion

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/mapsync"
)

var _ mapsync.TableService = (*Client)(nil)

// maxPageSize is the largest page Notion returns from a query.
const maxPageSize = 100

type queryRequest struct {
	Filter      *queryFilter `json:"filter,omitempty"`
	PageSize    int          `json:"page_size,omitempty"`
	StartCursor string       `json:"start_cursor,omitempty"`
}

type queryFilter struct {
	Property string      `json:"property"`
	Title    *textFilter `json:"title,omitempty"`
}

type textFilter struct {
	Contains string `json:"contains,omitempty"`
}

type queryResponse struct {
	Results    []*page `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type createRequest struct {
	Parent     parent              `json:"parent"`
	Properties map[string]property `json:"properties"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type updateRequest struct {
	Properties map[string]property `json:"properties"`
}

// FindRows queries the database for rows whose title contains the longest
// word of filter.Name, ignoring case. Notion compares titles verbatim, so a
// stored "ACME  Bakery" would miss a query for "Acme Bakery"; callers compare
// the returned rows themselves. filter.Key is not indexed by Notion and is
// ignored.
func (c *Client) FindRows(ctx context.Context, filter mapsync.RowFilter) ([]*mapsync.Row, error) {
	req := queryRequest{PageSize: maxPageSize}
	if filter.Name != nil {
		if word := longestWord(*filter.Name); word != "" {
			req.Filter = &queryFilter{
				Property: c.schema.Name,
				Title:    &textFilter{Contains: word},
			}
		}
	}
	if filter.Limit > 0 && filter.Limit < maxPageSize {
		req.PageSize = filter.Limit
	}

	path := "/v1/databases/" + url.PathEscape(c.databaseID) + "/query"
	var rows []*mapsync.Row
	for {
		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
			return nil, err
		}
		for _, pg := range resp.Results {
			if pg == nil || pg.Archived {
				continue
			}
			rows = append(rows, c.schema.decode(pg))
			if filter.Limit > 0 && len(rows) >= filter.Limit {
				return rows, nil
			}
		}
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return rows, nil
		}
		req.StartCursor = *resp.NextCursor
	}
}

// longestWord returns the longest whitespace-separated word of s, the first
// one on a tie.
func longestWord(s string) string {
	var best string
	for _, w := range strings.Fields(s) {
		if utf8.RuneCountInString(w) > utf8.RuneCountInString(best) {
			best = w
		}
	}
	return best
}

// CreateRow adds a page for p to the database.
func (c *Client) CreateRow(ctx context.Context, p *mapsync.Prospect) (*mapsync.Row, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	req := createRequest{
		Parent:     parent{DatabaseID: c.databaseID},
		Properties: c.schema.encodeNew(p, c.now()),
	}
	var pg page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", req, &pg); err != nil {
		return nil, err
	}
	return c.schema.decode(&pg), nil
}

// UpdateRow writes the set fields of upd to the page with the given id.
func (c *Client) UpdateRow(ctx context.Context, id string, upd mapsync.RowUpdate) (*mapsync.Row, error) {
	if id == "" {
		return nil, mapsync.Errorf(mapsync.EINVALID, "row id required")
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, mapsync.Errorf(mapsync.EINVALID, "prospect name required")
	}

	req := updateRequest{Properties: c.schema.encode(upd)}
	var pg page
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+url.PathEscape(id), req, &pg); err != nil {
		return nil, err
	}
	return c.schema.decode(&pg), nil
}

// Database describes the configured database.
type Database struct {
	ID    string
	Title string
}

// RetrieveDatabase fetches the database metadata. It is used to check that
// the credentials can reach the database.
func (c *Client) RetrieveDatabase(ctx context.Context) (*Database, error) {
	var resp struct {
		ID    string     `json:"id"`
		Title []richText `json:"title"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/databases/"+url.PathEscape(c.databaseID), nil, &resp); err != nil {
		return nil, err
	}
	return &Database{ID: resp.ID, Title: property{Title: resp.Title}.plain()}, nil
}
