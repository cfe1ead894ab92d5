package mock

import (
	"context"

	"github.com/fwojciec/mapsync"
)

var _ mapsync.TableService = (*TableService)(nil)

// TableService is a mock implementation of mapsync.TableService.
type TableService struct {
	FindRowsFn  func(ctx context.Context, filter mapsync.RowFilter) ([]*mapsync.Row, error)
	CreateRowFn func(ctx context.Context, p *mapsync.Prospect) (*mapsync.Row, error)
	UpdateRowFn func(ctx context.Context, id string, upd mapsync.RowUpdate) (*mapsync.Row, error)
}

func (s *TableService) FindRows(ctx context.Context, filter mapsync.RowFilter) ([]*mapsync.Row, error) {
	return s.FindRowsFn(ctx, filter)
}

func (s *TableService) CreateRow(ctx context.Context, p *mapsync.Prospect) (*mapsync.Row, error) {
	return s.CreateRowFn(ctx, p)
}

func (s *TableService) UpdateRow(ctx context.Context, id string, upd mapsync.RowUpdate) (*mapsync.Row, error) {
	return s.UpdateRowFn(ctx, id, upd)
}
