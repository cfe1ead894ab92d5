package mock

import (
	"context"

	"github.com/fwojciec/mapsync"
)

var _ mapsync.ImportService = (*ImportService)(nil)

// ImportService is a mock implementation of mapsync.ImportService.
type ImportService struct {
	ImportFn func(ctx context.Context, html string, opts mapsync.NormalizeOptions) (*mapsync.ImportReport, error)
}

func (s *ImportService) Import(ctx context.Context, html string, opts mapsync.NormalizeOptions) (*mapsync.ImportReport, error) {
	return s.ImportFn(ctx, html, opts)
}
