package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mapsync"
)

// Ensure LoggingTableService implements mapsync.TableService.
var _ mapsync.TableService = (*LoggingTableService)(nil)

// LoggingTableService wraps a TableService with logging of every call.
type LoggingTableService struct {
	next   mapsync.TableService
	logger *slog.Logger
}

// NewLoggingTableService creates a new LoggingTableService.
func NewLoggingTableService(next mapsync.TableService, logger *slog.Logger) *LoggingTableService {
	return &LoggingTableService{next: next, logger: logger}
}

// FindRows delegates to the wrapped service and logs the lookup.
func (s *LoggingTableService) FindRows(ctx context.Context, filter mapsync.RowFilter) (rows []*mapsync.Row, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find rows",
			"name", deref(filter.Name),
			"count", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRows(ctx, filter)
}

// CreateRow delegates to the wrapped service and logs the new row.
func (s *LoggingTableService) CreateRow(ctx context.Context, p *mapsync.Prospect) (row *mapsync.Row, err error) {
	defer func(begin time.Time) {
		s.logger.Info("create row",
			"name", p.Name,
			"id", rowID(row),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRow(ctx, p)
}

// UpdateRow delegates to the wrapped service and logs the update.
func (s *LoggingTableService) UpdateRow(ctx context.Context, id string, upd mapsync.RowUpdate) (row *mapsync.Row, err error) {
	defer func(begin time.Time) {
		s.logger.Info("update row",
			"id", id,
			"fields", updatedFields(upd),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateRow(ctx, id, upd)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func rowID(row *mapsync.Row) string {
	if row == nil {
		return ""
	}
	return row.ID
}

// updatedFields lists the fields an update writes.
func updatedFields(upd mapsync.RowUpdate) []string {
	fields := []string{}
	for _, f := range []struct {
		name string
		v    *string
	}{
		{string(mapsync.FieldName), upd.Name},
		{string(mapsync.FieldAddress), upd.Address},
		{string(mapsync.FieldPhone), upd.Phone},
		{string(mapsync.FieldWebsite), upd.Website},
		{string(mapsync.FieldCategory), upd.Category},
		{"city", upd.City},
	} {
		if f.v != nil {
			fields = append(fields, f.name)
		}
	}
	return fields
}
