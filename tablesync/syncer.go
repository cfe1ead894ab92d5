// Package tablesync reconciles extracted prospects with the workspace table:
// each prospect updates the row that already describes it or creates one.
package tablesync

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/fwojciec/mapsync"
)

// Syncer upserts prospects into a mapsync.TableService.
type Syncer struct {
	table       mapsync.TableService
	resolver    mapsync.IdentityResolver
	callTimeout time.Duration
	retryDelays []time.Duration
	logger      *slog.Logger
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithResolver sets the identity resolver used to match rows.
func WithResolver(r mapsync.IdentityResolver) Option {
	return func(s *Syncer) {
		s.resolver = r
	}
}

// WithCallTimeout sets the timeout applied to every table call attempt.
func WithCallTimeout(d time.Duration) Option {
	return func(s *Syncer) {
		s.callTimeout = d
	}
}

// WithRetryDelays sets the waits between attempts of a transiently failing
// table call. The number of attempts is len(delays)+1.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *Syncer) {
		s.retryDelays = delays
	}
}

// WithLogger sets the logger for retries and per-record outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// NewSyncer creates a new Syncer. Returns EINVALID when table is nil.
func NewSyncer(table mapsync.TableService, opts ...Option) (*Syncer, error) {
	if table == nil {
		return nil, mapsync.Errorf(mapsync.EINVALID, "table service required")
	}

	s := &Syncer{
		table:       table,
		resolver:    mapsync.NameAddressResolver{},
		callTimeout: DefaultCallTimeout,
		retryDelays: DefaultRetryDelays(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sync upserts every prospect and returns one result per prospect, in input
// order. A failing prospect is reported and does not stop the others.
func (s *Syncer) Sync(ctx context.Context, prospects []*mapsync.Prospect) []mapsync.SyncResult {
	results := make([]mapsync.SyncResult, 0, len(prospects))
	for _, p := range prospects {
		result := s.syncOne(ctx, p)
		if result.Status == mapsync.SyncFailed {
			s.logger.Warn("sync failed", "name", nameOf(p), "reason", result.Reason)
		} else {
			s.logger.Debug("synced", "name", p.Name, "status", result.Status.String(), "row", result.RowID)
		}
		results = append(results, result)
	}

	summary := mapsync.Summarize(results)
	s.logger.Info("sync complete",
		"created", summary.Created,
		"updated", summary.Updated,
		"failed", summary.Failed,
	)
	return results
}

func (s *Syncer) syncOne(ctx context.Context, p *mapsync.Prospect) mapsync.SyncResult {
	if p == nil {
		return failed(p, "invalid record", mapsync.Errorf(mapsync.EINVALID, "nil prospect"))
	}
	if err := p.Validate(); err != nil {
		return failed(p, "invalid record", err)
	}

	rows, err := CallWithRetry(ctx, "find rows", func(ctx context.Context) ([]*mapsync.Row, error) {
		return s.table.FindRows(ctx, s.resolver.Filter(p))
	}, s.callTimeout, s.retryDelays, s.logger)
	if err != nil {
		return failed(p, "find rows", err)
	}

	match := s.pickMatch(p, rows)
	if match == nil {
		row, err := CallWithRetry(ctx, "create row", func(ctx context.Context) (*mapsync.Row, error) {
			return s.table.CreateRow(ctx, p)
		}, s.callTimeout, s.retryDelays, s.logger)
		if err != nil {
			return failed(p, "create row", err)
		}
		return mapsync.SyncResult{Prospect: p, Status: mapsync.SyncCreated, RowID: row.ID}
	}

	upd := mapsync.MergeUpdate(p)
	row, err := CallWithRetry(ctx, "update row", func(ctx context.Context) (*mapsync.Row, error) {
		return s.table.UpdateRow(ctx, match.ID, upd)
	}, s.callTimeout, s.retryDelays, s.logger)
	if err != nil {
		return failed(p, "update row", err)
	}

	id := match.ID
	if row != nil && row.ID != "" {
		id = row.ID
	}
	return mapsync.SyncResult{Prospect: p, Status: mapsync.SyncUpdated, RowID: id}
}

// pickMatch returns the row with p's identity key that was edited most
// recently, breaking ties by the smallest ID. Returns nil if none match.
func (s *Syncer) pickMatch(p *mapsync.Prospect, rows []*mapsync.Row) *mapsync.Row {
	key := s.resolver.Key(p)

	var matches []*mapsync.Row
	for _, row := range rows {
		if row != nil && s.resolver.Key(&row.Prospect) == key {
			matches = append(matches, row)
		}
	}
	if len(matches) == 0 {
		return nil
	}

	return slices.MinFunc(matches, func(a, b *mapsync.Row) int {
		if c := b.LastEditedAt.Compare(a.LastEditedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func failed(p *mapsync.Prospect, stage string, err error) mapsync.SyncResult {
	return mapsync.SyncResult{
		Prospect: p,
		Status:   mapsync.SyncFailed,
		Reason:   fmt.Sprintf("%s: %s", stage, reasonOf(err)),
		Err:      err,
	}
}

// reasonOf returns the application message, or the raw error text for
// non-application errors.
func reasonOf(err error) string {
	if mapsync.ErrorCode(err) == mapsync.EINTERNAL {
		return err.Error()
	}
	return mapsync.ErrorMessage(err)
}

func nameOf(p *mapsync.Prospect) string {
	if p == nil {
		return ""
	}
	return p.Name
}
