// Package service records executed searches and reports popular terms
package service

import (
	"context"
	"sync"
	"time"

	perr "assetsearch/internal/platform/errors"
	"assetsearch/internal/platform/logger"
	"assetsearch/internal/platform/metrics"
	"assetsearch/internal/services/api/searchlog/domain"
	"assetsearch/internal/services/api/searchlog/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for the event log
type Service interface{ domain.ServicePort }

// Options tune the recorder
type Options struct {
	// WriteTimeout bounds one insert; the request context deadline does not apply
	WriteTimeout time.Duration
	DefaultHours int
	DefaultLimit int
}

// Svc implements Service; a nil repo makes it a recorder that drops everything
type Svc struct {
	repo repo.Repo
	opts Options

	mu    sync.Mutex
	ready bool

	now   func() time.Time
	newID func() uuid.UUID
}

// New creates the event log service; r may be nil when clickhouse is disabled
func New(r repo.Repo, opts Options) *Svc {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 2 * time.Second
	}
	if opts.DefaultHours <= 0 {
		opts.DefaultHours = 24
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	return &Svc{
		repo:  r,
		opts:  opts,
		now:   time.Now,
		newID: func() uuid.UUID { return uuid.Must(uuid.NewV7()) },
	}
}

// Enabled reports whether events are persisted
func (s *Svc) Enabled() bool { return s.repo != nil }

// ensure creates the table once; a failure is retried on the next call
func (s *Svc) ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := s.repo.EnsureTable(ctx); err != nil {
		return err
	}
	s.ready = true
	return nil
}

// Record writes e synchronously and swallows failures
func (s *Svc) Record(ctx context.Context, e domain.Event) {
	if s.repo == nil {
		return
	}
	if e.ID == uuid.Nil {
		e.ID = s.newID()
	}
	if e.At.IsZero() {
		e.At = s.now()
	}

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.WriteTimeout)
	defer cancel()

	err := s.ensure(wctx)
	if err == nil {
		err = s.repo.Insert(wctx, []domain.Event{e})
	}
	if err != nil {
		metrics.SearchEventsDropped.Inc()
		logger.C(ctx).Warn().Err(err).
			Str("term", e.Term).
			Str("outcome", e.Outcome).
			Msg("search event dropped")
	}
}

// Top returns the most searched terms of the last in.Hours hours
func (s *Svc) Top(ctx context.Context, in domain.TopInput) ([]domain.TopTerm, error) {
	if s.repo == nil {
		return nil, perr.Unavailablef("search log is disabled")
	}
	hours, limit := in.Hours, in.Limit
	if hours <= 0 {
		hours = s.opts.DefaultHours
	}
	if limit <= 0 {
		limit = s.opts.DefaultLimit
	}
	if err := s.ensure(ctx); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "search log unavailable")
	}
	since := s.now().Add(-time.Duration(hours) * time.Hour)
	out, err := s.repo.Top(ctx, since, limit)
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("search log top failed")
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "search log unavailable")
	}
	return out, nil
}
