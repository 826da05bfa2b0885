// Package service runs asset searches: normalize, gate on term length, count then page
package service

import (
	"context"
	"time"

	"assetsearch/internal/core/normalize"
	"assetsearch/internal/core/paging"
	"assetsearch/internal/core/query"
	"assetsearch/internal/modkit/repokit"
	perr "assetsearch/internal/platform/errors"
	"assetsearch/internal/platform/logger"
	"assetsearch/internal/platform/metrics"
	pnet "assetsearch/internal/platform/net"
	"assetsearch/internal/platform/store"
	"assetsearch/internal/services/api/search/domain"
	"assetsearch/internal/services/api/search/repo"
	logdom "assetsearch/internal/services/api/searchlog/domain"
)

// Service defines the service contract for search
type Service interface{ domain.Searcher }

// Options tune paging and the store budget
type Options struct {
	PageSize int
	MinTerm  int
	// QueryTimeout bounds count plus page; it is also sent to the server as a statement limit
	QueryTimeout time.Duration
}

// Svc implements Service
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Repo]
	dialect query.Dialect
	opts    Options
	rec     logdom.Recorder

	now func() time.Time
}

// New creates the search service. rec may be nil, in which case nothing is recorded
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], dialect store.Dialect, opts Options, rec logdom.Recorder) *Svc {
	if db == nil {
		panic("search.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("search.Service requires a non nil Repo binder")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = query.DefaultPageSize
	}
	if opts.MinTerm <= 0 {
		opts.MinTerm = 2
	}
	if rec == nil {
		rec = logdom.Nop{}
	}
	if dialect == "" {
		dialect = store.DialectMySQL
	}
	hooks := repokit.Hooks(repokit.StatementTimeout(dialect, opts.QueryTimeout))
	if len(hooks) > 0 {
		db = repokit.WithBeginHooks(db, hooks...)
	}
	return &Svc{
		db:      db,
		binder:  binder,
		dialect: query.Dialect(dialect),
		opts:    opts,
		rec:     rec,
		now:     time.Now,
	}
}

// Search runs q. Store failures return the unavailable Result and an ErrorCodeUnavailable error
func (s *Svc) Search(ctx context.Context, q domain.SearchQuery) (domain.Result, error) {
	term := normalize.Term(q.Term)
	page := paging.NormalizePage(q.Page)
	res := domain.Result{Term: term, Paging: paging.Compute(0, page, s.opts.PageSize)}

	if term == "" {
		res.Outcome = domain.OutcomeEmpty
		metrics.ObserveSearch(string(res.Outcome), 0)
		return res, nil
	}
	if normalize.Len(term) < s.opts.MinTerm {
		res.Outcome = domain.OutcomeAdvisory
		res.Advisory = domain.Advisory(s.opts.MinTerm)
		metrics.ObserveSearch(string(res.Outcome), 0)
		return res, nil
	}

	plan, err := query.Build(s.dialect, term, page, s.opts.PageSize)
	if err != nil {
		return res, perr.Wrap(err, perr.ErrorCodeUnknown, "search plan failed")
	}

	start := s.now()
	total, rows, err := s.run(ctx, plan)
	elapsed := s.now().Sub(start)

	if err != nil {
		res.Outcome = domain.OutcomeUnavailable
		logger.C(ctx).Error().
			Err(perr.FromDB(err, "search query failed")).
			Bool("retryable", perr.Retryable(err)).
			Str("term", term).
			Int("page", page).
			Dur("elapsed", elapsed).
			Msg("search unavailable")
		s.finish(ctx, res, elapsed)
		return res, perr.Wrap(err, perr.ErrorCodeUnavailable, "search unavailable")
	}

	res.Paging = paging.Compute(total, page, s.opts.PageSize)
	res.Records = toRecords(rows)
	res.Outcome = domain.OutcomeResults
	if len(res.Records) == 0 {
		res.Outcome = domain.OutcomeNoMatches
	}
	logger.C(ctx).Debug().
		Str("term", term).
		Int("page", page).
		Int("total", total).
		Int("rows", len(rows)).
		Dur("elapsed", elapsed).
		Msg("search done")
	s.finish(ctx, res, elapsed)
	return res, nil
}

// run issues count then page inside one transaction under the query timeout
func (s *Svc) run(ctx context.Context, plan query.Plan) (int, []repo.RowAsset, error) {
	if s.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.QueryTimeout)
		defer cancel()
	}

	var (
		total int
		rows  []repo.RowAsset
	)
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		n, err := r.Count(ctx, plan.Count)
		if err != nil {
			return err
		}
		page, err := r.Page(ctx, plan.Page)
		if err != nil {
			return err
		}
		total, rows = n, page
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return total, rows, nil
}

// finish records metrics and the search event for an executed search
func (s *Svc) finish(ctx context.Context, res domain.Result, elapsed time.Duration) {
	metrics.ObserveSearch(string(res.Outcome), elapsed)
	s.rec.Record(ctx, logdom.Event{
		At:        s.now(),
		Term:      res.Term,
		Page:      res.Paging.Current,
		Total:     res.Paging.Total,
		Elapsed:   elapsed,
		Outcome:   string(res.Outcome),
		RequestID: pnet.RequestID(ctx),
	})
}

func toRecords(rows []repo.RowAsset) []domain.AssetRecord {
	if len(rows) == 0 {
		return nil
	}
	out := make([]domain.AssetRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.AssetRecord{
			Name:        r.Name,
			Description: r.Description,
			Author:      r.Author,
			GUID:        r.GUID,
			Source:      query.SourceFromLabel(r.Source),
			Label:       r.Source,
		})
	}
	return out
}
