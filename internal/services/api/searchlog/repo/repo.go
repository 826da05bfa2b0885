// Package repo provides clickhouse access for the search event log
package repo

import (
	"context"
	"time"

	"assetsearch/internal/platform/store"
	"assetsearch/internal/services/api/searchlog/domain"
)

// Table is the clickhouse table holding search events
const Table = "search_events"

// Columns is the insert column order
var Columns = []string{"id", "at", "term", "page", "total", "elapsed_ms", "outcome", "request_id"}

const ddl = `
CREATE TABLE IF NOT EXISTS search_events (
	id UUID,
	at DateTime64(3, 'UTC'),
	term String,
	page UInt32,
	total UInt64,
	elapsed_ms UInt32,
	outcome LowCardinality(String),
	request_id String
) ENGINE = MergeTree
PARTITION BY toYYYYMM(at)
ORDER BY (at, term)
TTL toDateTime(at) + INTERVAL 180 DAY
`

const topSQL = `
SELECT term, count() AS searches, max(at) AS last_seen
FROM search_events
WHERE at >= ? AND outcome IN ('results', 'no_matches')
GROUP BY term
ORDER BY searches DESC, term ASC
LIMIT ?
`

// Repo defines the event log storage contract
type Repo interface {
	EnsureTable(ctx context.Context) error
	Insert(ctx context.Context, events []domain.Event) error
	Top(ctx context.Context, since time.Time, limit int) ([]domain.TopTerm, error)
}

// CH implements Repo over the store clickhouse seam
type CH struct{ ch store.Clickhouse }

// NewCH binds the repo to a clickhouse seam
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("searchlog.repo requires a non nil clickhouse")
	}
	return &CH{ch: ch}
}

// EnsureTable creates the events table when missing
func (r *CH) EnsureTable(ctx context.Context) error {
	return r.ch.Exec(ctx, ddl)
}

// Insert writes events as one batch
func (r *CH) Insert(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		rows = append(rows, []any{
			e.ID,
			e.At.UTC(),
			e.Term,
			clampU32(int64(e.Page)),
			uint64(max(e.Total, 0)),
			clampU32(e.Elapsed.Milliseconds()),
			e.Outcome,
			e.RequestID,
		})
	}
	return r.ch.Insert(ctx, Table, Columns, rows)
}

// Top aggregates terms searched since the given instant
func (r *CH) Top(ctx context.Context, since time.Time, limit int) ([]domain.TopTerm, error) {
	rows, err := r.ch.Query(ctx, topSQL, since.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TopTerm, 0, limit)
	for rows.Next() {
		var t domain.TopTerm
		if err := rows.Scan(&t.Term, &t.Searches, &t.LastSeen); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func clampU32(v int64) uint32 {
	switch {
	case v < 0:
		return 0
	case v > int64(^uint32(0)):
		return ^uint32(0)
	}
	return uint32(v)
}
