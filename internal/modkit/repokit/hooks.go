package repokit

import (
	"context"
	"fmt"
	"time"

	"assetsearch/internal/platform/store"
)

// BeginHook runs at the start of a transaction with the tx bound Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks wraps a TxRunner and runs hooks before fn inside the same tx
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{inner: inner, hooks: hooks}
}

type hookedTx struct {
	inner TxRunner
	hooks []BeginHook
}

// Tx starts a tx on inner then runs all hooks before fn
func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.inner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

func (h hookedTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return h.inner.Exec(ctx, sql, args...)
}

func (h hookedTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return h.inner.Query(ctx, sql, args...)
}

func (h hookedTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return h.inner.QueryRow(ctx, sql, args...)
}

// StatementTimeout returns a hook that extends the per statement execution budget for the tx
// mysql scopes it to the session, postgres to the transaction; d <= 0 yields nil
func StatementTimeout(dialect store.Dialect, d time.Duration) BeginHook {
	ms := d.Milliseconds()
	if ms <= 0 {
		return nil
	}
	var sql string
	switch dialect {
	case store.DialectPostgres:
		sql = fmt.Sprintf("SET LOCAL statement_timeout = %d", ms)
	default:
		sql = fmt.Sprintf("SET SESSION max_execution_time = %d", ms)
	}
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, sql)
		return err
	}
}

// Hooks drops nil entries so optional hooks can be listed inline
func Hooks(in ...BeginHook) []BeginHook {
	out := in[:0:0]
	for _, h := range in {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
