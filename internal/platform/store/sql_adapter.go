package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"assetsearch/internal/platform/store/mysql"
	"assetsearch/internal/platform/store/trace"
)

// sqlQueryer is the shared surface of *sql.DB and *sql.Tx
type sqlQueryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlAdapter wraps a database/sql pool (MySQL) and implements RowQuerier + TxRunner
type sqlAdapter struct {
	db     *sql.DB
	tracer trace.QueryTracer
	slowMs int
}

func newSQLAdapter(d *mysql.DB) *sqlAdapter {
	return &sqlAdapter{db: d.SQL, tracer: d.Tracer, slowMs: d.SlowMs}
}

func (a *sqlAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("mysql: nil adapter")
	}
	return a.db.PingContext(ctx)
}

func (a *sqlAdapter) Close() error { return a.db.Close() }

func (a *sqlAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return sqlExec(ctx, a.db, a.tracer, a.slowMs, q, args)
}

func (a *sqlAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return sqlQuery(ctx, a.db, a.tracer, a.slowMs, q, args)
}

func (a *sqlAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return sqlQueryRow(ctx, a.db, a.tracer, a.slowMs, q, args)
}

func (a *sqlAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlTxQuerier{tx: tx, tracer: a.tracer, slowMs: a.slowMs}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type sqlTxQuerier struct {
	tx     *sql.Tx
	tracer trace.QueryTracer
	slowMs int
}

func (t sqlTxQuerier) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return sqlExec(ctx, t.tx, t.tracer, t.slowMs, q, args)
}

func (t sqlTxQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return sqlQuery(ctx, t.tx, t.tracer, t.slowMs, q, args)
}

func (t sqlTxQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	return sqlQueryRow(ctx, t.tx, t.tracer, t.slowMs, q, args)
}

func sqlExec(ctx context.Context, db sqlQueryer, tr trace.QueryTracer, slowMs int, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := db.ExecContext(ctx, q, args...)
	emitSQL(ctx, tr, slowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	return sqlTag{n: n}, nil
}

func sqlQuery(ctx context.Context, db sqlQueryer, tr trace.QueryTracer, slowMs int, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := db.QueryContext(ctx, q, args...)
	emitSQL(ctx, tr, slowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return &sqlRows{r: rs}, nil
}

func sqlQueryRow(ctx context.Context, db sqlQueryer, tr trace.QueryTracer, slowMs int, q string, args []any) Row {
	start := time.Now()
	r := db.QueryRowContext(ctx, q, args...)
	return sqlRow{r: r, after: func(scanErr error) {
		// no rows is an answer, not a failed statement
		if errors.Is(scanErr, sql.ErrNoRows) {
			scanErr = nil
		}
		emitSQL(ctx, tr, slowMs, q, args, start, scanErr)
	}}
}

func emitSQL(ctx context.Context, tr trace.QueryTracer, slowMs int, q string, args []any, start time.Time, err error) {
	if tr == nil {
		return
	}
	us := time.Since(start).Microseconds()
	tr.OnQuery(ctx, trace.QueryEvent{
		Backend:   "mysql",
		SQL:       q,
		Args:      args,
		ElapsedUS: us,
		Err:       err,
		Slow:      trace.SlowCheck(us, slowMs),
	})
}

type sqlRow struct {
	r     *sql.Row
	after func(error)
}

func (x sqlRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type sqlRows struct {
	r    *sql.Rows
	cols []string
}

func (x *sqlRows) Next() bool            { return x.r.Next() }
func (x *sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *sqlRows) Err() error            { return x.r.Err() }
func (x *sqlRows) Close()                { _ = x.r.Close() }
func (x *sqlRows) Columns() []string {
	if x.cols == nil {
		x.cols, _ = x.r.Columns()
	}
	return x.cols
}

// sqlTag mimics a command tag for database/sql results
type sqlTag struct{ n int64 }

func (t sqlTag) String() string      { return fmt.Sprintf("ROWS %d", t.n) }
func (t sqlTag) RowsAffected() int64 { return t.n }
