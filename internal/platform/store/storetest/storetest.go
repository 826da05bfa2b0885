// Package storetest provides scripted in-memory store seams for repo and service tests
package storetest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"assetsearch/internal/platform/store"
)

// Call records one statement the code under test issued
type Call struct {
	SQL  string
	Args []any
}

// Result is the scripted answer to one statement
type Result struct {
	Columns []string
	Rows    [][]any
	Err     error
}

// DB is a scripted store.TxRunner. Respond picks the answer per statement;
// with Respond nil every statement returns an empty result
type DB struct {
	mu      sync.Mutex
	calls   []Call
	Respond func(sql string, args []any) Result
	PingErr error
}

var (
	_ store.TxRunner = (*DB)(nil)
	_ store.Pinger   = (*DB)(nil)
)

// Queue returns a DB answering statements with results in order; extra statements get an error
func Queue(results ...Result) *DB {
	var mu sync.Mutex
	i := 0
	return &DB{Respond: func(sql string, _ []any) Result {
		mu.Lock()
		defer mu.Unlock()
		if i >= len(results) {
			return Result{Err: fmt.Errorf("storetest: unexpected statement %q", sql)}
		}
		r := results[i]
		i++
		return r
	}}
}

// Calls returns a copy of the recorded statements
func (d *DB) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Call, len(d.calls))
	copy(out, d.calls)
	return out
}

func (d *DB) answer(sql string, args []any) Result {
	d.mu.Lock()
	d.calls = append(d.calls, Call{SQL: sql, Args: append([]any(nil), args...)})
	d.mu.Unlock()
	if d.Respond == nil {
		return Result{}
	}
	return d.Respond(sql, args)
}

// Exec records the statement and reports the scripted row count
func (d *DB) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	r := d.answer(sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return tag(len(r.Rows)), nil
}

// Query records the statement and returns the scripted rows
func (d *DB) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := d.answer(sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &rows{cols: r.Columns, data: r.Rows, idx: -1}, nil
}

// QueryRow records the statement and scans the first scripted row
func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	if err := ctx.Err(); err != nil {
		return row{err: err}
	}
	r := d.answer(sql, args)
	if r.Err != nil {
		return row{err: r.Err}
	}
	if len(r.Rows) == 0 {
		return row{err: ErrNoRows}
	}
	return row{vals: r.Rows[0]}
}

// Tx runs fn against the same fake
func (d *DB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(d) }

// Ping reports PingErr
func (d *DB) Ping(context.Context) error { return d.PingErr }

// ErrNoRows is returned by QueryRow when the script has no rows
var ErrNoRows = errors.New("storetest: no rows")

type tag int64

func (t tag) String() string      { return fmt.Sprintf("ROWS %d", int64(t)) }
func (t tag) RowsAffected() int64 { return int64(t) }

type row struct {
	vals []any
	err  error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assignAll(r.vals, dest)
}

type rows struct {
	cols []string
	data [][]any
	idx  int
}

func (r *rows) Next() bool { r.idx++; return r.idx < len(r.data) }
func (r *rows) Err() error { return nil }
func (r *rows) Close()     {}
func (r *rows) Columns() []string {
	return r.cols
}

func (r *rows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("storetest: scan out of range")
	}
	return assignAll(r.data[r.idx], dest)
}

func assignAll(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("storetest: %d values for %d destinations", len(vals), len(dest))
	}
	for i := range dest {
		if err := assign(dest[i], vals[i]); err != nil {
			return fmt.Errorf("storetest: column %d: %w", i, err)
		}
	}
	return nil
}

func assign(dst, src any) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return errors.New("destination is not a pointer")
	}
	if sc, ok := dst.(sql.Scanner); ok {
		return sc.Scan(src)
	}
	dv = dv.Elem()
	if src == nil {
		dv.Set(reflect.Zero(dv.Type()))
		return nil
	}
	sv := reflect.ValueOf(src)
	switch {
	case sv.Type().AssignableTo(dv.Type()):
		dv.Set(sv)
	case numeric(sv.Kind()) && numeric(dv.Kind()):
		dv.Set(sv.Convert(dv.Type()))
	case sv.Kind() == reflect.String && dv.Kind() == reflect.String:
		dv.SetString(sv.String())
	case sv.Kind() == reflect.Slice && sv.Type().Elem().Kind() == reflect.Uint8 && dv.Kind() == reflect.String:
		dv.SetString(string(sv.Bytes()))
	default:
		return fmt.Errorf("cannot assign %T to %s", src, dv.Type())
	}
	return nil
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
