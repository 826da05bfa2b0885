package storetest

import (
	"context"
	"sync"

	"assetsearch/internal/platform/store"
)

// Insert records one batch written to the fake clickhouse
type Insert struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// Clickhouse is an in-memory store.Clickhouse that records writes
type Clickhouse struct {
	mu        sync.Mutex
	inserts   []Insert
	execs     []string
	InsertErr error
	ExecErr   error
	PingErr   error

	// Respond scripts Query answers; nil means every query returns no rows
	Respond func(sql string, args []any) Result
}

var _ store.Clickhouse = (*Clickhouse)(nil)

// Inserts returns the recorded batches
func (c *Clickhouse) Inserts() []Insert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Insert(nil), c.inserts...)
}

// Execs returns the recorded statements
func (c *Clickhouse) Execs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.execs...)
}

// Exec records sql
func (c *Clickhouse) Exec(_ context.Context, sql string, _ ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.execs = append(c.execs, sql)
	return c.ExecErr
}

// Insert records the batch unless InsertErr is set
func (c *Clickhouse) Insert(_ context.Context, table string, columns []string, rows [][]any) error {
	if c.InsertErr != nil {
		return c.InsertErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inserts = append(c.inserts, Insert{Table: table, Columns: columns, Rows: rows})
	return nil
}

// Query answers through Respond
func (c *Clickhouse) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	if c.Respond == nil {
		return &rows{idx: -1}, nil
	}
	r := c.Respond(sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &rows{cols: r.Columns, data: r.Rows, idx: -1}, nil
}

// Ping reports PingErr
func (c *Clickhouse) Ping(context.Context) error { return c.PingErr }

// Close is a no-op
func (c *Clickhouse) Close() error { return nil }
