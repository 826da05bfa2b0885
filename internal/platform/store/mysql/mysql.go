// Package mysql provides a MySQL client on database/sql with the go-sql-driver connector
package mysql

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"assetsearch/internal/platform/store/trace"

	driver "github.com/go-sql-driver/mysql"
)

// Config configures the MySQL connection pool
type Config struct {
	DSN      string
	MaxConns int
	SlowMs   int

	// StatementTimeout becomes the session max_execution_time, 0 leaves the server default
	StatementTimeout time.Duration
}

// DB is a MySQL pool with an optional tracer
type DB struct {
	SQL    *sql.DB
	Tracer trace.QueryTracer
	SlowMs int
}

// ParseConfig turns Config into a driver config without connecting
func ParseConfig(cfg Config) (*driver.Config, error) {
	dc, err := driver.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.StatementTimeout > 0 {
		if dc.Params == nil {
			dc.Params = map[string]string{}
		}
		// unknown params are sent as session variables on connect
		dc.Params["max_execution_time"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}
	dc.ParseTime = true
	if dc.Timeout == 0 {
		dc.Timeout = 5 * time.Second
	}
	return dc, nil
}

var openDB = func(dc *driver.Config) (*sql.DB, error) {
	conn, err := driver.NewConnector(dc)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(conn), nil
}

// Open builds the pool; it does not ping, callers decide the retry policy
func Open(_ context.Context, cfg Config, tracer trace.QueryTracer) (*DB, error) {
	dc, err := ParseConfig(cfg)
	if err != nil {
		return nil, err
	}
	db, err := openDB(dc)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxConns)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)

	return &DB{SQL: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the pool
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}
