package store

import (
	"context"
	"fmt"
	"time"

	chx "assetsearch/internal/platform/store/ch"
	"assetsearch/internal/platform/store/mysql"
	"assetsearch/internal/platform/store/pg"
)

// pinger is what the retry loop needs from a freshly opened pool
type pinger interface {
	Pinger
	Close() error
}

// seams so tests can exercise dispatch without a server
var (
	openMySQL = func(ctx context.Context, cfg Config, s *Store) (pinger, TxRunner, error) {
		db, err := mysql.Open(ctx, mysql.Config{
			DSN:              cfg.DB.DSN,
			MaxConns:         cfg.DB.MaxConns,
			SlowMs:           cfg.DB.SlowQueryMs,
			StatementTimeout: cfg.DB.StatementTimeout,
		}, tracerFor(cfg, s))
		if err != nil {
			return nil, nil, err
		}
		a := newSQLAdapter(db)
		return a, a, nil
	}

	openPostgres = func(ctx context.Context, cfg Config, s *Store) (pinger, TxRunner, error) {
		p, err := pg.Open(ctx, pg.Config{
			URL:              cfg.DB.DSN,
			AppName:          cfg.AppName,
			MaxConns:         int32(cfg.DB.MaxConns),
			SlowMs:           cfg.DB.SlowQueryMs,
			StatementTimeout: cfg.DB.StatementTimeout,
		}, tracerFor(cfg, s), nil)
		if err != nil {
			return nil, nil, err
		}
		a := newPGAdapter(p)
		return a, a, nil
	}

	sleep = time.Sleep
)

// openDB opens the configured driver and pings with retry/backoff before publishing it
func openDB(ctx context.Context, cfg Config, s *Store) (TxRunner, Dialect, error) {
	open := openMySQL
	dialect := DialectMySQL
	switch cfg.DB.Driver {
	case DialectMySQL, "":
	case DialectPostgres:
		open, dialect = openPostgres, DialectPostgres
	default:
		return nil, "", fmt.Errorf("store: unknown driver %q", cfg.DB.Driver)
	}

	p, runner, err := open(ctx, cfg, s)
	if err != nil {
		return nil, "", err
	}

	attempts := cfg.DB.ConnectRetries
	if attempts <= 0 {
		attempts = 6
	}
	pingTimeout := cfg.DB.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Ping(toCtx)
		cancel()

		if lastErr == nil {
			s.Log.Info().Str("driver", string(dialect)).Int("attempt", i+1).Msg("store connected")
			return runner, dialect, nil
		}
		if ctx.Err() != nil {
			_ = p.Close()
			return nil, "", ctx.Err()
		}
		s.Log.Warn().Err(lastErr).Str("driver", string(dialect)).Int("attempt", i+1).Msg("store ping failed")
		sleep(backoff)
		if backoff < backoffCeiling {
			backoff = min(backoff*2, backoffCeiling)
		}
	}

	_ = p.Close()
	return nil, "", fmt.Errorf("%s ping failed after %d attempts: %w", dialect, attempts, lastErr)
}

var openCHClient = func(ctx context.Context, cfg chx.Config) (chClient, error) {
	return chx.Open(ctx, cfg)
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := openCHClient(ctx, chx.Config{DSN: cfg.CH.DSN, Role: cfg.CH.Role, Version: cfg.CH.Version})
	if err != nil {
		return nil, fmt.Errorf("clickhouse: %w", err)
	}
	return newCHAdapter(c), nil
}
