package store

import (
	"assetsearch/internal/platform/logger"
	"assetsearch/internal/platform/store/trace"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// tracerFor returns the SQL tracer when LogSQL is on
func tracerFor(cfg Config, s *Store) trace.QueryTracer {
	if !cfg.DB.LogSQL {
		return nil
	}
	return trace.Tracer(s.Log)
}
