// Package modkit provides module wiring and core deps
package modkit

import (
	"assetsearch/internal/modkit/repokit"
	"assetsearch/internal/platform/config"
	"assetsearch/internal/platform/logger"
	"assetsearch/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	DB      repokit.TxRunner
	Dialect store.Dialect
	CH      store.Clickhouse
}

// DepsFrom lifts an opened store into module deps
// a nil store yields deps with no backends, which modules must tolerate
func DepsFrom(cfg config.Conf, log logger.Logger, s *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg, Dialect: store.DialectMySQL}
	if s == nil {
		return d
	}
	d.DB, d.CH = s.DB, s.CH
	if s.Dialect != "" {
		d.Dialect = s.Dialect
	}
	return d
}

// HasCH reports whether the clickhouse seam is wired
func (d Deps) HasCH() bool { return d.CH != nil }
