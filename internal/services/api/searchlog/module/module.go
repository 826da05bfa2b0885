// Package module wires the search event log into the API using modkit
package module

import (
	"time"

	modkit "assetsearch/internal/modkit"
	"assetsearch/internal/modkit/httpkit"
	"assetsearch/internal/services/api/searchlog/domain"
	loghttp "assetsearch/internal/services/api/searchlog/http"
	logrepo "assetsearch/internal/services/api/searchlog/repo"
	logsvc "assetsearch/internal/services/api/searchlog/service"
)

// Ports is what searchlog exposes to other modules
type Ports struct {
	Recorder domain.Recorder
	Log      domain.ServicePort
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc   logsvc.Service
	ports Ports
}

// New constructs the searchlog module; without clickhouse it records nothing
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("searchlog"), modkit.WithPrefix("/searchlog")}, opts...)

	var rp logrepo.Repo
	if deps.HasCH() {
		rp = logrepo.NewCH(deps.CH)
	}
	lc := deps.Cfg.Prefix("SEARCHLOG_")
	svc := logsvc.New(rp, logsvc.Options{
		WriteTimeout: lc.MayDuration("WRITE_TIMEOUT", 2*time.Second),
		DefaultHours: lc.MayIntRange("TOP_HOURS", 24, 1, 720),
		DefaultLimit: lc.MayIntRange("TOP_LIMIT", 10, 1, 100),
	})

	m := &Module{svc: svc, ports: Ports{Recorder: svc, Log: svc}}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { loghttp.Register(r, m.svc) })
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
