// Package module wires meta endpoints into the API using modkit
package module

import (
	"time"

	modkit "assetsearch/internal/modkit"
	"assetsearch/internal/modkit/httpkit"
	metahttp "assetsearch/internal/services/api/meta/http"
)

// Ports lets the caller name the service reported by the meta endpoints
type Ports struct {
	ServiceName string
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)

	name := "assetsearch-api"
	if p, ok := b.Ports.(Ports); ok && p.ServiceName != "" {
		name = p.ServiceName
	}

	d := metahttp.Deps{
		ServiceName:  name,
		StartedAt:    time.Now(),
		ReadyTimeout: deps.Cfg.Prefix("CORE_API_").MayDuration("READY_TIMEOUT", 2*time.Second),
	}
	// keep untyped nils so unwired backends report skipped
	if deps.DB != nil {
		d.DB = deps.DB
	}
	if deps.HasCH() {
		d.CH = deps.CH
	}

	m := &Module{}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { metahttp.Register(r, d) })
	return m
}

// Ports returns nil; meta exposes nothing
func (m *Module) Ports() any { return nil }
