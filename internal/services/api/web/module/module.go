// Package module wires the html search page using modkit
package module

import (
	"net/http"

	modkit "assetsearch/internal/modkit"
	"assetsearch/internal/modkit/httpkit"
	"assetsearch/internal/services/api/search/domain"
	webhttp "assetsearch/internal/services/api/web/http"
)

// Ports declares the injected search port the page renders
// PageMiddlewares wrap the page route only, typically the rate limiter
type Ports struct {
	Searcher        domain.Searcher
	PageMiddlewares []func(http.Handler) http.Handler
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	searcher domain.Searcher
}

// New constructs the page module; it mounts at the site root unless a prefix is given
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("web"), modkit.WithPrefix("/")}, opts...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Searcher == nil {
		panic("web module requires Ports{Searcher} via modkit.WithPorts")
	}

	m := &Module{searcher: p.Searcher}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { webhttp.Register(r, m.searcher, p.PageMiddlewares...) })
	return m
}

// Ports returns nil; the page exposes nothing
func (m *Module) Ports() any { return nil }
