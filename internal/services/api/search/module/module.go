// Package module wires asset search into the API using modkit
package module

import (
	"time"

	modkit "assetsearch/internal/modkit"
	"assetsearch/internal/modkit/httpkit"
	"assetsearch/internal/platform/config"
	"assetsearch/internal/services/api/search/domain"
	searchhttp "assetsearch/internal/services/api/search/http"
	searchrepo "assetsearch/internal/services/api/search/repo"
	searchsvc "assetsearch/internal/services/api/search/service"
	logdom "assetsearch/internal/services/api/searchlog/domain"
)

// Ports declares what search needs injected; all optional
type Ports struct {
	Recorder logdom.Recorder
}

// Exposed is what search offers other modules
type Exposed struct {
	Searcher domain.Searcher
	Options  searchsvc.Options
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc     searchsvc.Service
	exposed Exposed
}

// FromConfig reads SEARCH_* and the store query timeout
func FromConfig(cfg config.Conf) searchsvc.Options {
	sc := cfg.Prefix("SEARCH_")
	return searchsvc.Options{
		PageSize:     sc.MayIntRange("PAGE_SIZE", 20, 1, 100),
		MinTerm:      sc.MayIntRange("MIN_TERM", 2, 1, 32),
		QueryTimeout: cfg.Prefix("SERVICE_DB_").MayDuration("QUERY_TIMEOUT", 60*time.Second),
	}
}

// New constructs the search module; it mounts GET {prefix}/search
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("search"), modkit.WithPrefix("/assets")}, opts...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	o := FromConfig(deps.Cfg)
	svc := searchsvc.New(deps.DB, searchrepo.NewSQL(), deps.Dialect, o, injected.Recorder)

	m := &Module{svc: svc, exposed: Exposed{Searcher: svc, Options: o}}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { searchhttp.Register(r, m.svc) })
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.exposed }
