// Package api assembles the HTTP surface: the search page, the JSON API, metrics and docs
package api

import (
	"net/http"

	"assetsearch/internal/modkit"
	"assetsearch/internal/modkit/httpkit"
	"assetsearch/internal/modkit/module"
	"assetsearch/internal/modkit/swaggerkit"
	"assetsearch/internal/platform/config"
	perr "assetsearch/internal/platform/errors"
	"assetsearch/internal/platform/logger"
	"assetsearch/internal/platform/metrics"
	phttp "assetsearch/internal/platform/net/http"
	"assetsearch/internal/platform/net/middleware"
	"assetsearch/internal/platform/store"

	metamod "assetsearch/internal/services/api/meta/module"
	searchmod "assetsearch/internal/services/api/search/module"
	logmod "assetsearch/internal/services/api/searchlog/module"
	webhttp "assetsearch/internal/services/api/web/http"
	webmod "assetsearch/internal/services/api/web/module"
)

// Options are the API options
type Options struct {
	// Config is the root view; CORE_API_*, SEARCH_* and SEARCHLOG_* are read beneath it
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	ServiceName    string
	EnableSwagger  bool
	EnableProfiler bool
}

// RateLimitMessage is the JSON error text for a throttled search
const RateLimitMessage = "too many searches, try again shortly"

// Mount mounts the page, the versioned API and the operational endpoints onto r
// it must run before any other route is added to r
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}
	apiCfg := opt.Config.Prefix("CORE_API_")
	deps := modkit.DepsFrom(opt.Config, *log, opt.Store)

	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		Timeout:     apiCfg.MayDuration("TIMEOUT", 0),
		SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 0),
		CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		Metrics:     true,
	})...)

	rate := RateFromConfig(opt.Config)

	// searchlog first, search records into it
	searchlog := logmod.New(deps)
	rec := module.MustPortsOf[logmod.Ports](searchlog).Recorder

	apiRate := rate
	apiRate.Deny = func(w http.ResponseWriter, req *http.Request) {
		phttp.RespondError(w, req, perr.RateLimitedf(RateLimitMessage))
	}
	search := searchmod.New(deps,
		modkit.WithPorts(searchmod.Ports{Recorder: rec}),
		modkit.WithMiddlewares(middleware.RateLimit(apiRate)),
	)
	searcher := module.MustPortsOf[searchmod.Exposed](search).Searcher

	pageRate := rate
	pageRate.Deny = webhttp.TooManyRequests
	web := webmod.New(deps, modkit.WithPorts(webmod.Ports{
		Searcher:        searcher,
		PageMiddlewares: []func(http.Handler) http.Handler{middleware.RateLimit(pageRate)},
	}))

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{ServiceName: opt.ServiceName}))

	web.MountRoutes(r)
	module.Register(web.Name(), web.Ports())

	if apiCfg.MayBool("METRICS", true) {
		r.Handle("/metrics", metrics.Handler())
	}

	mods := []module.Module{meta, searchlog, search}
	httpkit.MountAPIV1(r, httpkit.APIStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register ports under the module name for lookups at bootstrap
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	log.Info().
		Float64("rate_rps", rate.RPS).
		Int("rate_burst", rate.Burst).
		Bool("searchlog", deps.HasCH()).
		Str("dialect", string(deps.Dialect)).
		Msg("api mounted")
}

// RateFromConfig reads SEARCH_RATE_RPS and SEARCH_RATE_BURST; an RPS of 0 disables limiting
func RateFromConfig(cfg config.Conf) middleware.RateLimitOptions {
	rc := cfg.Prefix("SEARCH_RATE_")
	return middleware.RateLimitOptions{
		RPS:     rc.MayFloat("RPS", 5),
		Burst:   rc.MayIntRange("BURST", 10, 1, 10000),
		IdleTTL: rc.MayDuration("IDLE_TTL", 0),
	}
}
