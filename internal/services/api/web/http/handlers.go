// Package http serves the search page, its results fragment and the static assets
package http

import (
	"io"
	stdhttp "net/http"

	"assetsearch/internal/modkit/httpkit"
	perr "assetsearch/internal/platform/errors"
	"assetsearch/internal/platform/logger"
	pnet "assetsearch/internal/platform/net"
	"assetsearch/internal/services/api/search/domain"
	"assetsearch/internal/services/api/web/render"
)

// InvalidNotice is shown when the query string fails validation
const InvalidNotice = "搜索词太长或包含无效字符，请修改后再试"

// Register mounts GET / and /static/*
// pageMw wraps only the page route, static assets stay unthrottled
func Register(r httpkit.Router, s domain.Searcher, pageMw ...func(stdhttp.Handler) stdhttp.Handler) {
	h := &handlers{svc: s}
	r.Group(func(g httpkit.Router) {
		g.Use(pageMw...)
		g.Use(MarkFragment)
		httpkit.Page(g, "/", h.page)
	})
	r.Handle("/static/*", stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.FS(render.Static()))))
}

// MarkFragment flags requests carrying ajax, whatever its value, as fragment renders
func MarkFragment(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if _, ok := r.URL.Query()["ajax"]; ok {
			r = r.WithContext(pnet.WithFragment(r.Context(), true))
		}
		next.ServeHTTP(w, r)
	})
}

type handlers struct{ svc domain.Searcher }

func (h *handlers) page(r *stdhttp.Request) (int, func(io.Writer) error) {
	status, v := h.view(r)
	if pnet.Fragment(r.Context()) {
		return status, v.Fragment
	}
	return status, v.Page
}

func (h *handlers) view(r *stdhttp.Request) (int, render.View) {
	in, err := httpkit.BindQuery[domain.SearchInput](r)
	if err != nil {
		logger.C(r.Context()).Debug().Err(err).Msg("search page rejected query")
		// the form keeps what the user typed so it can be corrected
		return perr.HTTPStatus(err), render.View{
			Term:    r.URL.Query().Get("q"),
			Outcome: domain.OutcomeAdvisory,
			Notice:  InvalidNotice,
		}
	}
	res, err := h.svc.Search(r.Context(), in.Query())
	if err != nil {
		return perr.HTTPStatus(err), render.FromResult(res, err)
	}
	return stdhttp.StatusOK, render.FromResult(res, nil)
}

// TooManyRequests is the rate limit answer for the page
func TooManyRequests(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	v := render.View{Outcome: domain.OutcomeAdvisory, Notice: render.RateLimitNotice}
	if _, ok := r.URL.Query()["ajax"]; ok {
		httpkit.HTML(w, r, stdhttp.StatusTooManyRequests, v.Fragment)
		return
	}
	httpkit.HTML(w, r, stdhttp.StatusTooManyRequests, v.Page)
}
