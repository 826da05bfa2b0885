package httpkit

import (
	"io"
	"net/http"

	phttp "assetsearch/internal/platform/net/http"
	"assetsearch/internal/platform/net/http/bind"
)

// Get registers a no-input handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// GetQuery registers a handler whose input T is bound and validated from the query string
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetQuery(r, path, h)
}

// BindQuery decodes and validates the query string into T for handlers that do not answer JSON
func BindQuery[T any](r *http.Request) (T, error) { return bind.ParseQuery[T](r) }

// Page renders an html page for GET and HEAD on path
// render returns the status together with the writer func so handlers can pick 503 on failure
func Page(r Router, path string, render func(*http.Request) (int, func(io.Writer) error)) {
	h := func(w http.ResponseWriter, req *http.Request) {
		status, fn := render(req)
		phttp.HTML(w, req, status, fn)
	}
	r.Get(path, h)
	r.Head(path, h)
}
