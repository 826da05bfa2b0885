package http

import (
	"bytes"
	"io"
	stdhttp "net/http"
	"sync"

	"assetsearch/internal/platform/logger"
)

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// HTML renders into a buffer first so a failing template never leaves a half written page.
// On render failure a bare 500 is written instead
func HTML(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, render func(io.Writer) error) {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := render(buf); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("html render failed")
		stdhttp.Error(w, stdhttp.StatusText(stdhttp.StatusInternalServerError), stdhttp.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
