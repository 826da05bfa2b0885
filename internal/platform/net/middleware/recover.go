package middleware

import (
	stdjson "encoding/json"
	"fmt"
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "assetsearch/internal/platform/errors"
	"assetsearch/internal/platform/logger"
	pnet "assetsearch/internal/platform/net"
)

// Recover converts panics into a 500 and logs the stack with the request id.
// Paths under apiPrefix get the JSON envelope; everything else gets a plain page
func Recover(apiPrefix string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				// http.ErrAbortHandler is a deliberate abort, not a bug
				if v == stdhttp.ErrAbortHandler {
					panic(v)
				}

				reqID := pnet.RequestID(r.Context())
				stack := strings.Join(strings.Split(string(debug.Stack()), "\n"), "\n\t")
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Str("path", r.URL.Path).
					Msgf("panic recovered\n%s", stack)

				if reqID != "" {
					w.Header().Set("X-Request-ID", reqID)
				}

				if apiPrefix != "" && strings.HasPrefix(r.URL.Path, apiPrefix) {
					status, env := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
					w.Header().Set("Content-Type", "application/json; charset=utf-8")
					w.WriteHeader(status)
					_ = stdjson.NewEncoder(w).Encode(env)
					return
				}

				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(stdhttp.StatusInternalServerError)
				_, _ = fmt.Fprintf(w, "%s\nrequest id: %s\n", stdhttp.StatusText(stdhttp.StatusInternalServerError), reqID)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
