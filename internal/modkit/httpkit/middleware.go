package httpkit

import (
	"net/http"
	"time"

	"assetsearch/internal/platform/net/middleware"
)

// StackOptions tunes the process wide middleware chain
type StackOptions struct {
	Timeout     time.Duration
	SlowRequest time.Duration
	CORSOrigins []string
	Metrics     bool
}

// CommonStack returns the root middleware chain in mount order
// correlation and recovery come first so the access log sees request ids and 500s
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 75 * time.Second
	}
	out := middleware.Defaults(o.Timeout)
	out = append(out,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest, Metrics: o.Metrics}),
		middleware.Heartbeat("/ping"),
		middleware.StripSlashes(),
	)
	if len(o.CORSOrigins) > 0 {
		out = append(out, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return out
}

// APIStack is layered on top of CommonStack for JSON routes
func APIStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{middleware.NoCache()}
}
