package middleware

import (
	"net"
	"net/http"

	"assetsearch/internal/platform/logger"
	pnet "assetsearch/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Correlate copies the request id and client address into the context so
// logger.C and pnet helpers see them. Mount after RequestID and RealIP
func Correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := chimw.GetReqID(r.Context())
		ip := clientIP(r.RemoteAddr)

		ctx := pnet.WithRequest(r.Context(), reqID, ip)
		ctx = logger.WithRequest(ctx, reqID, ip)
		if reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(remote string) string {
	if host, _, err := net.SplitHostPort(remote); err == nil {
		return host
	}
	return remote
}
