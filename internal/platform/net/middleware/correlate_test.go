package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "assetsearch/internal/platform/net"
	"assetsearch/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestCorrelate_PropagatesIDs(t *testing.T) {
	var gotID, gotIP string
	h := chimw.RequestID(middleware.Correlate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = pnet.RequestID(r.Context())
		gotIP = pnet.ClientIP(r.Context())
	})))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "198.51.100.7:51234"
	req.Header.Set("X-Request-Id", "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if gotID != "abc-123" {
		t.Fatalf("request id = %q", gotID)
	}
	if gotIP != "198.51.100.7" {
		t.Fatalf("client ip = %q", gotIP)
	}
	if rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("request id not mirrored on response")
	}
}

func TestCorrelate_BareRemoteAddr(t *testing.T) {
	var gotIP string
	h := middleware.Correlate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = pnet.ClientIP(r.Context())
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "unix-socket"
	h.ServeHTTP(httptest.NewRecorder(), req)
	if gotIP != "unix-socket" {
		t.Fatalf("client ip = %q", gotIP)
	}
}
