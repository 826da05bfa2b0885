package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
}

func hit(h http.Handler, remote string) int {
	r := httptest.NewRequest(http.MethodGet, "/?q=cat", nil)
	r.RemoteAddr = remote
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr.Code
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	h := RateLimit(RateLimitOptions{RPS: 0})(okHandler())
	for i := 0; i < 50; i++ {
		if code := hit(h, "10.0.0.1:1"); code != http.StatusOK {
			t.Fatalf("request %d = %d", i, code)
		}
	}
}

func TestRateLimit_BurstThenDenyPerClient(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	now := func() time.Time { return clock }

	denied := 0
	h := newRateLimit(RateLimitOptions{
		RPS:   1,
		Burst: 2,
		Deny: func(w http.ResponseWriter, _ *http.Request) {
			denied++
			w.WriteHeader(http.StatusTooManyRequests)
		},
	}, now)(okHandler())

	if hit(h, "10.0.0.1:1") != 200 || hit(h, "10.0.0.1:2") != 200 {
		t.Fatalf("burst should pass")
	}
	if code := hit(h, "10.0.0.1:3"); code != http.StatusTooManyRequests || denied != 1 {
		t.Fatalf("third request = %d denied=%d", code, denied)
	}
	if hit(h, "10.0.0.2:1") != 200 {
		t.Fatalf("another client has its own bucket")
	}

	clock = clock.Add(time.Second)
	if hit(h, "10.0.0.1:4") != 200 {
		t.Fatalf("token should refill after a second")
	}
}

func TestRateLimit_DefaultDenyAndEviction(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	mw := newRateLimit(RateLimitOptions{RPS: 0.001, Burst: 1, IdleTTL: time.Minute}, func() time.Time { return clock })
	h := mw(okHandler())

	if hit(h, "10.0.0.9:1") != 200 {
		t.Fatalf("first request should pass")
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.9:2"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	if rr.Code != http.StatusTooManyRequests || rr.Header().Get("Retry-After") != "1" {
		t.Fatalf("default deny = %d retry=%q", rr.Code, rr.Header().Get("Retry-After"))
	}

	clock = clock.Add(2 * time.Minute)
	if hit(h, "10.0.0.9:3") != 200 {
		t.Fatalf("idle bucket should have been evicted and recreated")
	}
}
