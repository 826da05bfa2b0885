package middleware

import (
	"net/http"
	"sync"
	"time"

	pnet "assetsearch/internal/platform/net"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures the per client token bucket
type RateLimitOptions struct {
	// RPS is the sustained rate per client, <= 0 disables limiting
	RPS float64
	// Burst is the bucket size, at least 1
	Burst int
	// Deny writes the over limit response; nil means a bare 429
	Deny http.HandlerFunc
	// IdleTTL evicts buckets of clients not seen for this long, default 10m
	IdleTTL time.Duration
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// limiterSet keeps one bucket per client key
type limiterSet struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rps     rate.Limit
	burst   int
	ttl     time.Duration
	lastGC  time.Time
	now     func() time.Time
}

func (s *limiterSet) allow(key string) bool {
	now := s.now()
	s.mu.Lock()
	if now.Sub(s.lastGC) >= s.ttl {
		for k, b := range s.buckets {
			if now.Sub(b.seen) >= s.ttl {
				delete(s.buckets, k)
			}
		}
		s.lastGC = now
	}
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(s.rps, s.burst)}
		s.buckets[key] = b
	}
	b.seen = now
	s.mu.Unlock()
	return b.lim.AllowN(now, 1)
}

// RateLimit limits requests per client ip with a token bucket from x/time/rate
// mount after Correlate so the client ip is in the context
func RateLimit(o RateLimitOptions) func(http.Handler) http.Handler {
	if o.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return newRateLimit(o, time.Now)
}

func newRateLimit(o RateLimitOptions, now func() time.Time) func(http.Handler) http.Handler {
	if o.Burst < 1 {
		o.Burst = 1
	}
	if o.IdleTTL <= 0 {
		o.IdleTTL = 10 * time.Minute
	}
	deny := o.Deny
	if deny == nil {
		deny = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}
	set := &limiterSet{
		buckets: map[string]*bucket{},
		rps:     rate.Limit(o.RPS),
		burst:   o.Burst,
		ttl:     o.IdleTTL,
		lastGC:  now(),
		now:     now,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := pnet.ClientIP(r.Context())
			if key == "" {
				key = clientIP(r.RemoteAddr)
			}
			if !set.allow(key) {
				w.Header().Set("Retry-After", "1")
				deny(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
