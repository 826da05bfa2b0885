package api

import (
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"assetsearch/internal/platform/config"
	phttp "assetsearch/internal/platform/net/http"
	"assetsearch/internal/platform/store"
	"assetsearch/internal/platform/store/storetest"
	kit "assetsearch/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func assetDB() *storetest.DB {
	return &storetest.DB{Respond: func(sql string, _ []any) storetest.Result {
		switch {
		case strings.HasPrefix(sql, "SET "):
			return storetest.Result{}
		case strings.HasPrefix(sql, "SELECT COUNT(*)"):
			return storetest.Result{Rows: [][]any{{int64(1)}}}
		default:
			return storetest.Result{Rows: [][]any{{"Neko Maid", "quest", "yingxue", "avtr_1", "Avatar库1"}}}
		}
	}}
}

func mountAPI(t *testing.T, swagger bool) stdhttp.Handler {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{
		Config:        config.New(),
		Store:         &store.Store{DB: assetDB(), Dialect: store.DialectMySQL},
		ServiceName:   "assetsearch-test",
		EnableSwagger: swagger,
	})
	return r.Mux()
}

func TestMount_PageAndAPI(t *testing.T) {
	t.Setenv("SEARCH_RATE_RPS", "0")
	h := mountAPI(t, false)

	rr := kit.Get(t, h, "/?q=neko")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("page status = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), "<!DOCTYPE html>")
	kit.MustContain(t, rr.Body.String(), "Neko Maid")

	rr = kit.Get(t, h, "/api/v1/assets/search?q=neko")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("api status = %d body=%s", rr.Code, rr.Body.String())
	}
	env := kit.DecodeJSON[struct {
		Data struct {
			Outcome string `json:"outcome"`
			Records []struct {
				GUID   string `json:"guid"`
				Source string `json:"source"`
			} `json:"records"`
		} `json:"data"`
	}](t, rr)
	if env.Data.Outcome != "results" || len(env.Data.Records) != 1 || env.Data.Records[0].GUID != "avtr_1" {
		t.Fatalf("api data = %+v", env.Data)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestMount_OperationalEndpoints(t *testing.T) {
	t.Setenv("SEARCH_RATE_RPS", "0")
	h := mountAPI(t, true)

	cases := []struct {
		path string
		want int
	}{
		{"/api/v1/meta/health", stdhttp.StatusOK},
		{"/api/v1/meta/ready", stdhttp.StatusOK},
		{"/api/v1/searchlog/top", stdhttp.StatusServiceUnavailable},
		{"/metrics", stdhttp.StatusOK},
		{"/ping", stdhttp.StatusOK},
		{"/api/docs/doc.json", stdhttp.StatusOK},
		{"/static/search.css", stdhttp.StatusOK},
	}
	for _, tc := range cases {
		if rr := kit.Get(t, h, tc.path); rr.Code != tc.want {
			t.Fatalf("%s status = %d, want %d", tc.path, rr.Code, tc.want)
		}
	}

	rr := kit.Get(t, h, "/api/v1/meta/service")
	kit.MustContain(t, rr.Body.String(), "assetsearch-test")
}

func TestMount_RateLimit(t *testing.T) {
	t.Setenv("SEARCH_RATE_RPS", "0.001")
	t.Setenv("SEARCH_RATE_BURST", "1")
	h := mountAPI(t, false)

	get := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(stdhttp.MethodGet, target, nil)
		req.RemoteAddr = "198.51.100.7:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	if rr := get("/api/v1/assets/search?q=neko"); rr.Code != stdhttp.StatusOK {
		t.Fatalf("first api call = %d", rr.Code)
	}
	rr := get("/api/v1/assets/search?q=neko")
	if rr.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("second api call = %d, want 429", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), RateLimitMessage)
	if rr.Header().Get("Retry-After") == "" {
		t.Fatalf("Retry-After missing")
	}

	// the page has its own bucket and answers html
	if rr := get("/?q=neko"); rr.Code != stdhttp.StatusOK {
		t.Fatalf("first page = %d", rr.Code)
	}
	rr = get("/?q=neko&ajax=1")
	if rr.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("second page = %d, want 429", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), "搜索太频繁了")

	// static assets are never throttled
	for i := 0; i < 3; i++ {
		if rr := get("/static/search.js"); rr.Code != stdhttp.StatusOK {
			t.Fatalf("static %d = %d", i, rr.Code)
		}
	}
}

func TestRateFromConfig(t *testing.T) {
	t.Setenv("SEARCH_RATE_RPS", "2.5")
	t.Setenv("SEARCH_RATE_BURST", "4")
	o := RateFromConfig(config.New())
	if o.RPS != 2.5 || o.Burst != 4 {
		t.Fatalf("rate = %+v", o)
	}
}
