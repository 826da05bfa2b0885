package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"assetsearch/internal/core/query"
	perr "assetsearch/internal/platform/errors"
	"assetsearch/internal/platform/store"
	"assetsearch/internal/platform/store/storetest"
	kit "assetsearch/internal/platform/testkit"
	"assetsearch/internal/services/api/search/domain"
	"assetsearch/internal/services/api/search/repo"
	logdom "assetsearch/internal/services/api/searchlog/domain"
)

type fakeRecorder struct {
	mu     sync.Mutex
	events []logdom.Event
}

func (f *fakeRecorder) Record(_ context.Context, e logdom.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

// scripted answers count with total and the page with rows
func scripted(total int64, rows [][]any, fail error) *storetest.DB {
	return &storetest.DB{Respond: func(sql string, _ []any) storetest.Result {
		switch {
		case strings.HasPrefix(sql, "SET "):
			return storetest.Result{}
		case fail != nil:
			return storetest.Result{Err: fail}
		case strings.HasPrefix(sql, "SELECT COUNT(*)"):
			return storetest.Result{Rows: [][]any{{total}}}
		default:
			return storetest.Result{Rows: rows}
		}
	}}
}

func selects(db *storetest.DB) []storetest.Call {
	var out []storetest.Call
	for _, c := range db.Calls() {
		if strings.HasPrefix(c.SQL, "SELECT") {
			out = append(out, c)
		}
	}
	return out
}

func newSvc(db *storetest.DB, d store.Dialect, rec logdom.Recorder) *Svc {
	return New(db, repo.NewSQL(), d, Options{PageSize: 20, MinTerm: 2, QueryTimeout: time.Minute}, rec)
}

func TestNew_Guards(t *testing.T) {
	kit.MustPanic(t, func() { _ = New(nil, repo.NewSQL(), store.DialectMySQL, Options{}, nil) })
	kit.MustPanic(t, func() { _ = New(&storetest.DB{}, nil, store.DialectMySQL, Options{}, nil) })

	s := New(&storetest.DB{}, repo.NewSQL(), "", Options{}, nil)
	if s.opts.PageSize != query.DefaultPageSize || s.opts.MinTerm != 2 || s.dialect != query.MySQL {
		t.Fatalf("defaults = %+v %s", s.opts, s.dialect)
	}
}

func TestSearch_EmptyAndShortTermsSkipTheStore(t *testing.T) {
	cases := []struct {
		name    string
		term    string
		outcome domain.Outcome
	}{
		{"empty", "", domain.OutcomeEmpty},
		{"blank", " \u3000 ", domain.OutcomeEmpty},
		{"one ascii", "a", domain.OutcomeAdvisory},
		{"one cjk", "猫", domain.OutcomeAdvisory},
		{"one fullwidth", " \uff43 ", domain.OutcomeAdvisory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := scripted(1, nil, nil)
			rec := &fakeRecorder{}
			res, err := newSvc(db, store.DialectMySQL, rec).Search(context.Background(), domain.SearchQuery{Term: tc.term, Page: 3})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if res.Outcome != tc.outcome {
				t.Fatalf("outcome = %s, want %s", res.Outcome, tc.outcome)
			}
			if len(db.Calls()) != 0 {
				t.Fatalf("store was called: %+v", db.Calls())
			}
			if len(rec.events) != 0 {
				t.Fatalf("nothing executed, nothing recorded")
			}
			if res.Records != nil || res.TotalPages() != 0 {
				t.Fatalf("result = %+v", res)
			}
			if tc.outcome == domain.OutcomeAdvisory {
				kit.MustContain(t, res.Advisory, "至少输入 2 个字符")
			} else if res.Advisory != "" {
				t.Fatalf("empty search has no advisory")
			}
		})
	}
}

func TestSearch_CountAndPageShareThePredicate(t *testing.T) {
	rows := make([][]any, 20)
	for i := range rows {
		rows[i] = []any{"cat", "d", "a", "avtr_x", "Avatar库1"}
	}
	db := scripted(45, rows, nil)
	rec := &fakeRecorder{}

	res, err := newSvc(db, store.DialectMySQL, rec).Search(context.Background(), domain.SearchQuery{Term: "  cat ", Page: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Term != "cat" || res.Outcome != domain.OutcomeResults {
		t.Fatalf("term/outcome = %q %s", res.Term, res.Outcome)
	}
	if res.TotalCount() != 45 || res.TotalPages() != 3 || res.CurrentPage() != 2 {
		t.Fatalf("paging = %+v", res.Paging)
	}
	if got := res.Paging.Window.Pages(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("window = %v", got)
	}

	calls := db.Calls()
	if len(calls) != 3 || calls[0].SQL != "SET SESSION max_execution_time = 60000" {
		t.Fatalf("calls = %+v", calls)
	}
	sel := selects(db)
	count, page := sel[0], sel[1]
	if len(count.Args) != 4 {
		t.Fatalf("count args = %v", count.Args)
	}
	for i, a := range count.Args {
		if a != "%cat%" || page.Args[i] != a {
			t.Fatalf("predicate args differ at %d: %v vs %v", i, count.Args, page.Args)
		}
	}
	if page.Args[4] != 20 || page.Args[5] != 20 {
		t.Fatalf("limit/offset = %v %v", page.Args[4], page.Args[5])
	}

	if len(rec.events) != 1 || rec.events[0].Total != 45 || rec.events[0].Outcome != "results" || rec.events[0].Page != 2 {
		t.Fatalf("events = %+v", rec.events)
	}
}

func TestSearch_NonPositivePageIsFirstPage(t *testing.T) {
	for _, p := range []int{0, -4} {
		db := scripted(3, [][]any{{"cat", "", "", "g", "Avatar库1"}}, nil)
		res, err := newSvc(db, store.DialectMySQL, nil).Search(context.Background(), domain.SearchQuery{Term: "cat", Page: p})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		page := selects(db)[1]
		if res.CurrentPage() != 1 || page.Args[5] != 0 {
			t.Fatalf("page %d: current=%d offset=%v", p, res.CurrentPage(), page.Args[5])
		}
	}
}

func TestSearch_HugePageIsPastTheEnd(t *testing.T) {
	for _, p := range []int{math.MaxInt, 1 << 62, 5e17} {
		db := scripted(45, nil, nil)
		res, err := newSvc(db, store.DialectMySQL, nil).Search(context.Background(), domain.SearchQuery{Term: "cat", Page: p})
		if err != nil {
			t.Fatalf("page %d: %v", p, err)
		}
		page := selects(db)[1]
		if off, _ := page.Args[5].(int); off < 0 {
			t.Fatalf("page %d: offset %v", p, page.Args[5])
		}
		if res.Outcome != domain.OutcomeNoMatches || res.TotalPages() != 3 || res.Paging.HasNext {
			t.Fatalf("page %d: result = %+v", p, res)
		}
		if res.Paging.Window.Last < 0 {
			t.Fatalf("page %d: window = %+v", p, res.Paging.Window)
		}
	}
}

func TestSearch_DuplicateGUIDKeepsBothRows(t *testing.T) {
	db := scripted(2, [][]any{
		{"Neko", "desc", "yx", "avtr_same", "Avatar库1"},
		{"Neko", "yx", "yx", "avtr_same", "Avatar库2"},
	}, nil)

	res, err := newSvc(db, store.DialectMySQL, nil).Search(context.Background(), domain.SearchQuery{Term: "neko"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %+v", res.Records)
	}
	a, b := res.Records[0], res.Records[1]
	if a.GUID != b.GUID || a.Source != query.SourceA || b.Source != query.SourceB || b.Label != "Avatar库2" {
		t.Fatalf("records = %+v", res.Records)
	}
	if res.Paging.Visible() {
		t.Fatalf("a single page draws no pagination")
	}
}

func TestSearch_NoMatches(t *testing.T) {
	db := scripted(0, nil, nil)
	rec := &fakeRecorder{}
	res, err := newSvc(db, store.DialectMySQL, rec).Search(context.Background(), domain.SearchQuery{Term: "zzz_no_match"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Outcome != domain.OutcomeNoMatches || res.TotalPages() != 0 || res.Records != nil {
		t.Fatalf("result = %+v", res)
	}
	if len(selects(db)) != 2 {
		t.Fatalf("both statements must run")
	}
	// the escaped underscore keeps the term a literal substring
	if arg := selects(db)[0].Args[0]; arg != `%zzz\_no\_match%` {
		t.Fatalf("pattern = %v", arg)
	}
	if len(rec.events) != 1 || rec.events[0].Outcome != "no_matches" {
		t.Fatalf("events = %+v", rec.events)
	}
}

func TestSearch_StoreFailureIsUnavailable(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	db := scripted(0, nil, boom)
	rec := &fakeRecorder{}

	res, err := newSvc(db, store.DialectMySQL, rec).Search(context.Background(), domain.SearchQuery{Term: "cat"})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if res.Outcome != domain.OutcomeUnavailable || res.Records != nil || res.Term != "cat" {
		t.Fatalf("result = %+v", res)
	}
	if len(rec.events) != 1 || rec.events[0].Outcome != "unavailable" {
		t.Fatalf("events = %+v", rec.events)
	}
}

func TestSearch_PageFailureDropsTheCount(t *testing.T) {
	boom := errors.New("lost connection")
	db := &storetest.DB{Respond: func(sql string, _ []any) storetest.Result {
		if strings.HasPrefix(sql, "SELECT COUNT(*)") {
			return storetest.Result{Rows: [][]any{{int64(9)}}}
		}
		if strings.HasPrefix(sql, "SELECT") {
			return storetest.Result{Err: boom}
		}
		return storetest.Result{}
	}}
	res, err := newSvc(db, store.DialectMySQL, nil).Search(context.Background(), domain.SearchQuery{Term: "cat"})
	if err == nil || res.TotalCount() != 0 || res.Records != nil {
		t.Fatalf("partial result leaked: %+v %v", res, err)
	}
}

func TestSearch_PostgresDialect(t *testing.T) {
	db := scripted(1, [][]any{{"Cat", "", "", "g", "Avatar库1"}}, nil)
	if _, err := newSvc(db, store.DialectPostgres, nil).Search(context.Background(), domain.SearchQuery{Term: "Cat"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	calls := db.Calls()
	if calls[0].SQL != "SET LOCAL statement_timeout = 60000" {
		t.Fatalf("hook = %q", calls[0].SQL)
	}
	kit.MustContain(t, calls[1].SQL, "ILIKE $1")
	kit.MustContain(t, calls[2].SQL, "LIMIT $5 OFFSET $6")
}

func TestSearch_NoTimeoutNoHook(t *testing.T) {
	db := scripted(0, nil, nil)
	s := New(db, repo.NewSQL(), store.DialectMySQL, Options{}, nil)
	if _, err := s.Search(context.Background(), domain.SearchQuery{Term: "cat"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if calls := db.Calls(); len(calls) != 2 || !strings.HasPrefix(calls[0].SQL, "SELECT COUNT") {
		t.Fatalf("calls = %+v", calls)
	}
}
