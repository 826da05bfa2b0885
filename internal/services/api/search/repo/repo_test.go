package repo

import (
	"context"
	"errors"
	"testing"

	"assetsearch/internal/core/query"
	"assetsearch/internal/platform/store/storetest"
)

func TestCount(t *testing.T) {
	db := storetest.Queue(storetest.Result{Rows: [][]any{{int64(45)}}})
	q := query.Query{SQL: "SELECT COUNT(*) ...", Args: []any{"%cat%"}}

	n, err := NewSQL().Bind(db).Count(context.Background(), q)
	if err != nil || n != 45 {
		t.Fatalf("Count = %d, %v", n, err)
	}
	calls := db.Calls()
	if len(calls) != 1 || calls[0].SQL != q.SQL || calls[0].Args[0] != "%cat%" {
		t.Fatalf("calls = %+v", calls)
	}
}

func TestPage_KeepsOrderAndNulls(t *testing.T) {
	db := storetest.Queue(storetest.Result{
		Columns: []string{"name", "description", "author", "guid", "source"},
		Rows: [][]any{
			{"Cat B", "bob", "bob", "avtr_1", "Avatar库2"},
			{"Cat A", nil, "alice", "avtr_1", []byte("Avatar库1")},
		},
	})

	rows, err := NewSQL().Bind(db).Page(context.Background(), query.Query{SQL: "page"})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].Name != "Cat B" || rows[1].Name != "Cat A" {
		t.Fatalf("order changed: %+v", rows)
	}
	if rows[1].Description != "" || rows[1].Source != "Avatar库1" || rows[0].GUID != rows[1].GUID {
		t.Fatalf("row 1 = %+v", rows[1])
	}
}

func TestErrorsPropagate(t *testing.T) {
	boom := errors.New("gone away")
	db := &storetest.DB{Respond: func(string, []any) storetest.Result { return storetest.Result{Err: boom} }}
	r := NewSQL().Bind(db)
	if _, err := r.Count(context.Background(), query.Query{SQL: "c"}); !errors.Is(err, boom) {
		t.Fatalf("Count err = %v", err)
	}
	if _, err := r.Page(context.Background(), query.Query{SQL: "p"}); !errors.Is(err, boom) {
		t.Fatalf("Page err = %v", err)
	}
}
