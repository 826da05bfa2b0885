package bind

import (
	"net/http/httptest"
	"testing"

	perr "assetsearch/internal/platform/errors"
)

type searchIn struct {
	Q    string `query:"q" validate:"max=10,printable"`
	Page int    `query:"page,lenient"`
	Ajax bool   `query:"ajax"`
}

type strictIn struct {
	N int `query:"n" validate:"min=1"`
}

func TestParseQuery_Success(t *testing.T) {
	req := httptest.NewRequest("GET", "/?q=cat&page=3&ajax=1", nil)
	got, err := ParseQuery[searchIn](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Q != "cat" || got.Page != 3 || !got.Ajax {
		t.Fatalf("got %+v", got)
	}
}

func TestParseQuery_MissingValuesStayZero(t *testing.T) {
	got, err := ParseQuery[searchIn](httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (searchIn{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestParseQuery_LenientInt(t *testing.T) {
	for _, raw := range []string{"abc", "1.5", "", "9999999999999999999999"} {
		req := httptest.NewRequest("GET", "/?q=x&page="+raw, nil)
		got, err := ParseQuery[searchIn](req)
		if err != nil {
			t.Fatalf("page=%q: unexpected error %v", raw, err)
		}
		if got.Page != 0 {
			t.Fatalf("page=%q: want 0 got %d", raw, got.Page)
		}
	}

	// negatives are numbers, normalization is the caller's job
	got, _ := ParseQuery[searchIn](httptest.NewRequest("GET", "/?page=-4", nil))
	if got.Page != -4 {
		t.Fatalf("want -4 got %d", got.Page)
	}
}

func TestParseQuery_BoolPresence(t *testing.T) {
	cases := map[string]bool{
		"/?ajax":       true,
		"/?ajax=1":     true,
		"/?ajax=true":  true,
		"/?ajax=yes":   true,
		"/?ajax=0":     false,
		"/?ajax=false": false,
		"/?other=1":    false,
	}
	for target, want := range cases {
		got, err := ParseQuery[searchIn](httptest.NewRequest("GET", target, nil))
		if err != nil {
			t.Fatalf("%s: %v", target, err)
		}
		if got.Ajax != want {
			t.Fatalf("%s: ajax=%v want %v", target, got.Ajax, want)
		}
	}
}

func TestParseQuery_StrictIntRejected(t *testing.T) {
	_, err := ParseQuery[strictIn](httptest.NewRequest("GET", "/?n=oops", nil))
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "n" {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestParseQuery_ValidationMessages(t *testing.T) {
	_, err := ParseQuery[searchIn](httptest.NewRequest("GET", "/?q=abcdefghijklmnop", nil))
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	e, _ := perr.As(err)
	if e.Field() != "q" || e.Message() != "q must be at most 10" {
		t.Fatalf("field/message = %q / %q", e.Field(), e.Message())
	}

	_, err = ParseQuery[strictIn](httptest.NewRequest("GET", "/?n=0", nil))
	if e, _ := perr.As(err); e == nil || e.Message() != "n must be at least 1" {
		t.Fatalf("min message mismatch: %v", err)
	}

	_, err = ParseQuery[searchIn](httptest.NewRequest("GET", "/?q=a%00b", nil))
	if e, _ := perr.As(err); e == nil || e.Message() != "q contains control characters" {
		t.Fatalf("printable message mismatch: %v", err)
	}
}

func TestParseQuery_NonStruct(t *testing.T) {
	_, err := ParseQuery[int](httptest.NewRequest("GET", "/", nil))
	if perr.CodeOf(err) != perr.ErrorCodeUnknown || err == nil {
		t.Fatalf("expected internal error for non-struct, got %v", err)
	}
}

func TestValidationFieldAndMessage_NilAndForeign(t *testing.T) {
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil should be empty")
	}
	if _, m := ValidationFieldAndMessage(perr.Internalf("x")); m != "x" {
		t.Fatalf("foreign message = %q", m)
	}
}
