package net_test

import (
	stderrs "errors"
	"net/http"
	"testing"

	perr "assetsearch/internal/platform/errors"
	pnet "assetsearch/internal/platform/net"
)

func TestOK(t *testing.T) {
	status, w := pnet.OK(map[string]any{"x": 1}, "req-1")

	if status != http.StatusOK {
		t.Fatalf("status %d want %d", status, http.StatusOK)
	}
	if w.StatusCode != http.StatusOK || w.Status != http.StatusText(http.StatusOK) {
		t.Fatalf("wire status mismatch: %+v", w)
	}
	if w.RequestID != "req-1" {
		t.Fatalf("req id %q", w.RequestID)
	}
	if got, ok := w.Data.(map[string]any)["x"]; !ok || got != 1 {
		t.Fatalf("data mismatch: %+v", w.Data)
	}
}

func TestError_ProjectError(t *testing.T) {
	cause := stderrs.New("dial tcp 10.0.0.1:3306: connection refused")
	err := perr.Wrap(cause, perr.ErrorCodeUnavailable, "search unavailable")

	status, w := pnet.Error(err, "req-3")
	if status != http.StatusServiceUnavailable || w.StatusCode != status {
		t.Fatalf("status %d / %d", status, w.StatusCode)
	}
	if w.Code != perr.ErrorCodeUnavailable || w.Error != "search unavailable" {
		t.Fatalf("wire mismatch: %+v", w)
	}
	if w.Data != nil {
		t.Fatalf("error envelope carries data: %+v", w.Data)
	}
}

func TestError_FieldAndForeign(t *testing.T) {
	err := perr.WithField(perr.Validationf("q is too long"), "q")
	_, w := pnet.Error(err, "")
	if w.Field != "q" || w.StatusCode != http.StatusBadRequest {
		t.Fatalf("field envelope mismatch: %+v", w)
	}

	status, w := pnet.Error(stderrs.New("plain"), "")
	if status != http.StatusInternalServerError || w.Code != perr.ErrorCodeUnknown || w.Error != "plain" {
		t.Fatalf("foreign envelope mismatch: %d %+v", status, w)
	}
}

func TestError_NilIsOK(t *testing.T) {
	status, w := pnet.Error(nil, "r")
	if status != http.StatusOK || w.Error != "" {
		t.Fatalf("nil error should be OK, got %d %+v", status, w)
	}
}

func TestHTTPStatus(t *testing.T) {
	if pnet.HTTPStatus(nil) != http.StatusOK {
		t.Fatalf("nil should be 200")
	}
	if pnet.HTTPStatus(perr.NotFoundf("nope")) != http.StatusNotFound {
		t.Fatalf("not found should be 404")
	}
}
