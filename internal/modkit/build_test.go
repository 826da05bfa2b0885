package modkit

import (
	"net/http"
	"reflect"
	"testing"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build(nil)
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults: %+v", b)
	}
	if b.Subrouter == nil {
		t.Fatalf("default Subrouter should be identity, got nil")
	}
	if b.Register != nil {
		t.Fatalf("default Register should be nil")
	}
}

func TestBuild_OptsOverrideDefaults(t *testing.T) {
	t.Parallel()

	b := Build(
		[]Option{WithName("search"), WithPrefix("/assets")},
		WithPrefix("/v2/assets"),
	)
	if b.Name != "search" {
		t.Fatalf("Name = %q", b.Name)
	}
	if b.Prefix != "/v2/assets" {
		t.Fatalf("Prefix = %q, caller option should win", b.Prefix)
	}
}

func TestBuild_MiddlewareCopyAndPorts(t *testing.T) {
	t.Parallel()

	ptr := func(f func(http.Handler) http.Handler) uintptr { return reflect.ValueOf(f).Pointer() }
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return http.NotFoundHandler() }
	src := []func(http.Handler) http.Handler{mwA, mwB}

	type ports struct{ N int }
	b := Build(nil, WithMiddlewares(src...), WithPorts(ports{N: 7}))

	src[0] = mwB
	if len(b.Mw) != 2 || ptr(b.Mw[0]) != ptr(mwA) {
		t.Fatalf("Built.Mw should be a copy of the option slice")
	}
	if p, ok := b.Ports.(ports); !ok || p.N != 7 {
		t.Fatalf("Ports = %#v", b.Ports)
	}
}
