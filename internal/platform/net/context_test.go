package net_test

import (
	"context"
	"testing"

	pnet "assetsearch/internal/platform/net"
)

func TestWithRequest_SetsValues(t *testing.T) {
	ctx := pnet.WithRequest(context.Background(), "req-7", "203.0.113.9")

	if got := pnet.RequestID(ctx); got != "req-7" {
		t.Fatalf("RequestID = %q want req-7", got)
	}
	if got := pnet.ClientIP(ctx); got != "203.0.113.9" {
		t.Fatalf("ClientIP = %q", got)
	}
}

func TestWithRequest_EmptyValuesLeaveContextBare(t *testing.T) {
	ctx := pnet.WithRequest(context.Background(), "", "")

	if pnet.RequestID(ctx) != "" || pnet.ClientIP(ctx) != "" {
		t.Fatalf("expected empty values on bare context")
	}
}

func TestFragment(t *testing.T) {
	bg := context.Background()
	if pnet.Fragment(bg) {
		t.Fatalf("bare context should not be a fragment request")
	}
	if !pnet.Fragment(pnet.WithFragment(bg, true)) {
		t.Fatalf("WithFragment(true) not visible")
	}
	if pnet.Fragment(pnet.WithFragment(bg, false)) {
		t.Fatalf("WithFragment(false) reported true")
	}
}
