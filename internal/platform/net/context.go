// Package net provides utilities for working with request contexts and transport envelopes
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyClientIP ctxKey = "client_ip"
	keyFragment ctxKey = "fragment"
)

// WithRequest annotates context with the request id and client address
func WithRequest(ctx context.Context, reqID, clientIP string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if clientIP != "" {
		ctx = context.WithValue(ctx, keyClientIP, clientIP)
	}
	return ctx
}

// WithFragment marks the request as asking for a partial (fragment) render
func WithFragment(ctx context.Context, on bool) context.Context {
	return context.WithValue(ctx, keyFragment, on)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ClientIP returns the client address on the context if present
func ClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(keyClientIP).(string); ok {
		return v
	}
	return ""
}

// Fragment reports whether the request asked for a fragment render
func Fragment(ctx context.Context) bool {
	v, _ := ctx.Value(keyFragment).(bool)
	return v
}
