package testkit

import (
	"sync"
	"testing"
)

// seamMu serialises tests that reassign package-level seams
var seamMu sync.Mutex

// Swap replaces *target for the lifetime of t and restores the previous value on cleanup
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	prev := *target
	*target = replacement
	t.Cleanup(func() { *target = prev })
}

// Serial holds the seam lock until t finishes
// call it before Swap in any test that touches a shared seam
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
