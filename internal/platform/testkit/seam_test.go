package testkit

import (
	"sync"
	"sync/atomic"
	"testing"
)

var (
	pageSize = func() int { return 20 }
	retries  = 6
)

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &pageSize, func() int { return 5 })
		Swap(t, &retries, 1)
		if pageSize() != 5 || retries != 1 {
			t.Fatalf("swap not applied: %d %d", pageSize(), retries)
		}
	})
	if pageSize() != 20 || retries != 6 {
		t.Fatalf("swap not restored: %d %d", pageSize(), retries)
	}
}

func TestSerial_NoOverlap(t *testing.T) {
	var (
		inside  atomic.Int32
		overlap atomic.Bool
		wg      sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.Run("", func(t *testing.T) {
				Serial(t)
				if inside.Add(1) > 1 {
					overlap.Store(true)
				}
				inside.Add(-1)
			})
		}()
	}
	wg.Wait()
	if overlap.Load() {
		t.Fatalf("serial sections overlapped")
	}
}
