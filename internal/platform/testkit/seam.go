package testkit

import (
	"sync"
	"testing"
)

// named locks for Serial
var seams sync.Map

// Swap replaces *target for the duration of the test and restores it on cleanup
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial holds the lock named key until the test ends
// tests replacing the same package-level seam should share a key
func Serial(t testing.TB, key string) {
	t.Helper()
	v, _ := seams.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	t.Cleanup(mu.Unlock)
}
