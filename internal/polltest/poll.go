// Package polltest provides a small polling helper for tests that need to
// wait on a lock-free data structure to reach an expected state from
// another goroutine, without a fixed sleep.
package polltest

import (
	"testing"
	"time"
)

// WaitFor continuously calls poll until check returns true. It then polls
// for a little longer to make sure that poll still returns a value v such
// that check(v) is true. If the condition never happens, or the condition
// becomes true and then false, it calls t.Fatal.
//
// If poll returns an error, WaitFor calls t.Fatal.
//
// WaitFor returns the last value that poll returned.
func WaitFor[T any](t *testing.T, timeout time.Duration, poll func() (T, error), check func(T) bool) T {
	t.Helper()

	const settleChecks = 3
	const pollInterval = time.Millisecond

	deadline := time.Now().Add(timeout)
	settled := 0
	var last T

	for {
		v, err := poll()
		if err != nil {
			t.Fatalf("polltest: poll returned error: %v", err)
		}
		last = v
		if check(v) {
			settled++
			if settled >= settleChecks {
				return last
			}
		} else {
			if settled > 0 {
				t.Fatalf("polltest: condition became true and then false again (value: %v)", v)
			}
			if time.Now().After(deadline) {
				t.Fatalf("polltest: condition never became true within %s", timeout)
			}
		}
		time.Sleep(pollInterval)
	}
}
