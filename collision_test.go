package ctrie_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/ctrie"
)

// TestAllKeysHashingToZero forces every key down the same bitmap path at
// every level by using a constant hash function, so that the full set of
// entries collapses into a single lNode collision chain. This is the
// adversarial case the bitmap/cNode machinery cannot help with at all:
// correctness here rests entirely on lNode's linear lookup/insert/remove.
func TestAllKeysHashingToZero(t *testing.T) {
	c := qt.New(t)
	m := ctrie.NewFunc[string, int](
		func(a, b string) bool { return a == b },
		func(string) uint64 { return 0 },
	)

	const n = 64
	for i := 0; i < n; i++ {
		m.Set(keyFor(i), i)
	}
	c.Assert(m.Len(), qt.Equals, n)

	for i := 0; i < n; i++ {
		v, ok := m.Get(keyFor(i))
		c.Assert(ok, qt.IsTrue)
		c.Assert(v, qt.Equals, i)
	}

	// Overwrite every other key, delete the rest.
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			m.Set(keyFor(i), i*1000)
		} else {
			v, ok := m.Delete(keyFor(i))
			c.Assert(ok, qt.IsTrue)
			c.Assert(v, qt.Equals, i)
		}
	}
	c.Assert(m.Len(), qt.Equals, n/2)
	for i := 0; i < n; i += 2 {
		v, ok := m.Get(keyFor(i))
		c.Assert(ok, qt.IsTrue)
		c.Assert(v, qt.Equals, i*1000)
	}

	// Collapsing the chain down to a single entry must still behave: the
	// final removal walks the entomb path rather than the ordinary lNode
	// removal path.
	for i := 0; i < n; i += 2 {
		m.Delete(keyFor(i))
	}
	c.Assert(m.IsEmpty(), qt.IsTrue)
}

// TestCollisionChainSurvivesSnapshot exercises lNode collapse/entomb
// interacting with a snapshot fork: removing down to one entry in the
// original must not disturb the snapshot's view of the full chain.
func TestCollisionChainSurvivesSnapshot(t *testing.T) {
	c := qt.New(t)
	m := ctrie.NewFunc[string, int](
		func(a, b string) bool { return a == b },
		func(string) uint64 { return 0 },
	)
	for i := 0; i < 8; i++ {
		m.Set(keyFor(i), i)
	}
	snap := m.Snapshot()

	for i := 1; i < 8; i++ {
		m.Delete(keyFor(i))
	}
	c.Assert(m.Len(), qt.Equals, 1)
	c.Assert(snap.Len(), qt.Equals, 8)
}
