package ctrie_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/ctrie"
)

func TestSnapshotIsIndependent(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	snap := m.Snapshot()

	// Mutating the original after the snapshot must not affect it.
	m.Set("a", 100)
	m.Set("c", 3)
	m.Delete("b")

	v, ok := snap.Get("a")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 1)

	v, ok = snap.Get("b")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 2)

	_, ok = snap.Get("c")
	c.Assert(ok, qt.IsFalse)

	// And mutating the snapshot must not affect the original.
	snap.Set("a", 999)
	v, ok = m.Get("a")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 100)
}

func TestReadOnlySnapshotSeesPriorWrites(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	for i := 0; i < 500; i++ {
		m.Set(ctrie.String(keyFor(i)), i)
	}
	snap := m.ReadOnlySnapshot()
	c.Assert(snap.Len(), qt.Equals, 500)
	for i := 0; i < 500; i++ {
		v, ok := snap.Get(ctrie.String(keyFor(i)))
		c.Assert(ok, qt.IsTrue)
		c.Assert(v, qt.Equals, i)
	}
}

func TestClearEmptiesMapWithoutAffectingSnapshots(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	m.Set("a", 1)
	snap := m.Snapshot()

	m.Clear()
	c.Assert(m.IsEmpty(), qt.IsTrue)
	c.Assert(m.Len(), qt.Equals, 0)

	v, ok := snap.Get("a")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 1)
}

func TestMultipleSnapshotsFork(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	m.Set("a", 1)

	s1 := m.Snapshot()
	s2 := m.Snapshot()

	s1.Set("a", 11)
	s2.Set("a", 22)
	m.Set("a", 33)

	v, _ := s1.Get("a")
	c.Assert(v, qt.Equals, 11)
	v, _ = s2.Get("a")
	c.Assert(v, qt.Equals, 22)
	v, _ = m.Get("a")
	c.Assert(v, qt.Equals, 33)
}
