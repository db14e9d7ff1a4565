package ctrie_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/ctrie"
)

func TestForEachVisitsEveryEntry(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	want := map[string]int{}
	for i := 0; i < 300; i++ {
		k := keyFor(i)
		m.Set(ctrie.String(k), i)
		want[k] = i
	}

	got := map[string]int{}
	m.ForEach(func(k ctrie.String, v int) bool {
		got[string(k)] = v
		return true
	})
	c.Assert(got, qt.DeepEquals, want)
}

func TestForEachStopsEarly(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	for i := 0; i < 100; i++ {
		m.Set(ctrie.String(keyFor(i)), i)
	}
	n := 0
	m.ForEach(func(ctrie.String, int) bool {
		n++
		return n < 5
	})
	c.Assert(n, qt.Equals, 5)
}

func TestFold(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	for i := 1; i <= 5; i++ {
		m.Set(ctrie.String(keyFor(i)), i)
	}
	sum := ctrie.Fold(m, 0, func(acc int, _ ctrie.String, v int) int {
		return acc + v
	})
	c.Assert(sum, qt.Equals, 15)
}

func TestExistsAndForAll(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	c.Assert(m.Exists(func(_ ctrie.String, v int) bool { return v == 2 }), qt.IsTrue)
	c.Assert(m.Exists(func(_ ctrie.String, v int) bool { return v == 99 }), qt.IsFalse)
	c.Assert(m.ForAll(func(_ ctrie.String, v int) bool { return v > 0 }), qt.IsTrue)
	c.Assert(m.ForAll(func(_ ctrie.String, v int) bool { return v > 1 }), qt.IsFalse)
}

func TestAllIterator(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	total := 0
	for _, v := range m.All() {
		total += v
	}
	c.Assert(total, qt.Equals, 3)
}

func TestLenAndIsEmpty(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	c.Assert(m.IsEmpty(), qt.IsTrue)
	c.Assert(m.Len(), qt.Equals, 0)

	m.Set("a", 1)
	c.Assert(m.IsEmpty(), qt.IsFalse)
	c.Assert(m.Len(), qt.Equals, 1)

	m.Delete("a")
	c.Assert(m.IsEmpty(), qt.IsTrue)
}

func TestMapValues(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	doubled := ctrie.MapValues(m, func(_ ctrie.String, v int) int { return v * 2 })
	v, ok := doubled.Get("a")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 2)
	v, ok = doubled.Get("b")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 4)

	// The original is untouched.
	v, _ = m.Get("a")
	c.Assert(v, qt.Equals, 1)
}

func TestFilterMapInPlace(t *testing.T) {
	c := qt.New(t)
	m := ctrie.New[ctrie.String, int]()
	for i := 0; i < 10; i++ {
		m.Set(ctrie.String(keyFor(i)), i)
	}

	m.FilterMapInPlace(func(_ ctrie.String, v int) (int, bool) {
		if v%2 == 0 {
			return 0, false
		}
		return v * 10, true
	})

	c.Assert(m.Len(), qt.Equals, 5)
	m.ForEach(func(_ ctrie.String, v int) bool {
		c.Assert(v%10, qt.Equals, 0)
		return true
	})
}
