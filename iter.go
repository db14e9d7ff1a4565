package ctrie

import "iter"

// ForEach calls f once for each entry in m, in no particular order,
// stopping early if f returns false. Concurrent mutation of m during
// ForEach is safe but may or may not be observed, depending on timing; to
// iterate over a fixed point-in-time view, call ForEach on a
// ReadOnlySnapshot instead.
func (m *Map[K, V]) ForEach(f func(K, V) bool) {
	walk(m.readRoot(), m, f)
}

// walk recursively visits every leaf reachable from i, short-circuiting
// as soon as f returns false.
func walk[K, V any](i *iNode[K, V], m *Map[K, V], f func(K, V) bool) bool {
	main := gcasRead(i, m)
	switch {
	case main.cNode != nil:
		for _, br := range main.cNode.slice {
			switch b := br.(type) {
			case *sNode[K, V]:
				if !f(b.key, b.value) {
					return false
				}
			case *iNode[K, V]:
				if !walk(b, m, f) {
					return false
				}
			}
		}
		return true
	case main.tNode != nil:
		return f(main.tNode.sNode.key, main.tNode.sNode.value)
	case main.lNode != nil:
		for l := main.lNode; l != nil; l = l.tail {
			if !f(l.head.key, l.head.value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Fold reduces over every entry in m, threading acc through f in no
// particular order.
func Fold[K, V, Acc any](m *Map[K, V], init Acc, f func(Acc, K, V) Acc) Acc {
	acc := init
	m.ForEach(func(k K, v V) bool {
		acc = f(acc, k, v)
		return true
	})
	return acc
}

// Exists reports whether any entry in m satisfies pred, short-circuiting
// on the first match.
func (m *Map[K, V]) Exists(pred func(K, V) bool) bool {
	found := false
	m.ForEach(func(k K, v V) bool {
		if pred(k, v) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ForAll reports whether every entry in m satisfies pred, short-circuiting
// on the first failure.
func (m *Map[K, V]) ForAll(pred func(K, V) bool) bool {
	all := true
	m.ForEach(func(k K, v V) bool {
		if !pred(k, v) {
			all = false
			return false
		}
		return true
	})
	return all
}

// All returns a range-over-func iterator over m's entries, in no
// particular order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.ForEach(yield)
	}
}

// Len returns the number of entries in m. It runs in O(n) time: the trie
// keeps no running count, since a count field would defeat O(1)
// snapshots (every mutation would need to propagate a size delta up to
// every outstanding snapshot). It counts a ReadOnlySnapshot of m, so the
// result reflects a single point in time even while m is being mutated.
func (m *Map[K, V]) Len() int {
	n := 0
	m.ReadOnlySnapshot().ForEach(func(K, V) bool {
		n++
		return true
	})
	return n
}

// IsEmpty reports whether m has zero entries, in O(1) expected time
// (it stops at the first leaf found, unlike Len).
func (m *Map[K, V]) IsEmpty() bool {
	return !m.Exists(func(K, V) bool { return true })
}
