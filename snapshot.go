package ctrie

import "sync/atomic"

// Map is a concurrent, lock-free hash trie mapping keys of type K to
// values of type V. The zero Map is not usable; construct one with New or
// NewFunc.
type Map[K, V any] struct {
	root     atomic.Pointer[iNode[K, V]]
	readOnly bool
	eqFunc   func(K, K) bool
	hashFunc func(K) uint64
}

// New constructs an empty Map whose key type supplies its own equality
// (via ==, since Hasher embeds comparable) and hash (via Hash).
func New[K Hasher, V any]() *Map[K, V] {
	return NewFunc[K, V](func(a, b K) bool { return a == b }, K.Hash)
}

// NewFunc constructs an empty Map using the given equality and hash
// functions, for key types that cannot or should not implement Hasher
// directly (e.g. []byte, or a type whose natural == is not the desired
// equality).
func NewFunc[K, V any](eq func(K, K) bool, hash func(K) uint64) *Map[K, V] {
	gen := &generation{}
	root := &iNode[K, V]{gen: gen}
	root.main.Store(&mainNode[K, V]{cNode: &cNode[K, V]{gen: gen}})
	m := &Map[K, V]{eqFunc: eq, hashFunc: hash}
	m.root.Store(root)
	return m
}

func newMap[K, V any](root *iNode[K, V], eq func(K, K) bool, hash func(K) uint64, readOnly bool) *Map[K, V] {
	m := &Map[K, V]{eqFunc: eq, hashFunc: hash, readOnly: readOnly}
	m.root.Store(root)
	return m
}

// assertReadWrite panics if m is a read-only snapshot: every mutating
// method calls this first.
func (m *Map[K, V]) assertReadWrite() {
	if m.readOnly {
		panic("ctrie: cannot modify a read-only snapshot")
	}
}

// Snapshot returns an independent, mutable copy of m in O(1) time: writes
// to the returned Map are never visible through m, and vice versa.
func (m *Map[K, V]) Snapshot() *Map[K, V] {
	return m.clone(false)
}

// ReadOnlySnapshot returns an independent, read-only copy of m in O(1)
// time. A read-only Map panics if any mutating method is called on it,
// but is cheaper to take and to read through than a mutable Snapshot
// since it never needs to renew stale generations while traversing.
func (m *Map[K, V]) ReadOnlySnapshot() *Map[K, V] {
	return m.clone(true)
}

// clone forks m's root into a fresh generation, installs that fork as m's
// own new root via RDCSS, and returns a new Map. The returned Map must
// never share the installed iNode (and its atomic main cell) with m: if
// it did, a write through either Map would be visible through the other,
// defeating the whole point of a snapshot. A read-only clone can safely
// reuse the pre-swap root object directly, since a read-only Map never
// gcas's through it; a read-write clone gives the main node read before
// the swap a new root iNode at a third, distinct generation, so that m,
// the pre-swap root and the returned Map each end up with their own iNode
// and the returned Map holds exactly the state the swap committed.
func (m *Map[K, V]) clone(readOnly bool) *Map[K, V] {
	for {
		root := m.readRoot()
		main := gcasRead(root, m)
		ngen := &generation{}
		nroot := root.copyToGen(ngen, m)
		if !rdcssRoot(m, root, main, nroot) {
			continue
		}
		if readOnly {
			return newMap[K, V](root, m.eqFunc, m.hashFunc, true)
		}
		rgen := &generation{}
		rroot := &iNode[K, V]{gen: rgen}
		rroot.main.Store(main)
		return newMap[K, V](rroot, m.eqFunc, m.hashFunc, false)
	}
}

// Clear removes every entry from m in O(1) time, without disturbing any
// outstanding snapshot.
func (m *Map[K, V]) Clear() {
	m.assertReadWrite()
	for {
		root := m.readRoot()
		main := gcasRead(root, m)
		ngen := &generation{}
		nroot := &iNode[K, V]{gen: ngen}
		nroot.main.Store(&mainNode[K, V]{cNode: &cNode[K, V]{gen: ngen}})
		if rdcssRoot(m, root, main, nroot) {
			return
		}
	}
}
