package ctrie

// gcas performs a generation-compare-and-swap of i's main pointer from old
// to n. n.prev is set to old before the attempt so that a racing reader
// can help complete or abort it; gcasComplete is invoked immediately
// afterwards to resolve that intermediate state one way or the other.
//
// A gcas can fail for two reasons: the plain CAS raced another writer (the
// common case, handled by the caller retrying from the top), or the root's
// generation has moved on since i was read, meaning a snapshot was taken
// concurrently and i's whole subtree must be considered unusable for this
// attempt (the caller must re-read the path from the new root).
func gcas[K, V any](i *iNode[K, V], old, n *mainNode[K, V], m *Map[K, V]) bool {
	n.prev.Store(old)
	if i.main.CompareAndSwap(old, n) {
		gcasComplete(i, n, m)
		return n.prev.Load() == nil
	}
	return false
}

// gcasRead returns the current, fully-completed main-node value at i,
// helping finish any gcas it finds still in flight.
func gcasRead[K, V any](i *iNode[K, V], m *Map[K, V]) *mainNode[K, V] {
	n := i.main.Load()
	if n.prev.Load() == nil {
		return n
	}
	return gcasComplete(i, n, m)
}

// gcasComplete resolves an in-flight gcas on i: if the generation recorded
// by the root has not moved since n started, the prev marker is simply
// cleared (CAS succeeded outright); otherwise the whole attempt is rolled
// back by restoring old. Either way the result is the main-node value
// callers should now treat as current.
func gcasComplete[K, V any](i *iNode[K, V], n *mainNode[K, V], m *Map[K, V]) *mainNode[K, V] {
	for {
		prev := n.prev.Load()
		if prev == nil {
			return n
		}
		if fn := failedOf(prev); fn != nil {
			// Some other goroutine already marked this gcas abandoned and
			// is rolling it back; help finish that rollback rather than
			// racing a second decision on top of it.
			if i.main.CompareAndSwap(n, fn) {
				return fn
			}
			return gcasRead(i, m)
		}
		root := rdcssReadRoot(m, true)
		if root.gen == i.gen && !m.readOnly {
			if n.prev.CompareAndSwap(prev, nil) {
				return n
			}
			continue
		}
		// A snapshot raced this gcas: mark it abandoned and roll i.main
		// back to prev, but only act on prev if our own rollback CAS is
		// the one that actually won the race.
		if n.prev.CompareAndSwap(prev, markFailed(prev)) {
			if i.main.CompareAndSwap(n, prev) {
				return prev
			}
			return gcasRead(i, m)
		}
	}
}

// markFailed and failedOf thread a "this attempt was abandoned" marker
// through mainNode.prev without needing a second atomic field: the marker
// is itself a mainNode whose failed field points at the value to roll
// back to.
func markFailed[K, V any](prev *mainNode[K, V]) *mainNode[K, V] {
	return &mainNode[K, V]{failed: prev}
}

func failedOf[K, V any](n *mainNode[K, V]) *mainNode[K, V] {
	if n == nil {
		return nil
	}
	return n.failed
}

// readRoot returns the Map's current, fully-resolved root I-node,
// completing any in-flight RDCSS it finds.
func (m *Map[K, V]) readRoot() *iNode[K, V] {
	return rdcssReadRoot(m, false)
}

func rdcssReadRoot[K, V any](m *Map[K, V], abort bool) *iNode[K, V] {
	r := m.root.Load()
	if r.rdcss != nil {
		return rdcssComplete(m, abort)
	}
	return r
}

// rdcssRoot attempts to swap the Map's root from old to nv, but only if
// old's main pointer still equals expected when the installed descriptor
// is completed. This indirection exists so that
// Snapshot and Clear never leave a window where a concurrent reader could
// see a root whose main pointer has already moved out from under the
// value it read.
func rdcssRoot[K, V any](m *Map[K, V], old *iNode[K, V], expected *mainNode[K, V], nv *iNode[K, V]) bool {
	desc := &rdcssDescriptor[K, V]{old: old, expected: expected, nv: nv}
	holder := &iNode[K, V]{rdcss: desc}
	if !m.root.CompareAndSwap(old, holder) {
		return false
	}
	rdcssComplete(m, false)
	return desc.committed.Load()
}

func rdcssComplete[K, V any](m *Map[K, V], abort bool) *iNode[K, V] {
	r := m.root.Load()
	if r.rdcss == nil {
		return r
	}
	desc := r.rdcss
	if abort {
		m.root.CompareAndSwap(r, desc.old)
		return desc.old
	}
	if gcasRead(desc.old, m) == desc.expected {
		if m.root.CompareAndSwap(r, desc.nv) {
			desc.committed.Store(true)
		}
		return desc.nv
	}
	m.root.CompareAndSwap(r, desc.old)
	return desc.old
}

// casRoot is a plain, non-generational root swap. Nothing in the package
// calls it: Clear, like Snapshot, swaps the root through rdcssRoot.
func casRoot[K, V any](m *Map[K, V], old, nv *iNode[K, V]) bool {
	return m.root.CompareAndSwap(old, nv)
}
