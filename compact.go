package ctrie

// newMainNode builds the main-node(s) needed to hold both x and y, which
// have distinct keys (their hashes may be equal), starting the comparison
// at level lev. If x and y
// still collide at lev (all bits below hashBits exhausted), they fall
// into an lNode; otherwise a two-branch cNode is built, recursing through
// another I-node when x and y still share their index at lev.
func newMainNode[K, V any](x, y *sNode[K, V], lev uint, gen *generation) *mainNode[K, V] {
	if lev >= hashBits {
		return &mainNode[K, V]{lNode: &lNode[K, V]{head: x, tail: &lNode[K, V]{head: y}}}
	}
	xidx := (x.hash >> lev) & ((1 << w) - 1)
	yidx := (y.hash >> lev) & ((1 << w) - 1)
	if xidx == yidx {
		child := &iNode[K, V]{gen: gen}
		child.main.Store(newMainNode[K, V](x, y, lev+w, gen))
		return &mainNode[K, V]{cNode: &cNode[K, V]{
			bmp:   uint32(1) << xidx,
			slice: []branch{child},
			gen:   gen,
		}}
	}
	bmp := (uint32(1) << xidx) | (uint32(1) << yidx)
	slice := make([]branch, 2)
	if xidx < yidx {
		slice[0], slice[1] = x, y
	} else {
		slice[0], slice[1] = y, x
	}
	return &mainNode[K, V]{cNode: &cNode[K, V]{bmp: bmp, slice: slice, gen: gen}}
}

// entomb wraps a surviving single leaf in a tombstone, the form a cNode
// with exactly one remaining branch must take once toContracted decides
// that branch should be inlined.
func entomb[K, V any](s *sNode[K, V]) *mainNode[K, V] {
	return &mainNode[K, V]{tNode: &tNode[K, V]{sNode: s}}
}

// resurrect inlines the leaf held by a tombstone reached through i,
// collapsing the indirection; if main is not a tombstone, i itself is
// returned unchanged as the branch value.
func resurrect[K, V any](i *iNode[K, V], main *mainNode[K, V]) branch {
	if main.tNode != nil {
		return main.tNode.untombed()
	}
	return i
}

// toContracted inlines cn's sole remaining branch as a tombstone when cn
// has shrunk to exactly one leaf entry, so the parent's next clean call
// can absorb it. Only applicable above the root (lev > 0): the root is
// never contracted since it has no parent to absorb into.
func toContracted[K, V any](cn *cNode[K, V], lev uint) *mainNode[K, V] {
	if lev > 0 && len(cn.slice) == 1 {
		if s, ok := cn.slice[0].(*sNode[K, V]); ok {
			return entomb[K, V](s)
		}
	}
	return &mainNode[K, V]{cNode: cn}
}

// toCompressed rebuilds cn with every branch that currently points at a
// tombstoned I-node resurrected in place, then applies toContracted. It is
// used by clean, at any level including the root, to absorb tombstones
// left by a descendant's remove.
func toCompressed[K, V any](cn *cNode[K, V], lev uint, m *Map[K, V]) *mainNode[K, V] {
	slice := make([]branch, len(cn.slice))
	for idx, br := range cn.slice {
		if in, ok := br.(*iNode[K, V]); ok {
			slice[idx] = resurrect(in, gcasRead(in, m))
		} else {
			slice[idx] = br
		}
	}
	return toContracted(&cNode[K, V]{bmp: cn.bmp, slice: slice, gen: cn.gen}, lev)
}

// clean attempts to compress away any tombstones hanging directly off i,
// ignoring a gcas failure: a failure means some other goroutine already
// cleaned or otherwise changed i, which is just as good.
func clean[K, V any](i *iNode[K, V], lev uint, m *Map[K, V]) {
	if i == nil {
		return
	}
	main := gcasRead(i, m)
	if main.cNode != nil {
		gcas(i, main, toCompressed(main.cNode, lev, m), m)
	}
}

// cleanParent absorbs a tombstone found at i into p, i's parent in the
// trie. If its gcas loses, it tries again only while p's generation is
// still startGen; once p's generation has moved on it returns, and the
// tombstone stays until a later operation cleans it.
func cleanParent[K, V any](p, i *iNode[K, V], hash uint32, lev uint, m *Map[K, V], startGen *generation) {
	main := gcasRead(p, m)
	if main.cNode == nil {
		return
	}
	flag, pos := flagPos(hash, lev, main.cNode.bmp)
	if main.cNode.bmp&flag == 0 {
		return
	}
	branchAt := main.cNode.slice[pos]
	sub, ok := branchAt.(*iNode[K, V])
	if !ok || sub != i {
		return
	}
	inner := gcasRead(i, m)
	if inner.tNode == nil {
		return
	}
	ncn := main.cNode.updated(pos, resurrect(i, inner), main.cNode.gen)
	if !gcas(p, main, toContracted(ncn, lev), m) {
		if p.gen == startGen || m.readOnly {
			cleanParent(p, i, hash, lev, m, startGen)
		}
	}
}
