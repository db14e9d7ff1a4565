package ctrie

// MapValues builds a new Map by applying f to every entry of m, keeping
// keys (and m's equality/hash functions) unchanged. It is a package-level
// function, not a method, because it changes the value type and Go method
// type parameters cannot introduce a new type variable beyond the
// receiver's own.
func MapValues[K Hasher, V, V2 any](m *Map[K, V], f func(K, V) V2) *Map[K, V2] {
	out := NewFunc[K, V2](m.eqFunc, m.hashFunc)
	m.ForEach(func(k K, v V) bool {
		out.Set(k, f(k, v))
		return true
	})
	return out
}

// FilterMapInPlace mutates m by replacing every entry's value with the
// result of f, or deleting the entry entirely when f's second return is
// false. Unlike Update, which re-descends from the root once per key,
// FilterMapInPlace walks the trie exactly once, fusing the rewrite of
// every entry under a given cNode into that cNode's own single gcas —
// the same rebuild-then-commit shape iapply uses for one key, applied to
// a whole node at a time.
func (m *Map[K, V]) FilterMapInPlace(f func(K, V) (V, bool)) {
	m.assertReadWrite()
	filterMapSubtree(m.readRoot(), 0, f, m)
}

// filterMapSubtree rewrites every entry reachable from i. Each cNode
// found along the way is read once, rebuilt locally (every sNode branch
// is run through f and kept or dropped; every iNode branch is first copied
// into i's generation if it belongs to an older one, then recursed into
// exactly once and kept, resurrected from a tombstone, or dropped if its
// subtree emptied out) and installed with a single gcas.
// A lost gcas race at this node is left as is rather than retried: a
// retry would have to re-recurse into children that already committed
// their own changes, running f on them a second time.
func filterMapSubtree[K, V any](i *iNode[K, V], lev uint, f func(K, V) (V, bool), m *Map[K, V]) {
	main := gcasRead(i, m)
	switch {
	case main.cNode != nil:
		cn := main.cNode
		nbmp := uint32(0)
		nslice := make([]branch, 0, len(cn.slice))
		bmp := cn.bmp
		for idx := 0; bmp != 0; idx++ {
			flag := bmp & (-bmp)
			bmp &= bmp - 1

			var kept branch
			switch br := cn.slice[idx].(type) {
			case *sNode[K, V]:
				if nv, keep := f(br.key, br.value); keep {
					kept = &sNode[K, V]{key: br.key, value: nv, hash: br.hash}
				}
			case *iNode[K, V]:
				if br.gen != i.gen {
					br = br.copyToGen(i.gen, m)
				}
				filterMapSubtree(br, lev+w, f, m)
				switch sub := gcasRead(br, m); {
				case sub.tNode != nil:
					kept = sub.tNode.untombed()
				case sub.cNode != nil && len(sub.cNode.slice) == 0:
					// Subtree emptied out entirely: drop the branch.
				default:
					kept = br
				}
			}
			if kept != nil {
				nslice = append(nslice, kept)
				nbmp |= flag
			}
		}
		ncn := &cNode[K, V]{bmp: nbmp, slice: nslice, gen: cn.gen}
		gcas(i, main, toContracted(ncn, lev), m)

	case main.lNode != nil:
		var head, tail *lNode[K, V]
		count := 0
		for l := main.lNode; l != nil; l = l.tail {
			if nv, keep := f(l.head.key, l.head.value); keep {
				node := &lNode[K, V]{head: &sNode[K, V]{key: l.head.key, value: nv, hash: l.head.hash}}
				if head == nil {
					head, tail = node, node
				} else {
					tail.tail = node
					tail = node
				}
				count++
			}
		}
		var nmain *mainNode[K, V]
		switch count {
		case 0:
			nmain = &mainNode[K, V]{cNode: &cNode[K, V]{gen: i.gen}}
		case 1:
			nmain = entomb[K, V](head.head)
		default:
			nmain = &mainNode[K, V]{lNode: head}
		}
		gcas(i, main, nmain, m)

	case main.tNode != nil:
		// Already collapsed by a concurrent single-key operation; left
		// for that operation's own parent to absorb or resurrect.
	}
}
