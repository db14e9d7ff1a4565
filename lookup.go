package ctrie

// Get returns the value stored for key and true, or the zero value and
// false if key is absent.
func (m *Map[K, V]) Get(key K) (V, bool) {
	hash := uint32(m.hashFunc(key))
	for {
		root := m.readRoot()
		val, existed, ok := ilookup(root, key, hash, 0, nil, root.gen, m)
		if ok {
			return val, existed
		}
	}
}

// Has reports whether key is present in the Map.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// MustGet returns the value stored for key, panicking with a
// *KeyNotFoundError if key is absent.
func (m *Map[K, V]) MustGet(key K) V {
	val, ok := m.Get(key)
	if !ok {
		panic(&KeyNotFoundError[K]{Key: key})
	}
	return val
}

// ilookup descends from i looking for key/hash starting at level lev,
// with parent as i's parent (nil at the root) and startGen the generation
// the caller's traversal began at. The third return value is false when
// the caller must retry the whole lookup from a fresh root: this happens
// only on a writable Map, when the gcas renewing a stale-generation child
// loses, or when a tombstone is met and cleaned. A read-only Map never
// asks for a retry.
func ilookup[K, V any](i *iNode[K, V], key K, hash uint32, lev uint, parent *iNode[K, V], startGen *generation, m *Map[K, V]) (V, bool, bool) {
	main := gcasRead(i, m)

	switch {
	case main.cNode != nil:
		cn := main.cNode
		flag, pos := flagPos(hash, lev, cn.bmp)
		if cn.bmp&flag == 0 {
			return zero[V](), false, true
		}
		switch br := cn.slice[pos].(type) {
		case *iNode[K, V]:
			if m.readOnly || startGen == br.gen {
				return ilookup(br, key, hash, lev+w, i, startGen, m)
			}
			if gcas(i, main, &mainNode[K, V]{cNode: cn.renewed(startGen, m)}, m) {
				return ilookup(i, key, hash, lev, parent, startGen, m)
			}
			return zero[V](), false, false
		case *sNode[K, V]:
			if br.hash == hash && m.eqFunc(br.key, key) {
				return br.value, true, true
			}
			return zero[V](), false, true
		default:
			panic("ctrie: corrupt cNode branch")
		}

	case main.tNode != nil:
		return cleanReadOnly(main.tNode, lev, parent, m, key, hash)

	case main.lNode != nil:
		val, ok := main.lNode.lookup(key, hash, m.eqFunc)
		return val, ok, true

	default:
		panic("ctrie: corrupt mainNode")
	}
}

// cleanReadOnly absorbs a tombstone encountered mid-lookup: on a writable
// Map it calls clean and asks the caller to retry; on a read-only
// snapshot, where clean must never run (it would mutate shared
// structure), it instead resolves the lookup directly against the
// tombstoned leaf.
func cleanReadOnly[K, V any](tn *tNode[K, V], lev uint, parent *iNode[K, V], m *Map[K, V], key K, hash uint32) (V, bool, bool) {
	if m.readOnly {
		if tn.sNode.hash == hash && m.eqFunc(tn.sNode.key, key) {
			return tn.sNode.value, true, true
		}
		return zero[V](), false, true
	}
	clean(parent, lev-w, m)
	return zero[V](), false, false
}
