package ctrie

// Set stores val for key, replacing any existing entry.
func (m *Map[K, V]) Set(key K, val V) {
	m.apply(key, func(V, bool) (V, bool) { return val, true })
}

// Delete removes key from the Map, returning the value it held and true,
// or the zero value and false if key was absent.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	return m.apply(key, func(old V, existed bool) (V, bool) { return old, false })
}

// Update applies f to the current value stored for key (and whether key
// exists), installing the returned value if f's second return is true, or
// removing any existing entry for key if it is false. Update unifies
// insert, update and delete into a single atomic operation: f observes
// and decides the fate of key in one linearizable step, which plain
// Set/Delete cannot offer under concurrent mutation of the same key.
//
// Update returns the value f observed (the value key held immediately
// before this call) and whether key existed at that point.
func (m *Map[K, V]) Update(key K, f func(old V, existed bool) (V, bool)) (V, bool) {
	return m.apply(key, f)
}

// apply computes key's hash once and retries iapply from the current
// root until it commits.
func (m *Map[K, V]) apply(key K, f func(V, bool) (V, bool)) (V, bool) {
	m.assertReadWrite()
	hash := uint32(m.hashFunc(key))
	for {
		root := m.readRoot()
		val, existed, committed := iapply(root, key, hash, f, 0, nil, root.gen, m)
		if committed {
			return val, existed
		}
	}
}

// iapply is the unified insert/update/remove state machine. It descends
// from i for key/hash starting at level lev (parent is i's parent, nil at
// the root; startGen is the generation the caller's retry attempt began
// at), calls f at most once with the value found (or the zero value and
// false if none; f is not called when a retry is needed before key's slot
// is reached), and attempts to gcas in whatever change f's decision
// implies. The returned value and existed flag always describe the state
// of key immediately before this call, regardless of what f decided.
// committed is false when the caller must retry from scratch, either
// because a plain gcas race was lost or a stale generation was
// discovered.
func iapply[K, V any](i *iNode[K, V], key K, hash uint32, f func(V, bool) (V, bool), lev uint, parent *iNode[K, V], startGen *generation, m *Map[K, V]) (result V, existed bool, committed bool) {
	main := gcasRead(i, m)

	switch {
	case main.cNode != nil:
		cn := main.cNode
		flag, pos := flagPos(hash, lev, cn.bmp)

		if cn.bmp&flag == 0 {
			// No branch for this slot: key is absent.
			newVal, keep := f(zero[V](), false)
			if !keep {
				return zero[V](), false, true
			}
			nsn := &sNode[K, V]{key: key, value: newVal, hash: hash}
			ncn := cn.inserted(pos, flag, nsn, cn.gen)
			ok := gcas(i, main, &mainNode[K, V]{cNode: ncn}, m)
			return zero[V](), false, ok
		}

		switch br := cn.slice[pos].(type) {
		case *iNode[K, V]:
			if m.readOnly || startGen == br.gen {
				return iapply(br, key, hash, f, lev+w, i, startGen, m)
			}
			if gcas(i, main, &mainNode[K, V]{cNode: cn.renewed(startGen, m)}, m) {
				return iapply(i, key, hash, f, lev, parent, startGen, m)
			}
			return zero[V](), false, false

		case *sNode[K, V]:
			if br.hash == hash && m.eqFunc(br.key, key) {
				newVal, keep := f(br.value, true)
				if keep {
					nsn := &sNode[K, V]{key: key, value: newVal, hash: hash}
					ncn := cn.updated(pos, nsn, cn.gen)
					ok := gcas(i, main, &mainNode[K, V]{cNode: ncn}, m)
					return br.value, true, ok
				}
				ncn := cn.removed(pos, flag, cn.gen)
				contracted := toContracted(ncn, lev)
				ok := gcas(i, main, contracted, m)
				if ok && contracted.tNode != nil {
					cleanParent(parent, i, hash, lev-w, m, startGen)
				}
				return br.value, true, ok
			}
			newVal, keep := f(zero[V](), false)
			if !keep {
				return zero[V](), false, true
			}
			nsn := &sNode[K, V]{key: key, value: newVal, hash: hash}
			nmain := newMainNode[K, V](br, nsn, lev+w, cn.gen)
			child := &iNode[K, V]{gen: cn.gen}
			child.main.Store(nmain)
			ncn := cn.updated(pos, child, cn.gen)
			ok := gcas(i, main, &mainNode[K, V]{cNode: ncn}, m)
			return zero[V](), false, ok

		default:
			panic("ctrie: corrupt cNode branch")
		}

	case main.tNode != nil:
		clean(parent, lev-w, m)
		return zero[V](), false, false

	case main.lNode != nil:
		ln := main.lNode
		oldVal, existed := ln.lookup(key, hash, m.eqFunc)
		newVal, keep := f(oldVal, existed)
		if keep {
			nln := ln.inserted(key, newVal, hash, m.eqFunc)
			ok := gcas(i, main, &mainNode[K, V]{lNode: nln}, m)
			return oldVal, existed, ok
		}
		if !existed {
			return zero[V](), false, true
		}
		nln := ln.removed(key, m.eqFunc)
		var nmain *mainNode[K, V]
		if nln.tail == nil {
			nmain = entomb[K, V](nln.head)
		} else {
			nmain = &mainNode[K, V]{lNode: nln}
		}
		ok := gcas(i, main, nmain, m)
		return oldVal, true, ok

	default:
		panic("ctrie: corrupt mainNode")
	}
}
