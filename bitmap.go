package ctrie

import "math/bits"

// flagPos computes, for hash at level lev, the single-bit flag identifying
// its slot in a cNode's bitmap, and the slice index that slot occupies
// given bmp (popcount of the bits below flag).
func flagPos(hash uint32, lev uint, bmp uint32) (flag uint32, pos int) {
	idx := (hash >> lev) & ((1 << w) - 1)
	flag = uint32(1) << idx
	pos = bits.OnesCount32(bmp & (flag - 1))
	return flag, pos
}

// inserted returns a copy of cn with br newly occupying the slot for flag
// at index pos, tagged with gen.
func (cn *cNode[K, V]) inserted(pos int, flag uint32, br branch, gen *generation) *cNode[K, V] {
	slice := make([]branch, len(cn.slice)+1)
	copy(slice, cn.slice[:pos])
	slice[pos] = br
	copy(slice[pos+1:], cn.slice[pos:])
	return &cNode[K, V]{bmp: cn.bmp | flag, slice: slice, gen: gen}
}

// updated returns a copy of cn with the branch at pos replaced by br.
func (cn *cNode[K, V]) updated(pos int, br branch, gen *generation) *cNode[K, V] {
	slice := make([]branch, len(cn.slice))
	copy(slice, cn.slice)
	slice[pos] = br
	return &cNode[K, V]{bmp: cn.bmp, slice: slice, gen: gen}
}

// removed returns a copy of cn with the slot for flag at index pos
// vacated.
func (cn *cNode[K, V]) removed(pos int, flag uint32, gen *generation) *cNode[K, V] {
	slice := make([]branch, len(cn.slice)-1)
	copy(slice, cn.slice[:pos])
	copy(slice[pos:], cn.slice[pos+1:])
	return &cNode[K, V]{bmp: cn.bmp &^ flag, slice: slice, gen: gen}
}

// renewed returns a copy of cn tagged with gen, with every *iNode branch
// replaced by a fresh copy-on-write child at gen. It is called when a
// traversal discovers a child I-node still stamped with a stale generation,
// lazily completing the copy-on-write that Snapshot only started at the
// root.
func (cn *cNode[K, V]) renewed(gen *generation, m *Map[K, V]) *cNode[K, V] {
	slice := make([]branch, len(cn.slice))
	for i, br := range cn.slice {
		if in, ok := br.(*iNode[K, V]); ok {
			slice[i] = in.copyToGen(gen, m)
		} else {
			slice[i] = br
		}
	}
	return &cNode[K, V]{bmp: cn.bmp, slice: slice, gen: gen}
}
