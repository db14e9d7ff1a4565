package ctrie

import "sync/atomic"

const (
	// w controls the branching factor at each level of the trie: 2^w
	// branches per C-node.
	w = 5

	// hashBits is the width of the hash space the trie addresses. Once a
	// descent has consumed hashBits bits (lev >= hashBits), colliding keys
	// can no longer be distinguished by further bitmap levels and fall
	// into an L-node instead.
	hashBits = 32
)

// generation demarcates Map clones. A heap-allocated reference is used
// instead of an integer counter to avoid overflow and ABA: two tokens are
// equal iff they are the same object. The struct needs a field because two
// distinct zero-size values may otherwise share the same address.
type generation struct{ _ bool }

// branch is either an *iNode or an *sNode.
type branch any

// mapEntry-like leaf node: a singleton key/value pair together with its
// precomputed hash, so retries never need to re-hash the key.
type sNode[K, V any] struct {
	key   K
	value V
	hash  uint32
}

// tNode is a tombstone: a sentinel marking that the subtree below this
// I-node has collapsed to a single leaf and must be absorbed by the parent
// before any non-clean operation proceeds through it. A tombstone always
// holds exactly one leaf; a subtree that empties out entirely is left as
// an empty cNode, not a tombstone.
type tNode[K, V any] struct {
	sNode *sNode[K, V]
}

// untombed returns a fresh copy of the leaf wrapped by a tombstone, for
// resurrection into the parent C-node.
func (t *tNode[K, V]) untombed() *sNode[K, V] {
	return &sNode[K, V]{key: t.sNode.key, value: t.sNode.value, hash: t.sNode.hash}
}

// lNode is a persistent singly-linked list of leaves sharing a full hash
// collision at the maximum addressable depth.
type lNode[K, V any] struct {
	head *sNode[K, V]
	tail *lNode[K, V]
}

// lookup scans the list for key, comparing the precomputed hash before
// falling back to eq.
func (l *lNode[K, V]) lookup(key K, hash uint32, eq func(K, K) bool) (V, bool) {
	for ; l != nil; l = l.tail {
		if l.head.hash == hash && eq(l.head.key, key) {
			return l.head.value, true
		}
	}
	return zero[V](), false
}

// inserted returns a new list with key/value present, replacing any
// existing entry for key.
func (l *lNode[K, V]) inserted(key K, value V, hash uint32, eq func(K, K) bool) *lNode[K, V] {
	return &lNode[K, V]{
		head: &sNode[K, V]{key: key, value: value, hash: hash},
		tail: l.removed(key, eq),
	}
}

// removed returns a new list with key absent.
func (l *lNode[K, V]) removed(key K, eq func(K, K) bool) *lNode[K, V] {
	for n := l; n != nil; n = n.tail {
		if eq(n.head.key, key) {
			return l.remove(n)
		}
	}
	return l
}

func (l *lNode[K, V]) remove(target *lNode[K, V]) *lNode[K, V] {
	if l == target {
		return l.tail
	}
	return &lNode[K, V]{head: l.head, tail: l.tail.remove(target)}
}

// cNode is a compressed branching node: a 32-bit bitmap plus a packed
// array of branches, one per set bit (LSB first). len(slice) ==
// popcount(bmp) always holds.
type cNode[K, V any] struct {
	bmp   uint32
	slice []branch
	gen   *generation
}

// mainNode is the tagged union occupying an I-node's main cell: exactly
// one of cNode, tNode, lNode is non-nil, except transiently during a gcas
// attempt where prev/failed carry bookkeeping for the generational CAS
// protocol (see gcas.go).
type mainNode[K, V any] struct {
	cNode *cNode[K, V]
	tNode *tNode[K, V]
	lNode *lNode[K, V]

	// failed is set when a gcas is discovered, at completion time, to have
	// raced a snapshot: it records the value the I-node's main pointer
	// must be rolled back to.
	failed *mainNode[K, V]

	// prev holds the main-node this one is replacing while a gcas is in
	// flight. A successful gcas clears it to nil; gcasRead helps finish
	// any gcas it finds still pending.
	prev atomic.Pointer[mainNode[K, V]]
}

// iNode is an indirection node: the atomically-mutable cell that every
// structural change in the trie replaces wholesale. I-nodes stay put as
// the subtree above and below them changes; only their main pointer moves.
type iNode[K, V any] struct {
	main atomic.Pointer[mainNode[K, V]]

	// gen identifies which snapshot generation this I-node belongs to.
	// Set once at construction, read-only thereafter: gcas uses it purely
	// as a witness, never mutates it in place.
	gen *generation

	// rdcss is non-nil only for the ephemeral descriptor value installed
	// at the Map root while a root swap (Snapshot/Clear) is in flight; a
	// real trie I-node never has this set.
	rdcss *rdcssDescriptor[K, V]
}

// copyToGen returns a copy of this I-node sharing the current main-node
// value but tagged with gen. This is the copy-on-write step taken for the
// root (and, lazily, for any child found at a stale generation).
func (i *iNode[K, V]) copyToGen(gen *generation, m *Map[K, V]) *iNode[K, V] {
	nin := &iNode[K, V]{gen: gen}
	nin.main.Store(gcasRead(i, m))
	return nin
}

// rdcssDescriptor communicates the intent to swap the Map's root I-node,
// conditioned on the old root's main node still matching expected. It is
// installed as the rdcss field of a throwaway iNode so that the same
// atomic.Pointer[iNode] is used for both ordinary roots and in-flight
// descriptors.
type rdcssDescriptor[K, V any] struct {
	old       *iNode[K, V]
	expected  *mainNode[K, V]
	nv        *iNode[K, V]
	committed atomic.Bool
}

func zero[T any]() T {
	var v T
	return v
}
