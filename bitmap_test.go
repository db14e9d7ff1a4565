package ctrie

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestFlagPos(t *testing.T) {
	c := qt.New(t)

	flag, pos := flagPos(0, 0, 0)
	c.Assert(flag, qt.Equals, uint32(1))
	c.Assert(pos, qt.Equals, 0)

	// hash index 3 at level 0, with bits 0,1,2 already occupied: pos must
	// be 3 (all three lower bits counted).
	flag, pos = flagPos(3, 0, 0b0111)
	c.Assert(flag, qt.Equals, uint32(1)<<3)
	c.Assert(pos, qt.Equals, 3)

	// Index 3 occupies bits 5..9 of the hash at level 5.
	flag, pos = flagPos(3<<5, 5, 0)
	c.Assert(flag, qt.Equals, uint32(1)<<3)
	c.Assert(pos, qt.Equals, 0)
}

func TestCNodeInsertedUpdatedRemoved(t *testing.T) {
	c := qt.New(t)
	gen := &generation{}
	cn := &cNode[string, int]{gen: gen}

	flag0, pos0 := flagPos(0, 0, cn.bmp)
	cn = cn.inserted(pos0, flag0, &sNode[string, int]{key: "a", value: 1, hash: 0}, gen)
	c.Assert(len(cn.slice), qt.Equals, 1)

	flag1, pos1 := flagPos(1, 0, cn.bmp)
	cn = cn.inserted(pos1, flag1, &sNode[string, int]{key: "b", value: 2, hash: 1}, gen)
	c.Assert(len(cn.slice), qt.Equals, 2)

	_, pos0b := flagPos(0, 0, cn.bmp)
	sn := cn.slice[pos0b].(*sNode[string, int])
	c.Assert(sn.key, qt.Equals, "a")

	cn = cn.updated(pos0b, &sNode[string, int]{key: "a", value: 99, hash: 0}, gen)
	sn = cn.slice[pos0b].(*sNode[string, int])
	c.Assert(sn.value, qt.Equals, 99)

	flagR, posR := flagPos(1, 0, cn.bmp)
	cn = cn.removed(posR, flagR, gen)
	c.Assert(len(cn.slice), qt.Equals, 1)
	remaining := cn.slice[0].(*sNode[string, int])
	c.Assert(remaining.key, qt.Equals, "a")
}
