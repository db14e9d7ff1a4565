package ctrie

import (
	"fmt"
	"io"
	"strings"
)

// dumpString renders the full trie structure rooted at m, for use in test
// failure messages; it is not part of the public API.
func (m *Map[K, V]) dumpString() string {
	w := new(strings.Builder)
	m.dump(w)
	return w.String()
}

// dump writes the trie structure and every node to w, depth-first.
func (m *Map[K, V]) dump(w io.Writer) {
	root := m.readRoot()
	fmt.Fprintf(w, "root (gen=%p)\n", root.gen)
	dumpRec(w, root, m, 1)
}

func dumpRec[K, V any](w io.Writer, i *iNode[K, V], m *Map[K, V], depth int) {
	indent := strings.Repeat("  ", depth)
	main := gcasRead(i, m)
	switch {
	case main.cNode != nil:
		fmt.Fprintf(w, "%scNode bmp=%032b (%d branches)\n", indent, main.cNode.bmp, len(main.cNode.slice))
		for _, br := range main.cNode.slice {
			switch b := br.(type) {
			case *sNode[K, V]:
				fmt.Fprintf(w, "%s  sNode key=%v value=%v hash=%d\n", indent, b.key, b.value, b.hash)
			case *iNode[K, V]:
				dumpRec(w, b, m, depth+1)
			}
		}
	case main.tNode != nil:
		fmt.Fprintf(w, "%stNode key=%v value=%v\n", indent, main.tNode.sNode.key, main.tNode.sNode.value)
	case main.lNode != nil:
		fmt.Fprintf(w, "%slNode:\n", indent)
		for l := main.lNode; l != nil; l = l.tail {
			fmt.Fprintf(w, "%s  key=%v value=%v\n", indent, l.head.key, l.head.value)
		}
	}
}
