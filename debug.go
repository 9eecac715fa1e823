package lite3

import (
	"fmt"
	"strings"
)

//============================================= Lite3 Debug Dump

// DumpTree renders the root's B-tree structure (not its decoded
// values) as an indented text tree, one line per node showing its
// offset, type, leaf flag, and hashes. Ported from the teacher's
// Utils.go PrintChildren, which walked MariINode/MariLNode the same
// way for its own mmap-backed tree.
func (h *Handle) DumpTree() string {
	var sb strings.Builder
	dumpNode(&sb, h.arena.bytes(), rootOffset, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, buf []byte, node uint32, depth int) {
	indent := strings.Repeat("  ", depth)
	kc := keyCount(buf, node)
	leaf := isLeaf(buf, node)

	hashes := make([]string, kc)
	for i := 0; i < kc; i++ {
		hashes[i] = fmt.Sprintf("%d", hashAt(buf, node, i))
	}

	fmt.Fprintf(sb, "%snode@%d type=%s leaf=%v keys=[%s]\n",
		indent, node, typeName(nodeType(buf, node)), leaf, strings.Join(hashes, ","))

	if leaf {
		return
	}
	for i := 0; i <= kc; i++ {
		dumpNode(sb, buf, childOfsAt(buf, node, i), depth+1)
	}
}
