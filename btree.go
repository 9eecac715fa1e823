package lite3

//============================================= Lite3 B-Tree Engine — Find

// maxTreeHeight bounds descent; exceeding it during any walk is a
// corruption signal (spec.md §3, §4.5).
const maxTreeHeight = 9

// scanPos linear-scans hashes[0..key_count) for the first position i
// where hashes[i] >= hash.
func scanPos(buf []byte, node uint32, hash uint32) int {
	kc := keyCount(buf, node)
	i := 0
	for i < kc && hashAt(buf, node, i) < hash {
		i++
	}
	return i
}

// btreeFind descends from root searching for hash, per spec.md §4.5. It
// returns the node and slot index holding hash if present; if hash is
// absent, found is false and idx is the position it would occupy.
func btreeFind(buf []byte, root uint32, hash uint32) (node uint32, idx int, found bool, err error) {
	defer recoverAsBadMessage(&err)

	cur := root
	for steps := 0; steps < maxTreeHeight; steps++ {
		i := scanPos(buf, cur, hash)
		if i < keyCount(buf, cur) && hashAt(buf, cur, i) == hash {
			return cur, i, true, nil
		}
		if isLeaf(buf, cur) {
			return cur, i, false, nil
		}
		cur = childOfsAt(buf, cur, i)
	}

	return 0, 0, false, newErr(BadMessage, "tree height exceeded %d steps during descent", maxTreeHeight)
}
