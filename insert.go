package lite3

//============================================= Lite3 B-Tree Engine — Insert

// btreeInsert performs the top-down, pre-emptive-split insert of
// spec.md §4.6: any full node encountered on the way down is split
// before the walk continues through it, so a parent is never full when
// a child of it splits. The caller must already have reserved enough
// arena space (via ensureSpace) for up to two node splits plus the new
// entry's payload before calling this — everything below only bumps
// the arena's used offset via reserve, never grows it.
//
// If hash is already present, the existing (node, idx) is returned with
// isNew false. Otherwise a slot is opened at a leaf, hash is written,
// and (node, idx, true) is returned for the caller to fill in kv_ofs
// once the payload itself has been appended.
func btreeInsert(a *arena, root uint32, hash uint32) (node uint32, idx int, isNew bool, err error) {
	defer recoverAsBadMessage(&err)

	buf := a.bytes()
	if keyCount(buf, root) == maxKeys {
		splitRoot(a, root)
	}

	cur := root
	for depth := 0; ; depth++ {
		if depth >= maxTreeHeight {
			return 0, 0, false, newErr(BadMessage, "tree height exceeded %d steps during insert", maxTreeHeight)
		}

		buf = a.bytes()
		i := scanPos(buf, cur, hash)
		if i < keyCount(buf, cur) && hashAt(buf, cur, i) == hash {
			return cur, i, false, nil
		}
		if isLeaf(buf, cur) {
			insertAt(a, cur, i, hash)
			return cur, i, true, nil
		}

		child := childOfsAt(buf, cur, i)
		if keyCount(buf, child) == maxKeys {
			splitChild(a, cur, i, child)
			buf = a.bytes()
			i = scanPos(buf, cur, hash)
			if i < keyCount(buf, cur) && hashAt(buf, cur, i) == hash {
				return cur, i, false, nil
			}
			child = childOfsAt(buf, cur, i)
		}

		cur = child
	}
}

// insertAt shifts entries right from slot i in a leaf, writes hash at
// i, and increments key_count. kv_ofs[i] is left for the caller to fill
// in once the entry's payload has been written to the arena tail.
func insertAt(a *arena, node uint32, i int, hash uint32) {
	buf := a.bytes()
	kc := keyCount(buf, node)
	for j := kc; j > i; j-- {
		setHashAt(buf, node, j, hashAt(buf, node, j-1))
		setKVOfsAt(buf, node, j, kvOfsAt(buf, node, j-1))
	}
	setHashAt(buf, node, i, hash)
	setKeyCount(buf, node, kc+1)
}
