package lite3

//============================================= Lite3 B-Tree Engine — Split

// splitChild splits a full (7-key) child of parent at slot parentIdx,
// per spec.md §4.7 "Interior split". The median entry moves up into
// parent (shifting parent's entries and children right from
// parentIdx); the lower three entries remain in child; the upper three
// entries, plus the rightmost child pointer, move to a freshly
// allocated sibling appended at the aligned buffer tail. parent is
// guaranteed non-full by the pre-emptive-split walk in insert.go, so no
// further splitting is needed here.
func splitChild(a *arena, parent uint32, parentIdx int, child uint32) {
	buf := a.bytes()
	leaf := isLeaf(buf, child)

	medianHash := hashAt(buf, child, 3)
	medianKV := kvOfsAt(buf, child, 3)

	var upHash, upKV [3]uint32
	for k := 0; k < 3; k++ {
		upHash[k] = hashAt(buf, child, 4+k)
		upKV[k] = kvOfsAt(buf, child, 4+k)
	}
	var upChild [4]uint32
	if !leaf {
		for k := 0; k < 4; k++ {
			upChild[k] = childOfsAt(buf, child, 4+k)
		}
	}

	siblingOfs := a.reserve(nodeSize, 4)
	buf = a.bytes()

	initNode(buf, siblingOfs, nodeType(buf, child), 0)
	for k := 0; k < 3; k++ {
		setHashAt(buf, siblingOfs, k, upHash[k])
		setKVOfsAt(buf, siblingOfs, k, upKV[k])
	}
	setKeyCount(buf, siblingOfs, 3)
	if !leaf {
		for k := 0; k < 4; k++ {
			setChildOfsAt(buf, siblingOfs, k, upChild[k])
		}
	}

	// child keeps only its lower three entries; children[0..3] (if any)
	// are already correctly in place.
	setKeyCount(buf, child, 3)

	// shift parent's entries and children right from parentIdx to make
	// room for the promoted median and the new sibling pointer.
	pkc := keyCount(buf, parent)
	for j := pkc; j > parentIdx; j-- {
		setHashAt(buf, parent, j, hashAt(buf, parent, j-1))
		setKVOfsAt(buf, parent, j, kvOfsAt(buf, parent, j-1))
	}
	for j := pkc; j >= parentIdx+1; j-- {
		setChildOfsAt(buf, parent, j+1, childOfsAt(buf, parent, j))
	}

	setHashAt(buf, parent, parentIdx, medianHash)
	setKVOfsAt(buf, parent, parentIdx, medianKV)
	setChildOfsAt(buf, parent, parentIdx+1, siblingOfs)
	setKeyCount(buf, parent, pkc+1)
}

// splitRoot splits a full (7-key) root, per spec.md §4.7 "Root split".
// The root must stay at offset 0: its current contents are copied to a
// newly appended left child, a right sibling is allocated immediately
// after, and the root is reinitialized in place holding only the
// median entry and the two new children. The root's generation and
// subtree-size counter are preserved across the overwrite.
func splitRoot(a *arena, root uint32) {
	buf := a.bytes()
	originalType := nodeType(buf, root)
	originalGen := generation(buf, root)
	originalSubtreeSize := subtreeSize(buf, root)
	leaf := isLeaf(buf, root)

	medianHash := hashAt(buf, root, 3)
	medianKV := kvOfsAt(buf, root, 3)

	var upHash, upKV [3]uint32
	for k := 0; k < 3; k++ {
		upHash[k] = hashAt(buf, root, 4+k)
		upKV[k] = kvOfsAt(buf, root, 4+k)
	}
	var upChild [4]uint32
	if !leaf {
		for k := 0; k < 4; k++ {
			upChild[k] = childOfsAt(buf, root, 4+k)
		}
	}

	leftOfs := a.reserve(nodeSize, 4)
	buf = a.bytes()
	copy(buf[leftOfs:leftOfs+nodeSize], buf[root:root+nodeSize])
	setGenType(buf, leftOfs, originalType, 0)
	setKeyCount(buf, leftOfs, 3)
	setSubtreeSize(buf, leftOfs, 0)

	rightOfs := a.reserve(nodeSize, 4)
	buf = a.bytes()
	initNode(buf, rightOfs, originalType, 0)
	for k := 0; k < 3; k++ {
		setHashAt(buf, rightOfs, k, upHash[k])
		setKVOfsAt(buf, rightOfs, k, upKV[k])
	}
	setKeyCount(buf, rightOfs, 3)
	if !leaf {
		for k := 0; k < 4; k++ {
			setChildOfsAt(buf, rightOfs, k, upChild[k])
		}
	}

	initNode(buf, root, originalType, originalGen)
	setHashAt(buf, root, 0, medianHash)
	setKVOfsAt(buf, root, 0, medianKV)
	setChildOfsAt(buf, root, 0, leftOfs)
	setChildOfsAt(buf, root, 1, rightOfs)
	setKeyCount(buf, root, 1)
	setSubtreeSize(buf, root, originalSubtreeSize)
}
