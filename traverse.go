package lite3

//============================================= Lite3 Traversal

// walkFrame is one level of the explicit stack spec.md §4.10 mandates:
// a node together with the next entry index within it still to visit.
type walkFrame struct {
	node uint32
	idx  int
}

// walker performs an in-order walk of a subtree, yielding entries by
// ascending hash. It carries no generation fence of its own — it is the
// shared engine used both internally (decoding a nested object/array
// wholesale) and by the fenced, externally-visible Iterator below.
type walker struct {
	buf   []byte
	stack []walkFrame
}

// newWalker begins a walk at root: child_ofs[0] is followed down to a
// leaf, pushing a frame at every level, per spec.md §4.10.
func newWalker(buf []byte, root uint32) *walker {
	w := &walker{buf: buf}
	w.pushLeftmost(root)
	return w
}

func (w *walker) pushLeftmost(node uint32) {
	for {
		w.stack = append(w.stack, walkFrame{node: node, idx: 0})
		if isLeaf(w.buf, node) {
			return
		}
		node = childOfsAt(w.buf, node, 0)
	}
}

// next yields the next (node, idx) entry in ascending-hash order. After
// yielding slot idx of an internal node, it descends into the right
// subtree of that slot (child_ofs[idx+1]) before resuming the node's
// own remaining entries, implementing "alternate between yielding the
// current entry and descending into the right subtree of that slot."
func (w *walker) next() (node uint32, idx int, ok bool) {
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		kc := keyCount(w.buf, top.node)
		if top.idx >= kc {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}

		node, idx = top.node, top.idx
		top.idx++
		if !isLeaf(w.buf, node) {
			w.pushLeftmost(childOfsAt(w.buf, node, idx+1))
		}
		return node, idx, true
	}
	return 0, 0, false
}

//============================================= Lite3 Iterator (fenced)

// Entry is one yielded (key or index, value) pair from an Iterator.
type Entry struct {
	// Key holds the decoded object key; empty for array entries.
	Key string
	// Index holds the dense array index; meaningless for object entries.
	Index uint32
	Value Value
	isObj bool
}

// IsObjectEntry reports whether this Entry came from an OBJECT node
// (Key is meaningful) as opposed to an ARRAY node (Index is meaningful).
func (e Entry) IsObjectEntry() bool { return e.isObj }

// Iterator is a fail-fast, read-only in-order iterator over a subtree.
// It snapshots the root's generation counter at construction; any
// mutation of the handle after that point changes the generation, and
// the iterator must not yield further entries (spec.md §4.10, §5).
type Iterator struct {
	h          *Handle
	w          *walker
	generation uint32
	stale      bool
}

// newIterator builds a fenced iterator over the subtree rooted at root.
func newIterator(h *Handle, root uint32) *Iterator {
	return &Iterator{
		h:          h,
		w:          newWalker(h.arena.bytes(), root),
		generation: generation(h.arena.bytes(), rootOffset),
	}
}

// Next advances the iterator and returns the next entry. ok is false
// once the subtree is exhausted or the handle has been mutated since
// construction (in that case err is a non-nil *Error).
func (it *Iterator) Next() (entry Entry, ok bool, err error) {
	if it.stale {
		return Entry{}, false, newErr(InvalidArgument, "iterator is stale: handle was mutated after construction")
	}
	if generation(it.h.arena.bytes(), rootOffset) != it.generation {
		it.stale = true
		return Entry{}, false, newErr(InvalidArgument, "iterator invalidated: handle was mutated during iteration")
	}

	node, idx, has := it.w.next()
	if !has {
		return Entry{}, false, nil
	}

	buf := it.h.arena.bytes()
	kvOfs := kvOfsAt(buf, node, idx)
	isObj := nodeType(buf, node) == TypeObject
	valOfs := entryValueOffset(buf, kvOfs, isObj)

	v, decErr := readValue(buf, valOfs)
	if decErr != nil {
		return Entry{}, false, decErr
	}

	e := Entry{Value: v, isObj: isObj}
	if isObj {
		e.Key = string(entryKey(buf, kvOfs))
	} else {
		e.Index = hashAt(buf, node, idx)
	}

	return e, true, nil
}
