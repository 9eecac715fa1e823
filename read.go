package lite3

//============================================= Lite3 Value Codec — Read

// readValue decodes the value whose type tag lives at the (already
// value-aligned) offset `at`, recursing into nested nodes, per spec.md
// §4.9.
func readValue(buf []byte, at uint32) (v Value, err error) {
	defer recoverAsBadMessage(&err)

	if uint64(at) >= uint64(len(buf)) {
		return Value{}, newErr(OutOfBounds, "value offset %d outside buffer of length %d", at, len(buf))
	}

	switch tag := buf[at]; tag {
	case valNull:
		return Null(), nil
	case valBool:
		return BoolValue(buf[at+1] != 0), nil
	case valI64:
		return IntValue(readI64(buf, at+1)), nil
	case valF64:
		return FloatValue(readF64(buf, at+1)), nil
	case valBytes:
		length := readU32(buf, at+1)
		start := at + 5
		if uint64(start)+uint64(length) > uint64(len(buf)) {
			return Value{}, newErr(OutOfBounds, "bytes value extends past the end of the buffer")
		}
		out := make([]byte, length)
		copy(out, buf[start:start+length])
		return BytesValue(out), nil
	case valString:
		length := readU32(buf, at+1)
		start := at + 5
		if length == 0 {
			return Value{}, newErr(BadMessage, "string value has zero length (must include the trailing NUL)")
		}
		if uint64(start)+uint64(length) > uint64(len(buf)) {
			return Value{}, newErr(OutOfBounds, "string value extends past the end of the buffer")
		}
		return StringValue(string(buf[start : start+length-1])), nil
	case TypeObject:
		return readObject(buf, at)
	case TypeArray:
		return readArray(buf, at)
	default:
		return Value{}, newErr(BadMessage, "invalid type tag %d during read", tag)
	}
}

// readObject decodes an OBJECT node wholesale into a keyed mapping.
func readObject(buf []byte, node uint32) (Value, error) {
	out := make(map[string]Value, keyCount(buf, node))
	w := newWalker(buf, node)
	for {
		n, idx, ok := w.next()
		if !ok {
			break
		}
		kvOfs := kvOfsAt(buf, n, idx)
		key := string(entryKey(buf, kvOfs))
		valOfs := entryValueOffset(buf, kvOfs, true)
		v, err := readValue(buf, valOfs)
		if err != nil {
			return Value{}, err
		}
		out[key] = v
	}
	return ObjectValue(out), nil
}

// readArray decodes an ARRAY node wholesale into an ordered sequence,
// relying on the dense 0..N-1 index invariant (spec.md §3) to place
// each decoded element directly at its index.
func readArray(buf []byte, node uint32) (Value, error) {
	n := int(subtreeSizeOrCount(buf, node))
	out := make([]Value, n)
	w := newWalker(buf, node)
	for {
		nd, idx, ok := w.next()
		if !ok {
			break
		}
		kvOfs := kvOfsAt(buf, nd, idx)
		valOfs := entryValueOffset(buf, kvOfs, false)
		v, err := readValue(buf, valOfs)
		if err != nil {
			return Value{}, err
		}
		i := hashAt(buf, nd, idx)
		if uint64(i) >= uint64(len(out)) {
			return Value{}, newErr(BadMessage, "array index %d outside dense bound %d", i, len(out))
		}
		out[i] = v
	}
	return ArrayValue(out), nil
}

// subtreeSizeOrCount returns the total entry count of the subtree
// rooted at node. Root nodes carry this directly in size_kc; a nested
// (non-root) node must instead be counted by walking it once, since
// spec.md §3 maintains the running count only at the root.
func subtreeSizeOrCount(buf []byte, node uint32) uint32 {
	if node == rootOffset {
		return subtreeSize(buf, node)
	}
	var n uint32
	w := newWalker(buf, node)
	for {
		_, _, ok := w.next()
		if !ok {
			break
		}
		n++
	}
	return n
}
