package lite3

//============================================= Lite3 Hash


// djb2 computes Daniel J. Bernstein's multiply-by-33 hash of key,
// seeded at 5381, over the UTF-8 bytes of key excluding any trailing
// NUL terminator. Collisions are not resolved by the core: two distinct
// keys that hash to the same 32-bit value are indistinguishable to the
// B-tree, and the later write silently overwrites the earlier one. This
// is a documented limitation (spec.md §4.2, §9) and is preserved as-is.
func djb2(key []byte) uint32 {
	h := uint32(5381)
	for _, b := range key {
		h = (h*33 + uint32(b))
	}
	return h
}

// arrayIndexHash returns the hash used for an array entry at the given
// dense index: arrays are ordered by their integer index used directly
// as the hash (spec.md §3, "Arrays store a dense index-keyed tree").
func arrayIndexHash(index uint32) uint32 {
	return index
}
