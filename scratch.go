package lite3

import "sync"

//============================================= Lite3 Scratch Buffer Pool

// scratchPool recycles the temporary byte slices through which an
// encoded scalar value (not its key) is staged by safeEncodeScalar
// before it is copied out and written into the arena. The staging does
// not remove the per-encode allocations made by encodeScalar and by the
// final copy. This adapts the teacher's NodePool.go (a sync.Pool of live
// *MariINode/*MariLNode structs recycled across path-copy operations)
// to Lite3's shape: there are no live node structs here to pool, only
// short-lived byte buffers built while encoding a value.
var scratchPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 64)
		return &buf
	},
}

// getScratch returns a zero-length byte slice with spare capacity from
// the pool.
func getScratch() *[]byte {
	b := scratchPool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

// putScratch returns a scratch buffer to the pool.
func putScratch(b *[]byte) {
	scratchPool.Put(b)
}
