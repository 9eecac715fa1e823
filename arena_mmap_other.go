//go:build !unix

package lite3

//============================================= Lite3 Anonymous Mmap Arena (fallback)

// mmapAnonymous is unavailable on non-unix platforms; the arena falls
// back to make() unconditionally.
func mmapAnonymous(size uint32) ([]byte, bool) {
	return nil, false
}
