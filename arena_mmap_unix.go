//go:build unix

package lite3

import "golang.org/x/sys/unix"

//============================================= Lite3 Anonymous Mmap Arena

// mmapAnonymous grows the arena via an anonymous, non-file-backed
// unix.Mmap region rather than make(), mirroring the teacher's
// file-backed growth in IOUtils.go (resizeMmap / Map) but without a
// file descriptor: Lite3's buffer has no on-disk counterpart. Used only
// once a buffer's capacity crosses mmapGrowThreshold, to keep very
// large trees off the GC-scanned heap.
func mmapAnonymous(size uint32) ([]byte, bool) {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, false
	}
	return data, true
}
