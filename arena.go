package lite3

//============================================= Lite3 Buffer Arena

// maxArenaLen is the largest buffer Lite3 will ever grow to, per
// spec.md §3: "Maximum buffer length is 2^32-1 bytes."
const maxArenaLen = uint64(1)<<32 - 1

// defaultCapacity is used when a caller does not specify one to New.
const defaultCapacity = 1024

// arena is a bump-allocated, growable byte region. Offsets only ever
// increase; nothing is ever freed (spec.md §4.4). This plays the same
// role the teacher's memory-mapped file plays in IOUtils.go/Mari.go,
// minus the file backing: Lite3's buffer lives purely in memory and is
// destroyed as a whole (spec.md §2, §5).
type arena struct {
	data []byte
	used uint32
	opts arenaOpts
}

type arenaOpts struct {
	// useAnonymousMmap selects growth via an anonymous (non-file-backed)
	// unix.Mmap region instead of make([]byte, ...), once the requested
	// capacity crosses mmapGrowThreshold. See arena_mmap_unix.go, ported
	// from the teacher's IOUtils.go resizeMmap.
	useAnonymousMmap bool
}

// mmapGrowThreshold is the size above which an anonymous-mmap-backed
// arena switches from make() to unix.Mmap, avoiding large GC-scanned
// heap allocations for big trees.
const mmapGrowThreshold = 1 << 20

// newArena allocates a fresh arena with the given initial capacity.
func newArena(capacity uint32, opts arenaOpts) *arena {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	a := &arena{opts: opts}
	a.data = a.allocate(capacity)
	return a
}

// wrapArena builds an arena around an existing byte region (the
// FromBuffer ingress path). No validation is performed on import: the
// consumer must trust the producer (spec.md §6).
func wrapArena(buf []byte, used uint32) *arena {
	return &arena{data: buf, used: used}
}

// bytes returns a view of the used portion of the arena.
func (a *arena) bytes() []byte {
	return a.data[:a.used]
}

// ensureSpace grows the backing storage, if needed, so that at least n
// more bytes can be written starting at a.used. Growth is geometric: at
// least doubling, at least used+n (spec.md §4.4). No freelist, no
// compaction.
func (a *arena) ensureSpace(n uint32) error {
	need := uint64(a.used) + uint64(n)
	if need > maxArenaLen {
		return newErr(NoBufferSpace, "requested %d bytes would exceed the %d byte maximum", need, maxArenaLen)
	}
	if need <= uint64(len(a.data)) {
		return nil
	}

	newCap := uint64(len(a.data)) * 2
	if newCap < need {
		newCap = need
	}
	if newCap > maxArenaLen {
		newCap = maxArenaLen
	}

	grown := a.allocate(uint32(newCap))
	copy(grown, a.data[:a.used])
	a.data = grown
	return nil
}

// reserve aligns a.used to align (a power of two) and bumps it by n,
// returning the aligned offset the caller should write n bytes at. The
// caller must have already called ensureSpace with enough margin.
func (a *arena) reserve(n uint32, align uint32) uint32 {
	at := alignOffset(a.used, align)
	a.used = at + n
	return at
}

// allocate returns a freshly zeroed byte slice of the given size, using
// an anonymous mmap region instead of make() once the size crosses
// mmapGrowThreshold, if the arena was configured to do so.
func (a *arena) allocate(size uint32) []byte {
	if a.opts.useAnonymousMmap && size >= mmapGrowThreshold {
		if mapped, ok := mmapAnonymous(size); ok {
			return mapped
		}
	}
	return make([]byte, size)
}
