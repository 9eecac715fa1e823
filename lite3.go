package lite3

//============================================= Lite3 Handle

// Config controls a Handle's initial allocation, mirroring the
// teacher's MariOpts (Mari.go): a small struct of tuning knobs passed
// once to the constructor rather than a long parameter list.
type Config struct {
	// Capacity is the arena's initial byte capacity. Zero selects
	// defaultCapacity.
	Capacity uint32
	// UseAnonymousMmap grows the arena via an anonymous unix.Mmap region
	// instead of make() once a growth step crosses mmapGrowThreshold.
	// Ignored on non-unix builds (see arena_mmap_other.go).
	UseAnonymousMmap bool
}

// Handle is the in-memory working copy of a Lite3 buffer: the arena
// plus every operation spec.md §6 exposes against it. It holds no
// locks and is not safe for concurrent use, matching spec.md §5
// "single-threaded, no locking."
type Handle struct {
	arena *arena
}

// New allocates an empty Handle. The root node occupies offset 0 from
// the start, zeroed and not yet a valid OBJECT or ARRAY; InitObject or
// InitArray must be called before any other operation.
func New(cfg Config) *Handle {
	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = defaultCapacity
	}
	a := newArena(capacity, arenaOpts{useAnonymousMmap: cfg.UseAnonymousMmap})
	a.reserve(nodeSize, 4)
	return &Handle{arena: a}
}

// FromBuffer wraps an existing encoded buffer without validating it:
// the caller is trusted to have produced (or faithfully copied) a
// well-formed Lite3 buffer, per spec.md §6 "no validation is performed
// on import."
func FromBuffer(buf []byte, length uint32) *Handle {
	return &Handle{arena: wrapArena(buf, length)}
}

// Buffer returns a view of the handle's used bytes: the encoded form,
// ready to be copied out or persisted by the caller.
func (h *Handle) Buffer() []byte {
	return h.arena.bytes()
}

//============================================= Initialization

// InitObject (re)initializes the root as an empty OBJECT. Must be
// called exactly once before any other mutation; further calls are
// permitted and reinitialize the root in place, discarding its prior
// contents (spec.md §6).
func (h *Handle) InitObject() error { return h.initRoot(TypeObject) }

// InitArray (re)initializes the root as an empty ARRAY. See InitObject.
func (h *Handle) InitArray() error { return h.initRoot(TypeArray) }

func (h *Handle) initRoot(typ uint8) error {
	buf := h.arena.bytes()
	gen := (generation(buf, rootOffset) + 1) & genMask
	initNode(buf, rootOffset, typ, gen)
	return nil
}

func (h *Handle) requireInitialized() error {
	t := nodeType(h.arena.bytes(), rootOffset)
	if t != TypeObject && t != TypeArray {
		return newErr(InvalidArgument, "handle is uninitialized: call InitObject or InitArray first")
	}
	return nil
}

func (h *Handle) requireType(nodeOffset uint32, want uint8) error {
	if err := h.requireInitialized(); err != nil {
		return err
	}
	got := nodeType(h.arena.bytes(), nodeOffset)
	if got != want {
		return newErr(InvalidArgument, "node at offset %d is not a %s", nodeOffset, typeName(want))
	}
	return nil
}

func typeName(t uint8) string {
	switch t {
	case TypeObject:
		return "OBJECT"
	case TypeArray:
		return "ARRAY"
	default:
		return "unknown"
	}
}

func incrementSubtreeSizeIfRoot(buf []byte, nodeOffset uint32) {
	if nodeOffset == rootOffset {
		setSubtreeSize(buf, rootOffset, subtreeSize(buf, rootOffset)+1)
	}
}

//============================================= Object setters

// SetNull sets key to NULL in the root object. See SetNullIn.
func (h *Handle) SetNull(key string) error { return h.SetNullIn(rootOffset, key) }

// SetNullIn sets key to NULL in the object at nodeOffset.
func (h *Handle) SetNullIn(nodeOffset uint32, key string) error {
	return h.setScalar(nodeOffset, key, Null())
}

// SetBool sets key to a BOOL in the root object. See SetBoolIn.
func (h *Handle) SetBool(key string, v bool) error { return h.SetBoolIn(rootOffset, key, v) }

// SetBoolIn sets key to a BOOL in the object at nodeOffset.
func (h *Handle) SetBoolIn(nodeOffset uint32, key string, v bool) error {
	return h.setScalar(nodeOffset, key, BoolValue(v))
}

// SetI64 sets key to an I64 in the root object. See SetI64In.
func (h *Handle) SetI64(key string, v int64) error { return h.SetI64In(rootOffset, key, v) }

// SetI64In sets key to an I64 in the object at nodeOffset.
func (h *Handle) SetI64In(nodeOffset uint32, key string, v int64) error {
	return h.setScalar(nodeOffset, key, IntValue(v))
}

// SetF64 sets key to an F64 in the root object. See SetF64In.
func (h *Handle) SetF64(key string, v float64) error { return h.SetF64In(rootOffset, key, v) }

// SetF64In sets key to an F64 in the object at nodeOffset.
func (h *Handle) SetF64In(nodeOffset uint32, key string, v float64) error {
	return h.setScalar(nodeOffset, key, FloatValue(v))
}

// SetString sets key to a STRING in the root object. See SetStringIn.
func (h *Handle) SetString(key string, v string) error { return h.SetStringIn(rootOffset, key, v) }

// SetStringIn sets key to a STRING in the object at nodeOffset.
func (h *Handle) SetStringIn(nodeOffset uint32, key string, v string) error {
	return h.setScalar(nodeOffset, key, StringValue(v))
}

// SetBytes sets key to BYTES in the root object. See SetBytesIn.
func (h *Handle) SetBytes(key string, v []byte) error { return h.SetBytesIn(rootOffset, key, v) }

// SetBytesIn sets key to BYTES in the object at nodeOffset.
func (h *Handle) SetBytesIn(nodeOffset uint32, key string, v []byte) error {
	return h.setScalar(nodeOffset, key, BytesValue(v))
}

// Set auto-dispatches v by its Kind into the root object. See SetIn.
func (h *Handle) Set(key string, v Value) error { return h.SetIn(rootOffset, key, v) }

// SetIn auto-dispatches v by its Kind (spec.md §6 "generic set"): a
// scalar Kind is written directly; KindObject/KindArray recursively
// populate a freshly created nested node.
func (h *Handle) SetIn(nodeOffset uint32, key string, v Value) error {
	switch v.Kind {
	case KindNull, KindBool, KindI64, KindF64, KindString, KindBytes:
		return h.setScalar(nodeOffset, key, v)
	case KindObject:
		nested, err := h.SetObjectIn(nodeOffset, key)
		if err != nil {
			return err
		}
		for k, vv := range v.Object {
			if err := h.SetIn(nested, k, vv); err != nil {
				return err
			}
		}
		return nil
	case KindArray:
		nested, err := h.SetArrayIn(nodeOffset, key)
		if err != nil {
			return err
		}
		for _, vv := range v.Array {
			if err := h.AppendIn(nested, vv); err != nil {
				return err
			}
		}
		return nil
	default:
		return newErr(InvalidArgument, "unsupported value kind %d", v.Kind)
	}
}

// setScalar implements set-on-key for every scalar type: validate,
// size the worst case (up to two splits plus the new payload), bump
// the root's generation, insert by hash, then either overwrite the
// existing value in place or append a fresh key/value pair and
// repoint kv_ofs (spec.md §4.6, §4.8).
func (h *Handle) setScalar(nodeOffset uint32, key string, v Value) error {
	if err := h.requireType(nodeOffset, TypeObject); err != nil {
		return err
	}
	encoded, err := safeEncodeScalar(v)
	if err != nil {
		return err
	}

	keyBytes := []byte(key)
	keyLen := uint32(len(keyBytes)) + 1
	margin := 2*nodeSize + keyTagSize(keyLen) + keyLen + 4 + uint32(len(encoded)) + 4
	if err := h.arena.ensureSpace(margin); err != nil {
		return err
	}

	bumpGeneration(h.arena.bytes(), rootOffset)

	hash := djb2(keyBytes)
	node, idx, isNew, err := btreeInsert(h.arena, nodeOffset, hash)
	if err != nil {
		return err
	}

	buf := h.arena.bytes()
	if isNew {
		kvOfs := appendObjectEntry(h.arena, keyBytes, encoded)
		setKVOfsAt(h.arena.bytes(), node, idx, kvOfs)
		incrementSubtreeSizeIfRoot(h.arena.bytes(), nodeOffset)
		return nil
	}

	kvOfs := kvOfsAt(buf, node, idx)
	valOfs := entryValueOffset(buf, kvOfs, true)
	oldSize := valueTotalSize(buf, valOfs)
	if uint32(len(encoded)) <= oldSize {
		copy(buf[valOfs:valOfs+uint32(len(encoded))], encoded)
		return nil
	}

	newKVOfs := appendObjectEntry(h.arena, keyBytes, encoded)
	setKVOfsAt(h.arena.bytes(), node, idx, newKVOfs)
	return nil
}

// appendObjectEntry appends a key tag, the key bytes, a trailing NUL,
// and the already-encoded value (4-byte aligned) at the arena tail,
// returning the entry's kv_ofs.
func appendObjectEntry(a *arena, key []byte, encoded []byte) uint32 {
	keyLen := uint32(len(key)) + 1
	tagSize := keyTagSize(keyLen)

	start := a.reserve(tagSize+keyLen, 1)
	buf := a.bytes()
	writeKeyTag(buf, start, keyLen)
	copy(buf[start+tagSize:], key)
	buf[start+tagSize+uint32(len(key))] = 0

	valOfs := a.reserve(uint32(len(encoded)), 4)
	buf = a.bytes()
	copy(buf[valOfs:], encoded)

	return start
}

// safeEncodeScalar validates and encodes v before any buffer mutation
// begins, so a malformed value (non-UTF-8 string) never leaves a
// mutation half-applied. The encoded form is copied through a pooled
// scratch buffer (scratch.go) and then out to a freshly allocated,
// right-sized slice; encodeScalar itself still allocates its result on
// every call, so each encode makes at least two allocations.
func safeEncodeScalar(v Value) (encoded []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newErr(InvalidArgument, "%v", r)
		}
	}()
	scratch := getScratch()
	defer putScratch(scratch)
	*scratch = append(*scratch, encodeScalar(v)...)
	encoded = make([]byte, len(*scratch))
	copy(encoded, *scratch)
	return
}

//============================================= Nested object/array setters

// SetObject creates (or reinitializes) key as a nested OBJECT in the
// root object, returning its node offset. See SetObjectIn.
func (h *Handle) SetObject(key string) (uint32, error) { return h.SetObjectIn(rootOffset, key) }

// SetObjectIn creates (or reinitializes) key as a nested OBJECT in the
// object at nodeOffset, returning the new node's offset.
func (h *Handle) SetObjectIn(nodeOffset uint32, key string) (uint32, error) {
	return h.setNested(nodeOffset, key, TypeObject)
}

// SetArray creates (or reinitializes) key as a nested ARRAY in the
// root object, returning its node offset. See SetArrayIn.
func (h *Handle) SetArray(key string) (uint32, error) { return h.SetArrayIn(rootOffset, key) }

// SetArrayIn creates (or reinitializes) key as a nested ARRAY in the
// object at nodeOffset, returning the new node's offset.
func (h *Handle) SetArrayIn(nodeOffset uint32, key string) (uint32, error) {
	return h.setNested(nodeOffset, key, TypeArray)
}

// setNested implements set-object/set-array: if key already names a
// nested node of any kind, it is reinitialized in place (its prior
// contents are discarded — spec.md is silent on this case; see
// DESIGN.md); if key is new or previously held a scalar, a fresh node
// is appended at the arena tail and kv_ofs is (re)pointed at it.
func (h *Handle) setNested(nodeOffset uint32, key string, typ uint8) (uint32, error) {
	if err := h.requireType(nodeOffset, TypeObject); err != nil {
		return 0, err
	}

	keyBytes := []byte(key)
	keyLen := uint32(len(keyBytes)) + 1
	margin := 2*nodeSize + keyTagSize(keyLen) + keyLen + 4 + nodeSize + 4
	if err := h.arena.ensureSpace(margin); err != nil {
		return 0, err
	}

	bumpGeneration(h.arena.bytes(), rootOffset)

	hash := djb2(keyBytes)
	node, idx, isNew, err := btreeInsert(h.arena, nodeOffset, hash)
	if err != nil {
		return 0, err
	}

	buf := h.arena.bytes()
	if !isNew {
		kvOfs := kvOfsAt(buf, node, idx)
		valOfs := entryValueOffset(buf, kvOfs, true)
		oldTag := buf[valOfs]
		if oldTag == TypeObject || oldTag == TypeArray {
			initNode(buf, valOfs, typ, 0)
			return valOfs, nil
		}
	}

	kvOfs, childNodeOfs := appendObjectNestedEntry(h.arena, keyBytes, typ)
	setKVOfsAt(h.arena.bytes(), node, idx, kvOfs)
	if isNew {
		incrementSubtreeSizeIfRoot(h.arena.bytes(), nodeOffset)
	}
	return childNodeOfs, nil
}

// appendObjectNestedEntry appends a key tag, the key bytes, a trailing
// NUL, and a freshly initialized 96-byte node (4-byte aligned) at the
// arena tail (spec.md §4.8), returning the entry's kv_ofs and the new
// node's own offset.
func appendObjectNestedEntry(a *arena, key []byte, typ uint8) (kvOfs uint32, nodeOfs uint32) {
	keyLen := uint32(len(key)) + 1
	tagSize := keyTagSize(keyLen)

	start := a.reserve(tagSize+keyLen, 1)
	buf := a.bytes()
	writeKeyTag(buf, start, keyLen)
	copy(buf[start+tagSize:], key)
	buf[start+tagSize+uint32(len(key))] = 0

	nodeOfs = a.reserve(nodeSize, 4)
	buf = a.bytes()
	initNode(buf, nodeOfs, typ, 0)

	return start, nodeOfs
}

//============================================= Array appends

// Append auto-dispatches v by its Kind into the root array. See AppendIn.
func (h *Handle) Append(v Value) error { return h.AppendIn(rootOffset, v) }

// AppendIn auto-dispatches v by its Kind (spec.md §6 "append-value")
// into the array at nodeOffset: a scalar Kind is appended directly;
// KindObject/KindArray append a freshly created nested node and then
// recursively populate it.
func (h *Handle) AppendIn(nodeOffset uint32, v Value) error {
	switch v.Kind {
	case KindNull, KindBool, KindI64, KindF64, KindString, KindBytes:
		return h.appendScalar(nodeOffset, v)
	case KindObject:
		nested, err := h.AppendObjectIn(nodeOffset)
		if err != nil {
			return err
		}
		for k, vv := range v.Object {
			if err := h.SetIn(nested, k, vv); err != nil {
				return err
			}
		}
		return nil
	case KindArray:
		nested, err := h.AppendArrayIn(nodeOffset)
		if err != nil {
			return err
		}
		for _, vv := range v.Array {
			if err := h.AppendIn(nested, vv); err != nil {
				return err
			}
		}
		return nil
	default:
		return newErr(InvalidArgument, "unsupported value kind %d", v.Kind)
	}
}

// appendScalar implements append-value for scalars: the new element's
// index is the array's current size, used directly as its hash
// (spec.md §3), so an append can never collide with an existing slot.
func (h *Handle) appendScalar(nodeOffset uint32, v Value) error {
	if err := h.requireType(nodeOffset, TypeArray); err != nil {
		return err
	}
	encoded, err := safeEncodeScalar(v)
	if err != nil {
		return err
	}

	margin := 2*nodeSize + uint32(len(encoded)) + 4
	if err := h.arena.ensureSpace(margin); err != nil {
		return err
	}

	bumpGeneration(h.arena.bytes(), rootOffset)

	index := subtreeSizeOrCount(h.arena.bytes(), nodeOffset)
	node, idx, isNew, err := btreeInsert(h.arena, nodeOffset, arrayIndexHash(index))
	if err != nil {
		return err
	}
	if !isNew {
		return newErr(BadMessage, "array append collided with an existing index %d", index)
	}

	kvOfs := appendArrayEntry(h.arena, encoded)
	setKVOfsAt(h.arena.bytes(), node, idx, kvOfs)
	incrementSubtreeSizeIfRoot(h.arena.bytes(), nodeOffset)
	return nil
}

// appendArrayEntry appends an already-encoded scalar value (4-byte
// aligned, no key) at the arena tail, returning its kv_ofs.
func appendArrayEntry(a *arena, encoded []byte) uint32 {
	valOfs := a.reserve(uint32(len(encoded)), 4)
	buf := a.bytes()
	copy(buf[valOfs:], encoded)
	return valOfs
}

// AppendObject appends a nested OBJECT to the root array, returning
// its node offset. See AppendObjectIn.
func (h *Handle) AppendObject() (uint32, error) { return h.AppendObjectIn(rootOffset) }

// AppendObjectIn appends a nested OBJECT to the array at nodeOffset,
// returning the new node's offset.
func (h *Handle) AppendObjectIn(nodeOffset uint32) (uint32, error) {
	return h.appendNested(nodeOffset, TypeObject)
}

// AppendArray appends a nested ARRAY to the root array, returning its
// node offset. See AppendArrayIn.
func (h *Handle) AppendArray() (uint32, error) { return h.AppendArrayIn(rootOffset) }

// AppendArrayIn appends a nested ARRAY to the array at nodeOffset,
// returning the new node's offset.
func (h *Handle) AppendArrayIn(nodeOffset uint32) (uint32, error) {
	return h.appendNested(nodeOffset, TypeArray)
}

func (h *Handle) appendNested(nodeOffset uint32, typ uint8) (uint32, error) {
	if err := h.requireType(nodeOffset, TypeArray); err != nil {
		return 0, err
	}

	margin := 2*nodeSize + nodeSize + 4
	if err := h.arena.ensureSpace(margin); err != nil {
		return 0, err
	}

	bumpGeneration(h.arena.bytes(), rootOffset)

	index := subtreeSizeOrCount(h.arena.bytes(), nodeOffset)
	node, idx, isNew, err := btreeInsert(h.arena, nodeOffset, arrayIndexHash(index))
	if err != nil {
		return 0, err
	}
	if !isNew {
		return 0, newErr(BadMessage, "array append collided with an existing index %d", index)
	}

	nodeOfs := h.arena.reserve(nodeSize, 4)
	buf := h.arena.bytes()
	initNode(buf, nodeOfs, typ, 0)
	setKVOfsAt(h.arena.bytes(), node, idx, nodeOfs)
	incrementSubtreeSizeIfRoot(h.arena.bytes(), nodeOffset)
	return nodeOfs, nil
}

//============================================= Reads

// Get looks up key in the root object. See GetIn.
func (h *Handle) Get(key string) (Value, bool, error) { return h.GetIn(rootOffset, key) }

// GetIn looks up key in the object at nodeOffset. ok is false if key
// is absent; err is non-nil if the handle is uninitialized, the node at
// nodeOffset is not an OBJECT, or corruption is detected.
func (h *Handle) GetIn(nodeOffset uint32, key string) (Value, bool, error) {
	if err := h.requireType(nodeOffset, TypeObject); err != nil {
		return Value{}, false, err
	}
	buf := h.arena.bytes()
	node, idx, found, err := btreeFind(buf, nodeOffset, djb2([]byte(key)))
	if err != nil {
		return Value{}, false, err
	}
	if !found {
		return Value{}, false, nil
	}
	kvOfs := kvOfsAt(buf, node, idx)
	valOfs := entryValueOffset(buf, kvOfs, true)
	v, err := readValue(buf, valOfs)
	if err != nil {
		return Value{}, false, err
	}
	return v, true, nil
}

// GetAt looks up index in the root array. See GetAtIn.
func (h *Handle) GetAt(index uint32) (Value, bool, error) { return h.GetAtIn(rootOffset, index) }

// GetAtIn looks up index in the array at nodeOffset. ok is false if
// index is out of range; err is non-nil if the handle is uninitialized,
// the node at nodeOffset is not an ARRAY, or corruption is detected.
func (h *Handle) GetAtIn(nodeOffset uint32, index uint32) (Value, bool, error) {
	if err := h.requireType(nodeOffset, TypeArray); err != nil {
		return Value{}, false, err
	}
	buf := h.arena.bytes()
	node, idx, found, err := btreeFind(buf, nodeOffset, arrayIndexHash(index))
	if err != nil {
		return Value{}, false, err
	}
	if !found {
		return Value{}, false, nil
	}
	kvOfs := kvOfsAt(buf, node, idx)
	valOfs := entryValueOffset(buf, kvOfs, false)
	v, err := readValue(buf, valOfs)
	if err != nil {
		return Value{}, false, err
	}
	return v, true, nil
}

// Has reports whether key is present in the root object. See HasIn.
func (h *Handle) Has(key string) (bool, error) { return h.HasIn(rootOffset, key) }

// HasIn reports whether key is present in the object at nodeOffset.
func (h *Handle) HasIn(nodeOffset uint32, key string) (bool, error) {
	if err := h.requireType(nodeOffset, TypeObject); err != nil {
		return false, err
	}
	_, _, found, err := btreeFind(h.arena.bytes(), nodeOffset, djb2([]byte(key)))
	return found, err
}

// Size returns the entry count of the root. See SizeIn.
func (h *Handle) Size() (uint32, error) { return h.SizeIn(rootOffset) }

// SizeIn returns the entry count of the OBJECT or ARRAY at nodeOffset:
// a direct field read at the true root, or a one-time walk of the
// subtree otherwise (spec.md §3: the running count is maintained only
// at the root).
func (h *Handle) SizeIn(nodeOffset uint32) (uint32, error) {
	if err := h.requireInitialized(); err != nil {
		return 0, err
	}
	return subtreeSizeOrCount(h.arena.bytes(), nodeOffset), nil
}

// Type returns the root's node type: TypeObject or TypeArray. See TypeIn.
func (h *Handle) Type() (uint8, error) { return h.TypeIn(rootOffset) }

// TypeIn returns the node type (TypeObject or TypeArray) at nodeOffset.
func (h *Handle) TypeIn(nodeOffset uint32) (uint8, error) {
	t := nodeType(h.arena.bytes(), nodeOffset)
	if t != TypeObject && t != TypeArray {
		return 0, newErr(InvalidArgument, "node at offset %d is not initialized as OBJECT or ARRAY", nodeOffset)
	}
	return t, nil
}

//============================================= Enumeration

// Keys returns every key of the root object, in ascending-hash order.
// See KeysIn.
func (h *Handle) Keys() ([]string, error) { return h.KeysIn(rootOffset) }

// KeysIn returns every key of the object at nodeOffset, in
// ascending-hash order (not insertion order — spec.md §3, §4.10).
func (h *Handle) KeysIn(nodeOffset uint32) ([]string, error) {
	if err := h.requireType(nodeOffset, TypeObject); err != nil {
		return nil, err
	}
	buf := h.arena.bytes()
	var out []string
	w := newWalker(buf, nodeOffset)
	for {
		node, idx, ok := w.next()
		if !ok {
			break
		}
		out = append(out, string(entryKey(buf, kvOfsAt(buf, node, idx))))
	}
	return out, nil
}

// Values returns every value of the root object or array, in
// ascending-hash order. See ValuesIn.
func (h *Handle) Values() ([]Value, error) { return h.ValuesIn(rootOffset) }

// ValuesIn returns every value of the OBJECT or ARRAY at nodeOffset.
func (h *Handle) ValuesIn(nodeOffset uint32) ([]Value, error) {
	if err := h.requireInitialized(); err != nil {
		return nil, err
	}
	buf := h.arena.bytes()
	isObj := nodeType(buf, nodeOffset) == TypeObject
	var out []Value
	w := newWalker(buf, nodeOffset)
	for {
		node, idx, ok := w.next()
		if !ok {
			break
		}
		valOfs := entryValueOffset(buf, kvOfsAt(buf, node, idx), isObj)
		v, err := readValue(buf, valOfs)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Entries returns every (key-or-index, value) pair of the root object
// or array, in ascending-hash order. See EntriesIn.
func (h *Handle) Entries() ([]Entry, error) { return h.EntriesIn(rootOffset) }

// EntriesIn returns every (key-or-index, value) pair of the OBJECT or
// ARRAY at nodeOffset. Unlike NewIteratorIn, this is a one-shot
// snapshot with no generation fence.
func (h *Handle) EntriesIn(nodeOffset uint32) ([]Entry, error) {
	if err := h.requireInitialized(); err != nil {
		return nil, err
	}
	buf := h.arena.bytes()
	isObj := nodeType(buf, nodeOffset) == TypeObject
	var out []Entry
	w := newWalker(buf, nodeOffset)
	for {
		node, idx, ok := w.next()
		if !ok {
			break
		}
		kvOfs := kvOfsAt(buf, node, idx)
		valOfs := entryValueOffset(buf, kvOfs, isObj)
		v, err := readValue(buf, valOfs)
		if err != nil {
			return nil, err
		}
		e := Entry{Value: v, isObj: isObj}
		if isObj {
			e.Key = string(entryKey(buf, kvOfs))
		} else {
			e.Index = hashAt(buf, node, idx)
		}
		out = append(out, e)
	}
	return out, nil
}

// NewIterator returns a fenced iterator over the root. See NewIteratorIn.
func (h *Handle) NewIterator() *Iterator { return h.NewIteratorIn(rootOffset) }

// NewIteratorIn returns a fenced iterator over the OBJECT or ARRAY at
// nodeOffset (spec.md §4.10): it fails fast once the handle is mutated.
func (h *Handle) NewIteratorIn(nodeOffset uint32) *Iterator {
	return newIterator(h, nodeOffset)
}
