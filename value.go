package lite3

//============================================= Lite3 Value Codec — Encode

// Value type tags (spec.md §3). OBJECT/ARRAY reuse the node-type
// constants, since a nested value's "tag" is simply the low byte of the
// embedded node's own gen_type word.
const (
	valNull   uint8 = 0
	valBool   uint8 = 1
	valI64    uint8 = 2
	valF64    uint8 = 3
	valBytes  uint8 = 4
	valString uint8 = 5
)

// An entry's value portion always begins at a 4-byte-aligned buffer
// offset, whether it holds a scalar or a nested node. spec.md §4.8 only
// calls out alignment explicitly for the nested-node case ("align to 4
// and append a freshly initialized 96-byte node"); applying the same
// rule uniformly to scalar values removes any ambiguity a reader would
// otherwise face when dispatching a type tag with no out-of-band
// discriminant telling it whether the bytes at a given offset are a
// standalone tag byte or the first byte of a node header (see
// DESIGN.md). Scalars pay at most 3 bytes of padding for this.

// encodeNull returns the encoded NULL value: the tag byte alone.
func encodeNull() []byte {
	return []byte{valNull}
}

// encodeBool returns the encoded BOOL value.
func encodeBool(b bool) []byte {
	v := byte(0)
	if b {
		v = 1
	}
	return []byte{valBool, v}
}

// encodeI64 returns the encoded I64 value.
func encodeI64(v int64) []byte {
	buf := make([]byte, 9)
	buf[0] = valI64
	writeI64(buf, 1, v)
	return buf
}

// encodeF64 returns the encoded F64 value.
func encodeF64(v float64) []byte {
	buf := make([]byte, 9)
	buf[0] = valF64
	writeF64(buf, 1, v)
	return buf
}

// encodeBytes returns the encoded BYTES value: a 4-byte length then the
// raw bytes.
func encodeBytes(b []byte) []byte {
	buf := make([]byte, 1+4+len(b))
	buf[0] = valBytes
	writeU32(buf, 1, uint32(len(b)))
	copy(buf[5:], b)
	return buf
}

// encodeString returns the encoded STRING value: a 4-byte length
// (including the trailing NUL), the UTF-8 bytes, then the NUL.
// encodeString panics (recovered at the exported call boundary) if s is
// not valid UTF-8.
func encodeString(s string) []byte {
	raw := encodeUTF8(s)
	length := uint32(len(raw)) + 1
	buf := make([]byte, 1+4+int(length))
	buf[0] = valString
	writeU32(buf, 1, length)
	copy(buf[5:], raw)
	buf[5+len(raw)] = 0
	return buf
}

// encodeScalar dispatches a Value to its encoded scalar bytes. Panics
// (recovered at the boundary) if v holds an ARRAY or OBJECT — those are
// nested-node values and are never encoded through this path.
func encodeScalar(v Value) []byte {
	switch v.Kind {
	case KindNull:
		return encodeNull()
	case KindBool:
		return encodeBool(v.Bool)
	case KindI64:
		return encodeI64(v.I64)
	case KindF64:
		return encodeF64(v.F64)
	case KindString:
		return encodeString(v.Str)
	case KindBytes:
		return encodeBytes(v.Bytes)
	default:
		panic("encodeScalar called on a non-scalar Value")
	}
}

//============================================= Lite3 Value Codec — In-Place Sizing

// valueTotalSize returns the full number of bytes the value starting at
// the (already value-aligned) offset `at` occupies, dispatching on its
// type tag. This is "the size of a value in place" of spec.md §4.8:
// 0 (NULL) + 1 tag byte, 1 (BOOL) + tag, 8 (I64/F64) + tag,
// 4+length (BYTES/STRING) + tag, or 96 (nested node, which carries no
// separate tag byte).
func valueTotalSize(buf []byte, at uint32) uint32 {
	tag := buf[at]
	switch tag {
	case valNull:
		return 1
	case valBool:
		return 2
	case valI64, valF64:
		return 9
	case valBytes:
		length := readU32(buf, at+1)
		return 1 + 4 + length
	case valString:
		length := readU32(buf, at+1)
		return 1 + 4 + length
	case TypeObject, TypeArray:
		return nodeSize
	default:
		panic("invalid type tag during read")
	}
}

// entryValueOffset returns the aligned offset of the value portion of
// the entry whose payload begins at kvOfs. For OBJECT entries the
// payload begins with a key tag + key bytes + NUL; for ARRAY entries
// there is no key and kvOfs already is the value offset.
func entryValueOffset(buf []byte, kvOfs uint32, isObject bool) uint32 {
	if !isObject {
		return kvOfs
	}
	keyLen, tagSize := readKeyTag(buf, kvOfs)
	return alignOffset(kvOfs+tagSize+keyLen, 4)
}

// entryKey decodes the key bytes (excluding the trailing NUL) of an
// OBJECT entry whose payload begins at kvOfs.
func entryKey(buf []byte, kvOfs uint32) []byte {
	keyLen, tagSize := readKeyTag(buf, kvOfs)
	return buf[kvOfs+tagSize : kvOfs+tagSize+keyLen-1]
}
