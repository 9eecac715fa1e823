package lite3

import "math/big"

//============================================= Lite3 Runtime-Typed Values

// ValueKind discriminates the variant held by a Value, used by the
// generic Set dispatch (spec.md §6) and returned from Get-style
// reads. Modeling the source's dynamically-typed input as this tagged
// variant, per the DESIGN NOTES "Runtime-typed values" guidance
// (spec.md §9).
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindI64
	KindF64
	KindString
	KindBytes
	KindArray
	KindObject
)

// Value is a runtime-typed variant accepted by the generic Set and
// returned by Get, enumeration and iteration. Exactly one field is meaningful,
// selected by Kind.
type Value struct {
	Kind   ValueKind
	Bool   bool
	I64    int64
	F64    float64
	Str    string
	Bytes  []byte
	Array  []Value
	Object map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull} }

// BoolValue wraps a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IntValue wraps a signed 64-bit Value.
func IntValue(v int64) Value { return Value{Kind: KindI64, I64: v} }

// FloatValue wraps a double Value.
func FloatValue(v float64) Value { return Value{Kind: KindF64, F64: v} }

// StringValue wraps a UTF-8 string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BytesValue wraps a raw byte-sequence Value.
func BytesValue(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// ArrayValue wraps an ordered sequence of Values.
func ArrayValue(v []Value) Value { return Value{Kind: KindArray, Array: v} }

// ObjectValue wraps a keyed mapping of Values.
func ObjectValue(v map[string]Value) Value { return Value{Kind: KindObject, Object: v} }

// safeIntegerBound is 2^53-1: the DESIGN NOTES boundary (spec.md §9)
// above and below which a generically-read integer must surface as a
// big.Int rather than a native int64, to preserve the "integer
// straddling the safe-integer boundary" contract of the format this
// was distilled from.
const safeIntegerBound = int64(1)<<53 - 1

// fitsSafeInteger reports whether v round-trips losslessly as a native
// JS-style safe integer.
func fitsSafeInteger(v int64) bool {
	return v >= -safeIntegerBound && v <= safeIntegerBound
}

// BigIntValue wraps a big.Int as an I64 Value. ok is false, and no
// Value is produced, when v does not fit the wire's signed 64-bit
// range. Used by the generic Set dispatch when the caller passes a
// *big.Int (spec.md §6: "big integer -> I64").
func BigIntValue(v *big.Int) (Value, bool) {
	if !v.IsInt64() {
		return Value{}, false
	}
	return IntValue(v.Int64()), true
}
