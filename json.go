package lite3

import (
	"bytes"
	"encoding/json"
	"math/big"
)

//============================================= Lite3 / JSON Bridge

// ToJSON decodes the root into a plain interface{} tree: map[string]
// interface{} for OBJECT, []interface{} for ARRAY, and the natural Go
// scalar for everything else. See ToJSONIn.
func (h *Handle) ToJSON() (interface{}, error) { return h.ToJSONIn(rootOffset) }

// ToJSONIn decodes the OBJECT or ARRAY at nodeOffset into a plain
// interface{} tree, matching encoding/json's own decode-to-interface{}
// shape so callers can treat a Lite3 tree exactly like a parsed JSON
// document.
func (h *Handle) ToJSONIn(nodeOffset uint32) (interface{}, error) {
	if err := h.requireInitialized(); err != nil {
		return nil, err
	}
	v, err := readValue(h.arena.bytes(), nodeOffset)
	if err != nil {
		return nil, err
	}
	return valueToInterface(v), nil
}

// valueToInterface converts a Value to the plain interface{} shape
// ToJSON promises, surfacing I64 as a native int64 when it round-trips
// within the safe-integer bound and as a *big.Int otherwise (spec.md
// §9: "an integer straddling the safe-integer boundary").
func valueToInterface(v Value) interface{} {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindI64:
		if fitsSafeInteger(v.I64) {
			return v.I64
		}
		return big.NewInt(v.I64)
	case KindF64:
		return v.F64
	case KindString:
		return v.Str
	case KindBytes:
		out := make([]byte, len(v.Bytes))
		copy(out, v.Bytes)
		return out
	case KindArray:
		out := make([]interface{}, len(v.Array))
		for i, elem := range v.Array {
			out[i] = valueToInterface(elem)
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.Object))
		for k, elem := range v.Object {
			out[k] = valueToInterface(elem)
		}
		return out
	default:
		return nil
	}
}

// FromJSON builds a fresh Handle from a plain interface{} tree (as
// produced by encoding/json's Unmarshal-to-interface{}, or by ToJSON).
// root must be a map[string]interface{} or []interface{}; anything
// else is rejected since a Lite3 buffer's root must be an OBJECT or
// ARRAY (spec.md §3).
func FromJSON(root interface{}, cfg Config) (*Handle, error) {
	h := New(cfg)
	switch r := root.(type) {
	case map[string]interface{}:
		if err := h.InitObject(); err != nil {
			return nil, err
		}
		for k, v := range r {
			val, err := interfaceToValue(v)
			if err != nil {
				return nil, err
			}
			if err := h.Set(k, val); err != nil {
				return nil, err
			}
		}
	case []interface{}:
		if err := h.InitArray(); err != nil {
			return nil, err
		}
		for _, v := range r {
			val, err := interfaceToValue(v)
			if err != nil {
				return nil, err
			}
			if err := h.Append(val); err != nil {
				return nil, err
			}
		}
	default:
		return nil, newErr(InvalidArgument, "FromJSON root must be a map or slice, got %T", root)
	}
	return h, nil
}

// interfaceToValue converts a plain interface{} (as produced by
// encoding/json, or handed back from ToJSON) to a Value, dispatching
// by runtime type per spec.md §6's generic-set rules.
func interfaceToValue(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(x), nil
	case int:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case float64:
		if x == float64(int64(x)) {
			return IntValue(int64(x)), nil
		}
		return FloatValue(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return IntValue(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, newErr(InvalidArgument, "json.Number %q is neither an int64 nor a float64", x)
		}
		return FloatValue(f), nil
	case *big.Int:
		bv, ok := BigIntValue(x)
		if !ok {
			return Value{}, newErr(InvalidArgument, "big.Int %s does not fit in 64 bits", x)
		}
		return bv, nil
	case string:
		return StringValue(x), nil
	case []byte:
		return BytesValue(x), nil
	case []interface{}:
		elems := make([]Value, len(x))
		for i, e := range x {
			ev, err := interfaceToValue(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return ArrayValue(elems), nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := interfaceToValue(e)
			if err != nil {
				return Value{}, err
			}
			fields[k] = ev
		}
		return ObjectValue(fields), nil
	default:
		return Value{}, newErr(InvalidArgument, "unsupported value type %T", v)
	}
}

// ToJSONText renders the root straight to JSON text via encoding/json,
// a convenience wrapper around ToJSON for callers who want bytes
// rather than an interface{} tree.
func (h *Handle) ToJSONText() ([]byte, error) {
	tree, err := h.ToJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// FromJSONText parses JSON text via encoding/json (using json.Number
// to preserve large integers) and builds a fresh Handle from the
// result, a convenience wrapper around FromJSON for callers who start
// from raw JSON bytes rather than an interface{} tree.
func FromJSONText(data []byte, cfg Config) (*Handle, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, newErr(InvalidArgument, "invalid JSON text: %v", err)
	}
	return FromJSON(tree, cfg)
}
