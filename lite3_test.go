package lite3

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//============================================= Basic lifecycle

func TestNewHandleRequiresInit(t *testing.T) {
	h := New(Config{})
	_, _, err := h.Get("anything")
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, InvalidArgument, lerr.Kind)
}

func TestInitObjectThenSetThenGet(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())

	require.NoError(t, h.SetString("name", "lite3"))
	v, ok, err := h.Get("name")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "lite3", v.Str)

	_, ok, err = h.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReinitClearsPriorContents(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())
	require.NoError(t, h.SetI64("a", 1))

	require.NoError(t, h.InitObject())
	ok, err := h.Has("a")
	require.NoError(t, err)
	assert.False(t, ok, "reinitializing the root must discard its prior contents")
}

//============================================= Overwrite-in-place vs reallocate

func TestOverwriteSmallerOrEqualValueInPlace(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())
	require.NoError(t, h.SetI64("n", 1<<40))

	bufLenBefore := len(h.Buffer())
	require.NoError(t, h.SetI64("n", 1))
	bufLenAfter := len(h.Buffer())

	assert.Equal(t, bufLenBefore, bufLenAfter, "an equal-size overwrite must not grow the buffer")

	v, ok, err := h.Get("n")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), v.I64)
}

func TestOverwriteWithLargerValueReallocates(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())
	require.NoError(t, h.SetBytes("b", []byte{1}))

	bufLenBefore := len(h.Buffer())
	require.NoError(t, h.SetBytes("b", make([]byte, 1000)))
	assert.Greater(t, len(h.Buffer()), bufLenBefore)

	v, ok, err := h.Get("b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, v.Bytes, 1000)
}

func TestGenerationBumpsExactlyOncePerMutation(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())
	before := generation(h.arena.bytes(), rootOffset)
	require.NoError(t, h.SetI64("x", 1))
	after := generation(h.arena.bytes(), rootOffset)
	assert.Equal(t, (before+1)&genMask, after)
}

//============================================= Scenario: lap_complete event with in-place overwrite

func TestScenarioLapCompleteEventOverwrite(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())

	require.NoError(t, h.SetString("event", "lap_complete"))
	require.NoError(t, h.SetI64("lap", 1))
	require.NoError(t, h.SetF64("time_s", 91.423))

	sizeBefore, err := h.Size()
	require.NoError(t, err)
	bufLenBefore := len(h.Buffer())

	require.NoError(t, h.SetI64("lap", 2))

	sizeAfter, err := h.Size()
	require.NoError(t, err)
	assert.Equal(t, sizeBefore, sizeAfter, "overwriting an existing key must not change the entry count")
	assert.Equal(t, bufLenBefore, len(h.Buffer()), "an equal-size I64 overwrite must not grow the buffer")

	v, ok, err := h.Get("lap")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), v.I64)
}

//============================================= Scenario: nested "headers" object

func TestScenarioNestedHeadersObject(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())
	require.NoError(t, h.SetString("method", "GET"))

	headers, err := h.SetObject("headers")
	require.NoError(t, err)
	require.NoError(t, h.SetStringIn(headers, "content-type", "application/json"))
	require.NoError(t, h.SetStringIn(headers, "accept", "*/*"))

	ct, ok, err := h.GetIn(headers, "content-type")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "application/json", ct.Str)

	root, ok, err := h.Get("headers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, KindObject, root.Kind)
	assert.Equal(t, "application/json", root.Object["content-type"].Str)
	assert.Equal(t, "*/*", root.Object["accept"].Str)
}

//============================================= Scenario: array append of mixed types

func TestScenarioArrayAppendMixedTypes(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())

	samples, err := h.SetArray("samples")
	require.NoError(t, err)

	require.NoError(t, h.AppendIn(samples, IntValue(1)))
	require.NoError(t, h.AppendIn(samples, StringValue("two")))
	require.NoError(t, h.AppendIn(samples, BoolValue(true)))
	require.NoError(t, h.AppendIn(samples, Null()))
	require.NoError(t, h.AppendIn(samples, FloatValue(5.5)))

	size, err := h.SizeIn(samples)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), size)

	v0, ok, err := h.GetAtIn(samples, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), v0.I64)

	v2, ok, err := h.GetAtIn(samples, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v2.Bool)

	v3, ok, err := h.GetAtIn(samples, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, KindNull, v3.Kind)
}

//============================================= Scenario: big-integer round trip

func TestScenarioBigIntegerRoundTrip(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())

	small := int64(42)
	require.NoError(t, h.SetI64("small", small))
	v, _, err := h.Get("small")
	require.NoError(t, err)
	assert.Equal(t, small, v.I64)
	tree, err := h.ToJSON()
	require.NoError(t, err)
	obj := tree.(map[string]interface{})
	asInt64, ok := obj["small"].(int64)
	require.True(t, ok, "a value within the safe-integer bound must surface as int64")
	assert.Equal(t, small, asInt64)

	straddling := safeIntegerBound + 1000
	require.NoError(t, h.SetI64("big", straddling))
	tree, err = h.ToJSON()
	require.NoError(t, err)
	obj = tree.(map[string]interface{})
	asBig, ok := obj["big"].(*big.Int)
	require.True(t, ok, "a value outside the safe-integer bound must surface as *big.Int")
	assert.Equal(t, straddling, asBig.Int64())

	bv, ok := BigIntValue(big.NewInt(straddling))
	require.True(t, ok)
	require.NoError(t, h.SetIn(rootOffset, "big2", bv))
	v2, _, err := h.Get("big2")
	require.NoError(t, err)
	assert.Equal(t, straddling, v2.I64)
}

//============================================= Scenario: 34-key object forces a split

func TestScenarioThirtyFourKeysForceSplit(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())

	for i := 0; i < 34; i++ {
		key := strings.Repeat("k", 1) + string(rune('a'+i%26)) + string(rune('A'+i/26))
		require.NoError(t, h.SetI64(key, int64(i)))
	}

	size, err := h.Size()
	require.NoError(t, err)
	assert.Equal(t, uint32(34), size)
	assert.False(t, isLeaf(h.arena.bytes(), rootOffset), "34 keys must have forced at least one split")

	keys, err := h.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 34)
}

//============================================= Scenario: 5-byte binary value

func TestScenarioFiveByteBinaryValue(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())

	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}
	require.NoError(t, h.SetBytes("blob", payload))

	v, ok, err := h.Get("blob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, v.Bytes)
}

//============================================= Boundary cases

func TestBoundaryEmptyStringAndBytes(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())
	require.NoError(t, h.SetString("empty_str", ""))
	require.NoError(t, h.SetBytes("empty_bytes", []byte{}))

	s, ok, err := h.Get("empty_str")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", s.Str)

	b, ok, err := h.Get("empty_bytes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, b.Bytes)
}

func TestBoundaryLongStringAndKey(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())

	longValue := strings.Repeat("x", 10000)
	longKey := strings.Repeat("k", 100)
	require.NoError(t, h.SetString(longKey, longValue))

	v, ok, err := h.Get(longKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, longValue, v.Str)
}

func TestBoundaryIntegerSafeBound(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())

	require.NoError(t, h.SetI64("max_safe", safeIntegerBound))
	require.NoError(t, h.SetI64("over_safe", safeIntegerBound+1))

	tree, err := h.ToJSON()
	require.NoError(t, err)
	obj := tree.(map[string]interface{})
	_, isInt64 := obj["max_safe"].(int64)
	assert.True(t, isInt64)
	_, isBig := obj["over_safe"].(*big.Int)
	assert.True(t, isBig)
}

func TestBoundaryKeySetSizes(t *testing.T) {
	for _, n := range []int{0, 1, 7, 8, 50} {
		h := New(Config{})
		require.NoError(t, h.InitObject())
		for i := 0; i < n; i++ {
			require.NoError(t, h.SetI64(strings.Repeat("key", 1)+string(rune('a'+i%26))+string(rune('A'+(i/26)%26))+string(rune('0'+(i/676)%10)), int64(i)))
		}
		size, err := h.Size()
		require.NoError(t, err)
		assert.Equal(t, uint32(n), size)
	}
}

//============================================= B-tree invariants across random mutation

func TestBtreeInvariantsUnderLoad(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())

	const n = 1000
	for i := 0; i < n; i++ {
		key := strings.Repeat("item", 1) + string(rune('a'+i%26)) + string(rune('A'+(i/26)%26)) + string(rune('0'+(i/676)%10)) + string(rune('0'+(i/6760)%10))
		require.NoError(t, h.SetI64(key, int64(i)))
	}

	size, err := h.Size()
	require.NoError(t, err)
	assert.Equal(t, uint32(n), size)

	entries, err := h.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, n)

	var checkNode func(node uint32, isRoot bool)
	buf := h.arena.bytes()
	checkNode = func(node uint32, isRoot bool) {
		kc := keyCount(buf, node)
		if isRoot {
			assert.LessOrEqual(t, kc, maxKeys)
		} else {
			assert.GreaterOrEqual(t, kc, 3)
			assert.LessOrEqual(t, kc, maxKeys)
		}
		if !isLeaf(buf, node) {
			for i := 0; i <= kc; i++ {
				checkNode(childOfsAt(buf, node, i), false)
			}
		}
	}
	checkNode(rootOffset, true)
}

//============================================= FromBuffer / Buffer round trip

func TestFromBufferNoValidation(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())
	require.NoError(t, h.SetString("k", "v"))

	buf := h.Buffer()
	copied := make([]byte, len(buf))
	copy(copied, buf)

	h2 := FromBuffer(copied, uint32(len(copied)))
	v, ok, err := h2.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", v.Str)
}

//============================================= JSON bridge

func TestFromJSONToJSONRoundTrip(t *testing.T) {
	tree := map[string]interface{}{
		"name": "lite3",
		"count": int64(3),
		"nested": map[string]interface{}{
			"enabled": true,
		},
		"tags": []interface{}{"a", "b", "c"},
	}

	h, err := FromJSON(tree, Config{})
	require.NoError(t, err)

	got, err := h.ToJSON()
	require.NoError(t, err)
	gotMap := got.(map[string]interface{})
	assert.Equal(t, "lite3", gotMap["name"])
	assert.Equal(t, int64(3), gotMap["count"])
	assert.Equal(t, []interface{}{"a", "b", "c"}, gotMap["tags"])
	nested := gotMap["nested"].(map[string]interface{})
	assert.Equal(t, true, nested["enabled"])
}

func TestJSONTextRoundTrip(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())
	require.NoError(t, h.SetString("greeting", "hi"))
	require.NoError(t, h.SetI64("n", 7))

	text, err := h.ToJSONText()
	require.NoError(t, err)

	h2, err := FromJSONText(text, Config{})
	require.NoError(t, err)
	v, ok, err := h2.Get("greeting")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hi", v.Str)
}

//============================================= DumpTree smoke test

func TestDumpTreeProducesNonEmptyOutput(t *testing.T) {
	h := New(Config{})
	require.NoError(t, h.InitObject())
	require.NoError(t, h.SetI64("a", 1))
	out := h.DumpTree()
	assert.Contains(t, out, "OBJECT")
}
