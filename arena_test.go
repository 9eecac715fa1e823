package lite3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArenaDefaultCapacity(t *testing.T) {
	a := newArena(0, arenaOpts{})
	assert.Equal(t, uint32(defaultCapacity), uint32(len(a.data)))
	assert.Equal(t, uint32(0), a.used)
}

func TestArenaReserveAlignsAndBumps(t *testing.T) {
	a := newArena(64, arenaOpts{})
	o1 := a.reserve(5, 1)
	assert.Equal(t, uint32(0), o1)
	assert.Equal(t, uint32(5), a.used)

	o2 := a.reserve(8, 4)
	assert.Equal(t, uint32(8), o2)
	assert.Equal(t, uint32(16), a.used)
}

func TestArenaEnsureSpaceGrowsGeometrically(t *testing.T) {
	a := newArena(16, arenaOpts{})
	a.used = 16
	require.NoError(t, a.ensureSpace(1))
	assert.GreaterOrEqual(t, len(a.data), 17)
	assert.GreaterOrEqual(t, uint32(len(a.data)), uint32(32))
}

func TestArenaEnsureSpacePreservesContents(t *testing.T) {
	a := newArena(8, arenaOpts{})
	copy(a.data, []byte("ABCDEFGH"))
	a.used = 8
	require.NoError(t, a.ensureSpace(100))
	assert.Equal(t, []byte("ABCDEFGH"), a.data[:8])
}

func TestArenaEnsureSpaceRejectsOverMax(t *testing.T) {
	a := newArena(16, arenaOpts{})
	a.used = uint32(maxArenaLen) - 4
	err := a.ensureSpace(100)
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, NoBufferSpace, lerr.Kind)
}

func TestWrapArena(t *testing.T) {
	buf := make([]byte, 200)
	a := wrapArena(buf, 96)
	assert.Equal(t, uint32(96), uint32(len(a.bytes())))
}
