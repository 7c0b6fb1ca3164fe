package align

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inBuffer(buf []byte, p unsafe.Pointer) bool {
	start := Addr(unsafe.Pointer(unsafe.SliceData(buf)))
	a := Addr(p)
	return a >= start && a <= start+uintptr(len(buf))
}

func TestUpPtr(t *testing.T) {
	buf := make([]byte, 256)
	for off := range 64 {
		for _, d := range []uintptr{1, 2, 8, 16, 24, 32} {
			p := unsafe.Pointer(&buf[off])
			q := UpPtr(p, d)

			assert.Zero(t, Addr(q)%d)
			assert.GreaterOrEqual(t, Addr(q), Addr(p))
			assert.Less(t, Addr(q)-Addr(p), d)
			assert.True(t, inBuffer(buf, q), "UpPtr left the allocation")
		}
	}
}

func TestDownPtr(t *testing.T) {
	buf := make([]byte, 256)
	for off := 64; off < 128; off++ {
		for _, d := range []uintptr{1, 2, 8, 16, 24, 32} {
			p := unsafe.Pointer(&buf[off])
			q := DownPtr(p, d)

			assert.Zero(t, Addr(q)%d)
			assert.LessOrEqual(t, Addr(q), Addr(p))
			assert.Less(t, Addr(p)-Addr(q), d)
			assert.True(t, inBuffer(buf, q), "DownPtr left the allocation")
		}
	}
}

func TestPtr_ZeroDivisor(t *testing.T) {
	buf := make([]byte, 8)
	p := unsafe.Pointer(&buf[3])
	assert.Equal(t, p, UpPtr(p, 0))
	assert.Equal(t, p, DownPtr(p, 0))
}

func TestPtr_WriteThroughAligned(t *testing.T) {
	buf := make([]byte, 64)
	q := UpPtr(unsafe.Pointer(&buf[1]), 16)
	*(*byte)(q) = 0xAB

	idx := Addr(q) - Addr(unsafe.Pointer(&buf[0]))
	assert.Equal(t, byte(0xAB), buf[idx])
}

func TestUpSlice(t *testing.T) {
	buf := make([]byte, 128)
	b := buf[3:100]

	got := UpSlice(b, 16)
	require.NotEmpty(t, got)
	assert.Zero(t, Addr(unsafe.Pointer(unsafe.SliceData(got)))%16)
	assert.Less(t, len(b)-len(got), 16)
	// Same backing array, same end.
	assert.Same(t, &b[len(b)-1], &got[len(got)-1])
	assert.Equal(t, cap(b)-(len(b)-len(got)), cap(got))
}

func TestUpSlice_TooSmall(t *testing.T) {
	buf := make([]byte, 64)
	start := Addr(unsafe.Pointer(&buf[0]))
	// Pick a 1-byte window that is not 32-aligned.
	off := 1
	if (start+1)%32 == 0 {
		off = 2
	}
	got := UpSlice(buf[off:off+1], 32)
	assert.Empty(t, got)
}

func TestDownSlice(t *testing.T) {
	buf := make([]byte, 128)
	b := buf[5:101]

	got := DownSlice(b, 16)
	end := Addr(unsafe.Pointer(unsafe.SliceData(got))) + uintptr(len(got))
	assert.Zero(t, end%16)
	assert.Less(t, len(b)-len(got), 16)
	assert.Same(t, &b[0], &got[0])
}

func TestSlice_ZeroDivisorAndEmpty(t *testing.T) {
	b := make([]byte, 10)[1:]
	assert.Len(t, UpSlice(b, 0), len(b))
	assert.Len(t, DownSlice(b, 0), len(b))
	assert.Empty(t, UpSlice(nil, 8))
	assert.Empty(t, DownSlice(nil, 8))
}
