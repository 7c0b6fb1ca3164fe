package region

import (
	stderrors "errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/stackcore"
	"github.com/wippyai/stackcore/align"
	"github.com/wippyai/stackcore/errors"
)

var testConfig = Config{
	PageSize:      4 * KiB,
	StackSize:     64 * KiB,
	GapSize:       8 * KiB,
	InitialCommit: 4 * KiB,
}

func carveHeap(t *testing.T) *Region {
	t.Helper()
	full := make([]byte, testConfig.StackSize+testConfig.PageSize)
	r, err := Carve(full, testConfig)
	require.NoError(t, err)
	return r
}

func TestCarve_Layout(t *testing.T) {
	r := carveHeap(t)

	assert.Equal(t, 48*KiB, r.Size())
	assert.True(t, align.IsAligned(r.Limit(), uintptr(testConfig.PageSize)))
	assert.True(t, align.IsAligned(r.Base(), uintptr(testConfig.PageSize)))
	assert.Equal(t, uintptr(r.Size()), r.Base()-r.Limit())

	fullStart := align.Addr(unsafe.Pointer(&r.full[0]))
	assert.GreaterOrEqual(t, r.Limit()-fullStart, uintptr(testConfig.GapSize))
}

func TestCarve_TooSmall(t *testing.T) {
	_, err := Carve(make([]byte, 16*KiB), testConfig)
	assert.Error(t, err)
}

func TestRegion_PushUnpush(t *testing.T) {
	r := carveHeap(t)

	sp := r.Push(r.Base(), 128)
	assert.Equal(t, r.Base()-128, sp)
	assert.Equal(t, 128, r.Unpush(sp))
	assert.True(t, r.Contains(sp))
	assert.False(t, r.Contains(r.Base()))
	assert.True(t, r.Contains(r.Limit()))
}

func TestRegion_Top(t *testing.T) {
	r := carveHeap(t)

	top := r.Top(32)
	addr := align.Addr(top)
	assert.Zero(t, addr%32)
	assert.True(t, r.Contains(addr))
	assert.Less(t, r.Base()-addr, uintptr(33))

	*(*byte)(top) = 0xFD
	assert.Equal(t, byte(0xFD), r.stack[addr-r.Limit()])
}

func TestRegion_CheckAccess(t *testing.T) {
	r := carveHeap(t)

	acc, info := r.CheckAccess(r.Base() - 100)
	assert.Equal(t, StackAccess, acc)
	assert.Equal(t, r.Size(), info.StackSize)
	assert.Equal(t, r.Size()-100, info.Available)
	assert.Equal(t, testConfig.InitialCommit-100, info.CommitAvailable)

	acc, info = r.CheckAccess(r.Base() - uintptr(testConfig.InitialCommit) - 100)
	assert.Equal(t, StackAccess, acc)
	assert.Zero(t, info.CommitAvailable)

	acc, _ = r.CheckAccess(r.Limit() - 1)
	assert.Equal(t, NoAccessStackOverflow, acc)
	assert.Equal(t, "stack-overflow", acc.String())

	acc, _ = r.CheckAccess(r.Base() + uintptr(testConfig.GapSize))
	assert.Equal(t, NoAccess, acc)
}

func TestRegion_CommittedBytes(t *testing.T) {
	r := carveHeap(t)

	c := r.CommittedBytes()
	assert.Len(t, c, testConfig.InitialCommit)
	end := align.Addr(unsafe.Pointer(&c[len(c)-1])) + 1
	assert.Equal(t, r.Base(), end)
}

// heapMapper reserves from the Go heap with a page of slack for alignment.
type heapMapper struct {
	commitOK bool
	freed    int
}

func (m *heapMapper) Reserve(size int) []byte { return make([]byte, size+testConfig.PageSize) }
func (m *heapMapper) Commit([]byte) bool      { return m.commitOK }
func (m *heapMapper) Free([]byte)             { m.freed++ }

func TestReserve_Mapper(t *testing.T) {
	m := &heapMapper{commitOK: true}
	r, err := Reserve(m, testConfig)
	require.NoError(t, err)
	assert.Equal(t, testConfig.InitialCommit, r.Committed())
	assert.Equal(t, testConfig.StackSize-2*testConfig.GapSize, r.Size())

	r.Release(m)
	assert.Equal(t, 1, m.freed)
}

func TestReserve_CommitFailure(t *testing.T) {
	m := &heapMapper{}
	_, err := Reserve(m, testConfig)
	require.Error(t, err)

	var e *errors.Error
	require.True(t, stderrors.As(err, &e))
	assert.Equal(t, errors.PhaseRegion, e.Phase)
	assert.Equal(t, errors.KindSystem, e.Kind)
	assert.Equal(t, stackcore.ENOMEM, e.Code)
	assert.Equal(t, 1, m.freed, "reserved block must be released")
}

func TestGrow_CommitFailure(t *testing.T) {
	r := carveHeap(t)
	m := &heapMapper{}
	before := r.Committed()

	assert.False(t, r.Grow(m, before+1))
	assert.Equal(t, before, r.Committed())
}
