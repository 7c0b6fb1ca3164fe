package alloc

import (
	"fmt"

	"github.com/wippyai/stackcore"
	"github.com/wippyai/stackcore/diag"
	"github.com/wippyai/stackcore/errors"
)

// Facade is the allocation entry point used by a stack-switching engine.
//
// Malloc and Zalloc are fallible: exhaustion comes back as an error and the
// caller decides. MallocSafe and ZallocSafe never hand back an empty result:
// exhaustion is reported through the Reporter's fatal path and the call does
// not return. Which policy applies is chosen by the entry point, never
// escalated implicitly.
type Facade struct {
	backend stackcore.Allocator
	rep     stackcore.Reporter
}

// emptyBlock backs every zero-sized allocation so that it is non-nil.
var emptyBlock [1]byte

// New creates a facade over backend. A nil backend selects Heap and a nil
// reporter selects diag.Default().
func New(backend stackcore.Allocator, rep stackcore.Reporter) *Facade {
	if backend == nil {
		backend = Heap{}
	}
	if rep == nil {
		rep = diag.Default()
	}
	return &Facade{backend: backend, rep: rep}
}

// Backend returns the underlying allocator.
func (f *Facade) Backend() stackcore.Allocator {
	return f.backend
}

// Malloc returns size bytes of uninitialized memory.
func (f *Facade) Malloc(size int) ([]byte, error) {
	return f.get(size, f.backend.Malloc)
}

// Zalloc returns size bytes of zeroed memory.
func (f *Facade) Zalloc(size int) ([]byte, error) {
	return f.get(size, f.backend.Zalloc)
}

// MallocSafe is Malloc that terminates instead of failing.
func (f *Facade) MallocSafe(size int) []byte {
	b, err := f.Malloc(size)
	if err != nil {
		f.fail(size, err)
	}
	return b
}

// ZallocSafe is Zalloc that terminates instead of failing.
func (f *Facade) ZallocSafe(size int) []byte {
	b, err := f.Zalloc(size)
	if err != nil {
		f.fail(size, err)
	}
	return b
}

// Free releases a block obtained from this facade. Freeing a block twice, or
// one that came from elsewhere, is undefined.
func (f *Facade) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	f.backend.Free(b)
}

func (f *Facade) get(size int, fn func(int) []byte) ([]byte, error) {
	if size < 0 {
		return nil, errors.InvalidInput(errors.PhaseAlloc, fmt.Sprintf("negative size %d", size))
	}
	if size == 0 {
		return emptyBlock[:0:0], nil
	}
	b := fn(size)
	if b == nil {
		debugf("allocation of %d bytes failed", size)
		return nil, errors.AllocationFailed(size)
	}
	return b, nil
}

func (f *Facade) fail(size int, err error) {
	if e, ok := err.(*errors.Error); ok && e.Kind == errors.KindInvalidInput {
		f.rep.Fatal(stackcore.EFAULT, "invalid allocation size %d\n", size)
		panic(e)
	}
	f.rep.Fatal(stackcore.ENOMEM, "out of memory\n")
	// A Reporter must not return from Fatal. If it does, the caller still
	// must not see an empty block.
	panic(errors.OutOfMemory(size))
}
