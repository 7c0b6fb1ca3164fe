package alloc

import (
	"context"
	"math"
	"sync"
	"unsafe"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/stackcore/align"
	"github.com/wippyai/stackcore/errors"
)

const (
	// wasmPageSize is the WebAssembly page size (64KiB).
	wasmPageSize = 65536
	// linearAlign is the alignment of every block handed out by Linear.
	linearAlign = 16
)

// Linear is a bump allocator over WebAssembly linear memory.
//
// It lets an engine that runs guest code keep its stacks and bookkeeping inside
// the guest's address space. Blocks are views into the memory; the memory must
// not move when it grows (see NewLinearMemory), otherwise earlier views go
// stale. Linear reports exhaustion when the memory cannot grow any further.
// Free rewinds only the most recent block; other frees are dropped.
type Linear struct {
	mu   sync.Mutex
	mem  api.Memory
	next uint32
	mark uint32
	last *byte
}

// NewLinear allocates from mem starting at offset base. mem is nil when the
// module exports no memory.
func NewLinear(mem api.Memory, base uint32) (*Linear, error) {
	if mem == nil {
		return nil, errors.NotInitialized(errors.PhaseAlloc, "linear memory")
	}
	return &Linear{mem: mem, next: base}, nil
}

func (l *Linear) Malloc(size int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bump(size)
}

// Zalloc clears the block: rewound space may hold old data.
func (l *Linear) Zalloc(size int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	b := l.bump(size)
	clear(b)
	return b
}

func (l *Linear) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last != nil && unsafe.SliceData(b) == l.last {
		l.next = l.mark
		l.last = nil
	}
}

// Offset returns the next free offset in the linear memory.
func (l *Linear) Offset() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next
}

func (l *Linear) bump(size int) []byte {
	if size <= 0 {
		return nil
	}
	start := align.Up(uint64(l.next), linearAlign)
	end := start + uint64(size)
	if end > math.MaxUint32 {
		return nil
	}

	if have := uint64(l.mem.Size()); end > have {
		pages := align.Up(end-have, wasmPageSize) / wasmPageSize
		if _, ok := l.mem.Grow(uint32(pages)); !ok {
			debugf("linear memory cannot grow by %d pages", pages)
			return nil
		}
	}

	b, ok := l.mem.Read(uint32(start), uint32(size))
	if !ok {
		return nil
	}
	b = b[:size:size]
	l.mark = l.next
	l.next = uint32(end)
	l.last = unsafe.SliceData(b)
	return b
}

// LinearMemory is a standalone wazero instance exporting one memory.
type LinearMemory struct {
	rt  wazero.Runtime
	mod api.Module
}

// NewLinearMemory instantiates a memory-only module with one initial page that
// may grow to maxPages. The memory's capacity is reserved up front so growing
// it never moves existing blocks.
func NewLinearMemory(ctx context.Context, maxPages uint32) (*LinearMemory, error) {
	if maxPages == 0 || maxPages > 65536 {
		return nil, errors.InvalidInput(errors.PhaseInit, "linear memory max pages must be in 1..65536")
	}

	cfg := wazero.NewRuntimeConfig().
		WithMemoryLimitPages(maxPages).
		WithMemoryCapacityFromMax(true)
	rt := wazero.NewRuntimeWithConfig(ctx, cfg)

	mod, err := rt.Instantiate(ctx, memoryModule(1, maxPages))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseInit, errors.KindUnsupported, err, "instantiate linear memory")
	}
	return &LinearMemory{rt: rt, mod: mod}, nil
}

// Memory returns the exported memory.
func (m *LinearMemory) Memory() api.Memory {
	return m.mod.ExportedMemory(memoryExportName)
}

// Close releases the wazero runtime and invalidates all blocks.
func (m *LinearMemory) Close(ctx context.Context) error {
	return m.rt.Close(ctx)
}
