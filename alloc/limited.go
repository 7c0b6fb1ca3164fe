package alloc

import (
	"sync"

	"github.com/wippyai/stackcore"
)

// Limited caps the number of bytes outstanding in another allocator.
//
// Once the budget is spent it reports exhaustion like any other backend;
// freeing blocks makes room again. Hosts use it to bound bookkeeping memory,
// tests use it to inject out-of-memory conditions.
type Limited struct {
	mu      sync.Mutex
	backend stackcore.Allocator
	limit   int
	used    int
}

// NewLimited wraps backend with a budget of limit bytes.
func NewLimited(backend stackcore.Allocator, limit int) *Limited {
	if backend == nil {
		backend = Heap{}
	}
	return &Limited{backend: backend, limit: limit}
}

func (l *Limited) Malloc(size int) []byte {
	return l.take(size, l.backend.Malloc)
}

func (l *Limited) Zalloc(size int) []byte {
	return l.take(size, l.backend.Zalloc)
}

// Free returns b to the backend and credits its capacity to the budget.
func (l *Limited) Free(b []byte) {
	l.mu.Lock()
	l.used -= cap(b)
	l.mu.Unlock()
	l.backend.Free(b)
}

// Used returns the bytes currently charged.
func (l *Limited) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// Remaining returns the bytes still available.
func (l *Limited) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limit - l.used
}

func (l *Limited) take(size int, fn func(int) []byte) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()

	if size > l.limit-l.used {
		return nil
	}
	b := fn(size)
	if b == nil {
		return nil
	}
	l.used += cap(b)
	return b
}
