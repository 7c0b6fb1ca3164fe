package region

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/stackcore"
	"github.com/wippyai/stackcore/align"
	"github.com/wippyai/stackcore/alloc"
	"github.com/wippyai/stackcore/errors"
)

// Access classifies an address relative to a region.
type Access int

const (
	// NoAccess is outside the region.
	NoAccess Access = iota
	// NoAccessStackOverflow is in the gap below the stack.
	NoAccessStackOverflow
	// StackAccess is inside the stack.
	StackAccess
)

func (a Access) String() string {
	switch a {
	case NoAccessStackOverflow:
		return "stack-overflow"
	case StackAccess:
		return "stack"
	default:
		return "none"
	}
}

// Info describes an address inside a stack.
type Info struct {
	StackSize       int
	Available       int
	CommitAvailable int
}

// Region is a stack laid out inside a reserved block:
//
//	full:  [ gap | stack ........................ | gap ]
//	                ^limit               base^ <- sp grows down
//
// Stacks grow down, so the base is the high end of the stack and the low gap
// catches overflows.
type Region struct {
	full      []byte
	stack     []byte
	cfg       Config
	committed int
}

// Carve lays out a region inside full. The stack starts on a page boundary,
// so full should hold at least StackSize plus one page unless it is already
// page aligned.
func Carve(full []byte, cfg Config) (*Region, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	body := align.UpSlice(full, uintptr(cfg.PageSize))
	if len(body) < cfg.StackSize {
		return nil, errors.OutOfBounds(errors.PhaseRegion, []string{"region", "full"}, cfg.StackSize, len(body))
	}
	end := cfg.StackSize - cfg.GapSize

	return &Region{
		full:      full,
		stack:     body[cfg.GapSize:end:end],
		cfg:       cfg,
		committed: cfg.InitialCommit,
	}, nil
}

// Config returns the normalized configuration.
func (r *Region) Config() Config {
	return r.cfg
}

// Size returns the usable stack size.
func (r *Region) Size() int {
	return len(r.stack)
}

// Limit returns the lowest stack address.
func (r *Region) Limit() uintptr {
	return align.Addr(unsafe.Pointer(unsafe.SliceData(r.stack)))
}

// Base returns the address just above the stack, where the first frame is
// pushed from.
func (r *Region) Base() uintptr {
	return r.Limit() + uintptr(len(r.stack))
}

// Top returns a pointer to the highest d-aligned slot in the stack.
func (r *Region) Top(d uintptr) unsafe.Pointer {
	return align.DownPtr(unsafe.Pointer(&r.stack[len(r.stack)-1]), d)
}

// Push moves sp down by n bytes and returns the new stack pointer, which is
// also the start of the pushed area.
func (r *Region) Push(sp uintptr, n int) uintptr {
	return sp - uintptr(n)
}

// Unpush returns how far sp is into the stack, measured from the base.
func (r *Region) Unpush(sp uintptr) int {
	return int(r.Base() - sp)
}

// Contains reports whether p is inside the stack.
func (r *Region) Contains(p uintptr) bool {
	return p >= r.Limit() && p < r.Base()
}

// CheckAccess classifies p, as a fault handler would before deciding between
// growing the stack and reporting an overflow.
func (r *Region) CheckAccess(p uintptr) (Access, Info) {
	info := Info{StackSize: len(r.stack)}
	if r.Contains(p) {
		used := r.Unpush(p)
		info.Available = len(r.stack) - used
		info.CommitAvailable = align.Max(0, r.committed-used)
		return StackAccess, info
	}
	fullStart := align.Addr(unsafe.Pointer(unsafe.SliceData(r.full)))
	if p >= fullStart && p < r.Limit() {
		return NoAccessStackOverflow, info
	}
	return NoAccess, info
}

// Committed returns the accessible part of the stack, measured from the base.
func (r *Region) Committed() int {
	return r.committed
}

// CommittedBytes returns the accessible part of the stack.
func (r *Region) CommittedBytes() []byte {
	return r.stack[len(r.stack)-r.committed:]
}

// Grow extends the committed part so that at least need bytes below the base
// are accessible. Growth doubles, capped at 1MiB steps, and is page granular.
func (r *Region) Grow(m Mapper, need int) bool {
	if need <= r.committed {
		return true
	}
	if need > len(r.stack) {
		return false
	}
	step := align.Min(align.Max(r.committed, r.cfg.PageSize), MiB)
	target := align.Up(align.Max(need, r.committed+step), r.cfg.PageSize)
	target = align.Min(target, len(r.stack))

	lo := len(r.stack) - target
	hi := len(r.stack) - r.committed
	if !m.Commit(r.stack[lo:hi]) {
		return false
	}
	r.committed = target
	return true
}

// Mapper reserves address space and commits parts of it. *alloc.Mmap is the
// production implementation.
type Mapper interface {
	Reserve(size int) []byte
	Commit(b []byte) bool
	Free(b []byte)
}

var _ Mapper = (*alloc.Mmap)(nil)

// Reserve maps a fresh region from m with its initial commit accessible.
func Reserve(m Mapper, cfg Config) (*Region, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	full := m.Reserve(cfg.StackSize)
	if full == nil {
		return nil, errors.AllocationFailed(cfg.StackSize)
	}
	r, err := Carve(full, cfg)
	if err != nil {
		m.Free(full)
		return nil, err
	}
	if !m.Commit(r.CommittedBytes()) {
		m.Free(full)
		return nil, errors.System(errors.PhaseRegion, stackcore.ENOMEM,
			fmt.Sprintf("commit initial stack of %d bytes", r.committed), nil)
	}
	Logger().Debug("reserved stack region",
		zap.Uintptr("base", r.Base()),
		zap.Uintptr("limit", r.Limit()),
		zap.Int("committed", r.committed),
	)
	return r, nil
}

// Release unmaps a region obtained from Reserve.
func (r *Region) Release(m Mapper) {
	m.Free(r.full)
	r.full, r.stack, r.committed = nil, nil, 0
}
