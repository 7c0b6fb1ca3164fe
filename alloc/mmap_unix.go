//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package alloc

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/wippyai/stackcore"
	"github.com/wippyai/stackcore/diag"
)

// Mmap allocates anonymous private mappings straight from the OS.
//
// Blocks are page granular and zero-filled, which makes it the natural backend
// for stack memory. Failures are reported as system errors and surface as a
// nil block.
type Mmap struct {
	rep stackcore.Reporter
}

// NewMmap creates an mmap backend reporting failures to rep.
// A nil reporter selects diag.Default().
func NewMmap(rep stackcore.Reporter) *Mmap {
	if rep == nil {
		rep = diag.Default()
	}
	return &Mmap{rep: rep}
}

// PageSize returns the OS page size.
func (m *Mmap) PageSize() int {
	return unix.Getpagesize()
}

func (m *Mmap) Malloc(size int) []byte {
	return m.mmap(size, unix.PROT_READ|unix.PROT_WRITE)
}

// Zalloc is Malloc: fresh anonymous mappings are zero-filled.
func (m *Mmap) Zalloc(size int) []byte {
	return m.mmap(size, unix.PROT_READ|unix.PROT_WRITE)
}

// Reserve maps size bytes of address space with no access rights.
func (m *Mmap) Reserve(size int) []byte {
	return m.mmap(size, unix.PROT_NONE)
}

// Commit makes b readable and writable. b must lie inside a mapping and start
// on a page boundary.
func (m *Mmap) Commit(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	if err := unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		m.rep.SystemError(stackcore.ENOMEM, "failed to commit memory at %p of size %d: %v\n", unsafe.SliceData(b), len(b), err)
		checkVMALimit(m.rep, err)
		return false
	}
	return true
}

// Decommit removes access to b again.
func (m *Mmap) Decommit(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	if err := unix.Mprotect(b, unix.PROT_NONE); err != nil {
		m.rep.SystemError(stackcore.ENOMEM, "failed to decommit memory at %p of size %d: %v\n", unsafe.SliceData(b), len(b), err)
		return false
	}
	return true
}

// Free unmaps b. b must start where the mapping starts; its length may have
// been shortened.
func (m *Mmap) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	if err := unix.Munmap(b[:cap(b)]); err != nil {
		m.rep.SystemError(stackcore.ENOMEM, "failed to free memory at %p of size %d: %v\n", unsafe.SliceData(b), cap(b), err)
	}
}

func (m *Mmap) mmap(size, prot int) []byte {
	if size <= 0 {
		return nil
	}
	b, err := unix.Mmap(-1, 0, size, prot, mmapFlags)
	if err != nil {
		m.rep.SystemError(stackcore.ENOMEM, "failed to allocate mmap memory of size %d: %v\n", size, err)
		checkVMALimit(m.rep, err)
		return nil
	}
	debugf("mmap %d bytes at %p", size, unsafe.SliceData(b))
	return b
}
