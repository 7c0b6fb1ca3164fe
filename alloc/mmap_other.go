//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package alloc

import (
	"fmt"

	"github.com/wippyai/stackcore"
	"github.com/wippyai/stackcore/diag"
	"github.com/wippyai/stackcore/errors"
)

// Mmap is unavailable on this platform; every request reports exhaustion.
type Mmap struct {
	rep stackcore.Reporter
}

func NewMmap(rep stackcore.Reporter) *Mmap {
	if rep == nil {
		rep = diag.Default()
	}
	return &Mmap{rep: rep}
}

func (m *Mmap) PageSize() int { return 4096 }

func (m *Mmap) Malloc(size int) []byte  { return m.unsupported(size) }
func (m *Mmap) Zalloc(size int) []byte  { return m.unsupported(size) }
func (m *Mmap) Reserve(size int) []byte { return m.unsupported(size) }
func (m *Mmap) Commit([]byte) bool      { return false }
func (m *Mmap) Decommit([]byte) bool    { return false }
func (m *Mmap) Free([]byte)             {}

func (m *Mmap) unsupported(size int) []byte {
	m.rep.SystemError(stackcore.ENOMEM, "%v\n", errors.Unsupported(errors.PhaseAlloc, fmt.Sprintf("mmap of %d bytes on this platform", size)))
	return nil
}
