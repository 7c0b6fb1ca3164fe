package guard

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"unsafe"

	"github.com/wippyai/stackcore/errors"
)

// Guarded is an address transformed by a Cookie. It carries no pointer
// semantics: the collector does not trace it.
type Guarded uintptr

const (
	cookieSize         = int(unsafe.Sizeof(uintptr(0)))
	maxEntropyAttempts = 8
)

// Cookie is the secret combined with every guarded address.
//
// A Cookie can only be obtained from Init or MustInit and is immutable after
// that, so it can be read from any goroutine without synchronization. A host
// creates one per protected domain, before the first control transfer, and
// must decode with the same Cookie that encoded. Nothing detects a mismatch.
type Cookie struct {
	value uintptr
}

// Init derives a new cookie from src. A nil src selects crypto/rand.
// Zero draws are discarded; Init fails if src keeps producing them.
func Init(src io.Reader) (*Cookie, error) {
	if src == nil {
		src = rand.Reader
	}

	var buf [8]byte
	for range maxEntropyAttempts {
		if _, err := io.ReadFull(src, buf[:cookieSize]); err != nil {
			return nil, errors.Entropy(err, "read cookie entropy")
		}
		v := decodeWord(buf[:cookieSize])
		if v != 0 {
			Logger().Debug("guard cookie initialized")
			return &Cookie{value: v}, nil
		}
	}
	return nil, errors.Entropy(nil, "entropy source produced only zero words")
}

// MustInit is Init with crypto/rand that panics on failure.
// It is meant for program start-up.
func MustInit() *Cookie {
	c, err := Init(nil)
	if err != nil {
		panic(err)
	}
	return c
}

func decodeWord(b []byte) uintptr {
	if len(b) == 4 {
		return uintptr(binary.LittleEndian.Uint32(b))
	}
	return uintptr(binary.LittleEndian.Uint64(b))
}

// Encode guards an address before it is stored.
func (c *Cookie) Encode(addr uintptr) Guarded {
	return Guarded(c.Guard(addr))
}

// Decode recovers an address stored by Encode with the same cookie.
func (c *Cookie) Decode(g Guarded) uintptr {
	return c.Guard(uintptr(g))
}
