package stackcore

import "syscall"

// Code is the platform error code attached to a diagnostic.
type Code = syscall.Errno

const (
	// ENOMEM tags allocation and mapping failures.
	ENOMEM Code = syscall.ENOMEM
	// EFAULT is the designated fatal code: reporting it through any severity
	// terminates the process.
	EFAULT Code = syscall.EFAULT
)

// Allocator hands out raw memory blocks. A nil block means the backend is
// exhausted; implementations never terminate the process themselves.
type Allocator interface {
	Malloc(size int) []byte
	Zalloc(size int) []byte
	Free(b []byte)
}

// Reporter receives diagnostics. Fatal never returns, and SystemError or
// Error with code EFAULT behave like Fatal.
type Reporter interface {
	Trace(format string, args ...any)
	SystemError(code Code, format string, args ...any)
	Error(code Code, format string, args ...any)
	Fatal(code Code, format string, args ...any)
}
