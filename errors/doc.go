// Package errors provides structured error types for stackcore.
//
// Errors are categorized by Phase (which layer failed) and Kind (error category),
// and may carry the platform error code that a diagnostic reporter would print.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRegion, errors.KindOutOfBounds).
//		Path("region", "gap").
//		Value(gap).
//		Detail("gap of %d bytes exceeds half the stack", gap).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.AllocationFailed(size)
//	err := errors.OutOfBounds(errors.PhaseRegion, path, 10, 5)
//	err := errors.System(errors.PhaseRegion, stackcore.ENOMEM, "commit initial stack", nil)
//
// Errors whose Fatal method reports true (out of memory, EFAULT) are not meant
// to be returned to callers at all; the allocation facade routes them to the
// Reporter's fatal path instead.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
