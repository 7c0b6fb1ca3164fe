// Package stackcore is the integrity and arithmetic substrate for runtimes that
// switch between execution stacks (delimited continuations, coroutines).
//
// It does not switch stacks itself. It provides the pieces a switching engine
// needs to do so safely:
//
//	stackcore/        Allocator and Reporter collaborator interfaces, error codes
//	├── guard/        cookie based guarding of saved ip/sp pairs
//	├── align/        alignment of integers, pointers and slices
//	├── alloc/        allocation facade with fallible and fail-fast entry points
//	├── diag/         zap backed Reporter
//	├── region/       stack region layout inside a reserved block
//	├── errors/       structured error types
//	└── cmd/inspect/  inspection tool
//
// # Quick Start
//
//	cookie := guard.MustInit()
//	var jb guard.JmpBuf
//	jb.Save(cookie, ip, sp)
//	...
//	ip, sp = jb.Restore(cookie)
//
//	f := alloc.New(nil, diag.Default())
//	meta := f.ZallocSafe(128) // never nil; terminates on exhaustion
//	defer f.Free(meta)
//
//	top := align.DownPtr(p, 16)
//
// # Capability targets
//
// Building with the "capability" tag compiles the guard codec as a pass-through,
// for targets where XOR on a pointer's bit pattern would destroy its bounds.
// The choice is made at build time; there is no runtime switch.
//
// # Thread Safety
//
// A Cookie is immutable once created and may be shared by any number of
// goroutines. The Limited and Linear allocator backends are safe for
// concurrent use; Heap and Mmap hold no state.
package stackcore
