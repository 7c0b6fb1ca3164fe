// Package alloc is the allocation facade of stackcore.
//
// A Facade offers two flavors (uninitialized and zeroed) in two failure modes:
//
//	b, err := f.Malloc(n)    // fallible: nil, *errors.Error on exhaustion
//	b := f.ZallocSafe(n)     // fail-fast: never empty, terminates on exhaustion
//	f.Free(b)
//
// The fail-fast entry points exist because most callers in a stack-switching
// engine are halfway through setting up a stack and have nothing sensible to
// do with an allocation failure. They report "out of memory" through the
// stackcore.Reporter's fatal path instead of returning.
//
// The backend is pluggable:
//
//   - Heap: the Go heap.
//   - Limited: a byte budget around another backend.
//   - Mmap: anonymous OS mappings, with Reserve/Commit for stack areas.
//   - Linear: a bump allocator inside WebAssembly linear memory (wazero).
package alloc
