// Package diag provides the diagnostic and fatal reporting collaborator used
// by stackcore.
//
// Three severities are supported: trace messages, recoverable errors tagged
// with a platform error code, and fatal reports that terminate the process.
// An error tagged with stackcore.EFAULT is escalated to fatal regardless of the
// entry point used to report it.
//
//	rep := diag.New(zapLogger)
//	rep.SystemError(stackcore.ENOMEM, "failed to commit memory at %p of size %d\n", p, n)
//	rep.Fatal(stackcore.ENOMEM, "out of memory\n")
//
// The fatal path is not an error value: it cannot be recovered by the caller.
package diag
