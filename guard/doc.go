// Package guard protects saved control-transfer state with a secret cookie.
//
// A stack-switching engine persists an instruction pointer and a stack pointer
// across every switch. If that slot is overwritten, resuming jumps wherever the
// overwrite points. Guarding combines each word with a per-domain cookie (XOR),
// so a corrupted slot decodes to an address the attacker did not pick. This is
// defense in depth, not confidentiality, and costs one XOR per word.
//
//	cookie, err := guard.Init(nil) // crypto/rand
//	if err != nil {
//	    return err
//	}
//	var jb guard.JmpBuf
//	jb.Save(cookie, ip, sp)
//	ip, sp = jb.Restore(cookie)
//
// # Build-time strategy
//
// The default build XORs. Building with -tags capability compiles the
// pass-through strategy instead, for targets whose pointers carry bounds in
// their bit pattern. Transparent reports which one is in use.
//
// # Contract
//
// Decoding with a cookie other than the encoding one returns garbage; it is not
// detected. Guarded values are plain integers and do not keep Go objects alive.
package guard
