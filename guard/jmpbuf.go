package guard

// JmpBuf is the guarded form of a saved control transfer: the instruction
// pointer to resume at and the stack pointer to resume on.
//
// A stray write into a JmpBuf yields addresses the attacker cannot choose
// without also knowing the cookie.
type JmpBuf struct {
	ip Guarded
	sp Guarded
}

// Save stores ip and sp guarded by c.
func (b *JmpBuf) Save(c *Cookie, ip, sp uintptr) {
	b.ip = c.Encode(ip)
	b.sp = c.Encode(sp)
}

// Restore returns the saved ip and sp. c must be the cookie used by Save.
func (b *JmpBuf) Restore(c *Cookie) (ip, sp uintptr) {
	return c.Decode(b.ip), c.Decode(b.sp)
}

// Raw returns the stored words as they sit in memory.
func (b *JmpBuf) Raw() (ip, sp Guarded) {
	return b.ip, b.sp
}

// Reset clears the buffer.
func (b *JmpBuf) Reset() {
	*b = JmpBuf{}
}
