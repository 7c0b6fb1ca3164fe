package align

import "unsafe"

// Addr is the address view of p. It exists to compute distances; a pointer is
// never rebuilt from the value it returns.
func Addr(p unsafe.Pointer) uintptr {
	return uintptr(p)
}

// UpPtr advances p to the next multiple of d.
//
// The pointer is moved by an offset computed from its address rather than
// rebuilt from the rounded address, so whatever provenance or bounds it carries
// travels with it.
func UpPtr(p unsafe.Pointer, d uintptr) unsafe.Pointer {
	a := Addr(p)
	return unsafe.Add(p, Up(a, d)-a)
}

// DownPtr moves p back to the previous multiple of d.
func DownPtr(p unsafe.Pointer, d uintptr) unsafe.Pointer {
	a := Addr(p)
	return unsafe.Add(p, -int(a-Down(a, d)))
}

// UpSlice returns the part of b that starts at the first address aligned to
// d. The result shares b's backing array and capacity limit. It is empty when
// no aligned address falls inside b.
func UpSlice(b []byte, d uintptr) []byte {
	if len(b) == 0 {
		return b
	}
	a := Addr(unsafe.Pointer(unsafe.SliceData(b)))
	skip := Up(a, d) - a
	if skip >= uintptr(len(b)) {
		return b[len(b):]
	}
	return b[skip:]
}

// DownSlice trims b so that its end address is aligned to d.
func DownSlice(b []byte, d uintptr) []byte {
	if len(b) == 0 {
		return b
	}
	start := Addr(unsafe.Pointer(unsafe.SliceData(b)))
	end := start + uintptr(len(b))
	trim := end - Down(end, d)
	if trim >= uintptr(len(b)) {
		return b[:0]
	}
	return b[:uintptr(len(b))-trim]
}
