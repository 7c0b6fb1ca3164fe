package align

// Integer is any integer type usable as an offset, size or address.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Signed is any signed integer type usable as an offset.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Up returns the smallest multiple of d that is >= x.
// d == 0 leaves x unchanged. x + d - 1 must not overflow T.
func Up[T Integer](x, d T) T {
	if d == 0 {
		return x
	}
	return ((x + d - 1) / d) * d
}

// Down returns the largest multiple of d that is <= x.
// d == 0 leaves x unchanged.
func Down[T Integer](x, d T) T {
	if d == 0 {
		return x
	}
	return (x / d) * d
}

// IsAligned reports whether x is a multiple of d. Everything is aligned to 0.
func IsAligned[T Integer](x, d T) bool {
	return d == 0 || x%d == 0
}

// Max returns the larger offset.
func Max[T Signed](x, y T) T {
	if x >= y {
		return x
	}
	return y
}

// Min returns the smaller offset.
func Min[T Signed](x, y T) T {
	if x <= y {
		return x
	}
	return y
}
