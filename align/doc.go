// Package align rounds integers, pointers and byte slices to a divisor.
//
// A divisor of zero means "no constraint" and leaves the input unchanged.
// Divisors need not be powers of two.
//
// Pointers are never multiplied or divided. UpPtr and DownPtr compute the
// distance to the aligned address from the pointer's address view and move the
// original pointer by that distance with unsafe.Add. On targets where a pointer
// carries bounds, pointer-plus-offset is the operation that keeps them intact.
// UpSlice and DownSlice express the same rule with Go slices: the result is a
// reslice of the input and keeps its backing array.
package align
