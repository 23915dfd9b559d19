// Package ctbits provides branch-free comparators, multiplexers and
// related primitives used anywhere a decision would otherwise depend on
// secret key material or an error pattern.
package ctbits

import (
	"math/bits"
	"runtime"
)

// Mux32 returns a when ctl == 1 and b when ctl == 0. ctl must be 0 or 1;
// any other value makes the result undefined.
func Mux32(ctl, a, b uint32) uint32 {
	mask := -ctl
	return b ^ (mask & (a ^ b))
}

// Mux64 is the 64-bit form of Mux32.
func Mux64(ctl, a, b uint64) uint64 {
	mask := -ctl
	return b ^ (mask & (a ^ b))
}

// EqZero32 returns 1 if a == 0, 0 otherwise.
func EqZero32(a int32) uint32 {
	b := uint32(a)
	return ^(b | -b) >> 31
}

// EqZero64 returns 1 if a == 0, 0 otherwise.
func EqZero64(a int64) uint64 {
	b := uint64(a)
	return ^(b | -b) >> 63
}

// NotEqual32 returns 1 if a != b, 0 otherwise.
func NotEqual32(a, b uint32) uint32 {
	c := a ^ b
	return (c | -c) >> 31
}

// Equal32 returns 1 if a == b, 0 otherwise.
func Equal32(a, b uint32) uint32 {
	return NotEqual32(a, b) ^ 1
}

// LessThan32 returns 1 if a < b, 0 otherwise.
func LessThan32(a, b uint32) uint32 {
	c := a - b
	return (c ^ ((a ^ b) & (b ^ c))) >> 31
}

// LessThan64 returns 1 if a < b, 0 otherwise.
func LessThan64(a, b uint64) uint64 {
	c := a - b
	return (c ^ ((a ^ b) & (b ^ c))) >> 63
}

// GreaterThan32 returns 1 if a > b, 0 otherwise.
func GreaterThan32(a, b uint32) uint32 {
	return LessThan32(b, a)
}

// Popcount64 returns the number of set bits in x, via a hardware
// popcount instruction with operand-independent latency.
func Popcount64(x uint64) int {
	return bits.OnesCount64(x)
}

// HighestBitIndex returns the index of the highest set bit of x, or -1
// if x is zero. Only used on non-secret values.
func HighestBitIndex(x uint64) int {
	if x == 0 {
		return -1
	}
	return bits.Len64(x) - 1
}

// LowestBitIndex returns the index of the lowest set bit of x, or -1 if
// x is zero. Only used on non-secret values.
func LowestBitIndex(x uint64) int {
	if x == 0 {
		return -1
	}
	return bits.TrailingZeros64(x)
}

// SecureZero overwrites buf with zeros in a way the compiler may not
// elide, the Go equivalent of the reference implementation's volatile
// pointer walk.
func SecureZero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// SecureZeroWords is SecureZero generalized to slices of any unsigned
// integer width, for zeroing bit-sliced field vectors, packed GF(2)
// words and scalar field-element slices without a round trip through
// []byte.
func SecureZeroWords[T ~uint8 | ~uint16 | ~uint32 | ~uint64](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// VectorEqual compares a and b in time depending only on len(a), not on
// their contents. It returns false if the lengths differ.
func VectorEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v uint32
	for i := range a {
		v |= uint32(a[i] ^ b[i])
	}
	return EqZero32(int32(v)) == 1
}
