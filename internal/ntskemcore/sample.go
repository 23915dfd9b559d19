package ntskemcore

import (
	"github.com/post-quantum/nts-kem/internal/ctbits"
	"github.com/post-quantum/nts-kem/internal/drbg"
)

// bitAt returns bit i of the packed vector v (bit l of word i/64).
func bitAt(v []uint64, i int) uint64 {
	return (v[i/64] >> uint(i%64)) & 1
}

// setBitAt writes bit (0 or 1) at position i of v without branching on
// the bit's value.
func setBitAt(v []uint64, i int, bit uint64) {
	v[i/64] &^= 1 << uint(i%64)
	v[i/64] |= (bit & 1) << uint(i%64)
}

// extractBits returns a freshly 0-indexed packed vector holding bits
// [offset, offset+length) of v.
func extractBits(v []uint64, offset, length int) []uint64 {
	out := make([]uint64, (length+63)/64)
	for i := 0; i < length; i++ {
		out[i/64] |= bitAt(v, offset+i) << uint(i%64)
	}
	return out
}

// sampleErrorVector draws a uniformly random n-bit vector of Hamming
// weight exactly weight, as n/64 packed words: positions are drawn one
// at a time via the DRBG's Knuth-Yao bounded sampler and any duplicate
// draw is simply redrawn until weight distinct positions are set.
func sampleErrorVector(rng *drbg.Stream, n, weight int) []uint64 {
	v := make([]uint64, (n+63)/64)
	set := 0
	for set < weight {
		idx := int(rng.Uint16Bounded(uint16(n)))
		if bitAt(v, idx) == 1 {
			continue
		}
		setBitAt(v, idx, 1)
		set++
	}
	return v
}

// packedWeight returns the Hamming weight of a packed bit vector.
func packedWeight(v []uint64) int {
	w := 0
	for _, word := range v {
		w += ctbits.Popcount64(word)
	}
	return w
}

// packedToBytes renders the first n bits of v as ceil(n/8) bytes, bit i
// of v in bit (i mod 8) of byte (i div 8).
func packedToBytes(v []uint64, n int) []byte {
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		out[i/8] |= byte(bitAt(v, i)) << uint(i%8)
	}
	return out
}

// bytesToPacked is the inverse of packedToBytes.
func bytesToPacked(b []byte, n int) []uint64 {
	out := make([]uint64, (n+63)/64)
	for i := 0; i < n; i++ {
		out[i/64] |= uint64((b[i/8]>>uint(i%8))&1) << uint(i%64)
	}
	return out
}
