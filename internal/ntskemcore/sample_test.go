package ntskemcore

import (
	"testing"

	"github.com/post-quantum/nts-kem/internal/drbg"
)

// TestSampleErrorVectorHasExactWeight exercises property 3 ("error
// vectors sampled by encaps always have Hamming weight exactly t") over
// a large number of trials and parameter choices.
func TestSampleErrorVectorHasExactWeight(t *testing.T) {
	rng := drbg.NewStream([]byte("sample-weight-seed"))
	const n = 4096
	for trial := 0; trial < 10000; trial++ {
		weight := 1 + trial%63
		v := sampleErrorVector(rng, n, weight)
		if got := packedWeight(v); got != weight {
			t.Fatalf("trial %d: weight %d, want %d", trial, got, weight)
		}
	}
}

func TestPackedBytesRoundTrip(t *testing.T) {
	rng := drbg.NewStream([]byte("packed-roundtrip-seed"))
	const n = 4096
	v := sampleErrorVector(rng, n, 64)
	b := packedToBytes(v, n)
	v2 := bytesToPacked(b, n)
	for i := 0; i < n; i++ {
		if bitAt(v, i) != bitAt(v2, i) {
			t.Fatalf("bit %d mismatched after round trip", i)
		}
	}
}

func TestExtractBitsMatchesSourceRange(t *testing.T) {
	rng := drbg.NewStream([]byte("extract-seed"))
	const n = 256
	v := sampleErrorVector(rng, n, 16)
	const offset, length = 37, 91
	sub := extractBits(v, offset, length)
	for i := 0; i < length; i++ {
		if bitAt(sub, i) != bitAt(v, offset+i) {
			t.Fatalf("bit %d of extracted range mismatched", i)
		}
	}
}
