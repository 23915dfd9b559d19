package goppa

import (
	"testing"

	"github.com/post-quantum/nts-kem/internal/drbg"
	"github.com/post-quantum/nts-kem/internal/field"
)

func TestIsIrreducibleAcceptsKnownIrreducible(t *testing.T) {
	f := field.New(12)
	// z^12 + z^3 + 1, the field's own defining polynomial, is
	// irreducible over GF(2) but we need one over GF(2^12); exercise
	// the test instead on a small degree-2 polynomial with no root in
	// GF(2^12): z^2 + z + a is irreducible over GF(2^m) iff Tr(a) == 1.
	// Rather than compute the trace, search for one.
	for a := field.Elem(1); a < field.Elem(f.N); a++ {
		g := []field.Elem{a, 1, 1}
		if IsIrreducible(f, g) {
			// verify it truly has no root by brute check over the whole field.
			hasRoot := false
			for x := field.Elem(0); x < 4096; x++ {
				if f.EvalPoly(g, x) == 0 {
					hasRoot = true
					break
				}
			}
			if hasRoot {
				t.Fatalf("IsIrreducible accepted %v which has a root", g)
			}
			return
		}
	}
	t.Fatal("no degree-2 irreducible found in search range")
}

func TestIsIrreducibleRejectsReducible(t *testing.T) {
	f := field.New(12)
	// (z+1)(z+2) = z^2 + 3z + 2, reducible by construction.
	g := []field.Elem{f.Mul(1, 2), f.Add(1, 2), 1}
	if IsIrreducible(f, g) {
		t.Fatal("reducible polynomial was accepted as irreducible")
	}
}

func TestKeygenProducesIrreducibleGoppaPolynomial(t *testing.T) {
	f := field.New(12)
	rng := drbg.NewStream([]byte("goppa-keygen-seed-1"))
	_, sk, err := Keygen(rng, Params{M: 12, T: 4})
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	if !IsIrreducible(f, sk.G()) {
		t.Fatal("keygen produced a reducible Goppa polynomial")
	}
}

func TestKeygenPublicKeyIsSystematicAndParityCheckZero(t *testing.T) {
	params := Params{M: 12, T: 4}
	rng := drbg.NewStream([]byte("goppa-keygen-seed-2"))
	pk, sk, err := Keygen(rng, params)
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}

	mt := params.MT()
	n := params.N()
	if pk.A.Rows() != mt || pk.A.Cols() != n-mt {
		t.Fatalf("public key has wrong dimensions: %dx%d", pk.A.Rows(), pk.A.Cols())
	}

	// Re-derive H from the private key's (permuted) support/polynomial
	// and confirm it row-reduces to exactly [I | pk.A] with no further
	// column swaps needed: this is property 5, "H.s^T = 0 for the
	// codeword reconstructed during decaps", verified at the structural
	// level that decaps relies on.
	f := field.New(params.M)
	h := buildParityCheck(f, params, evalOnSupport(f, sk.G(), sk.Support), sk.Support)
	rank, swaps := h.RREF()
	if rank != mt {
		t.Fatalf("re-derived parity check has rank %d, want %d", rank, mt)
	}
	if len(swaps) != 0 {
		t.Fatalf("re-deriving H from the already-permuted support needed %d further swaps", len(swaps))
	}
	for r := 0; r < mt; r++ {
		for c := 0; c < n-mt; c++ {
			if h.Bit(r, mt+c) != pk.A.Bit(r, c) {
				t.Fatalf("mismatch at (%d,%d)", r, c)
			}
		}
	}
	for r := 0; r < mt; r++ {
		for c := 0; c < mt; c++ {
			var want uint64
			if r == c {
				want = 1
			}
			if h.Bit(r, c) != want {
				t.Fatalf("leading block is not the identity at (%d,%d)", r, c)
			}
		}
	}
}
