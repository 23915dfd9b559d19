// Package goppa implements binary Goppa-code key generation: random
// irreducible polynomial selection, support shuffling, parity-check
// construction via the additive FFT, and systemization.
package goppa

import (
	"errors"

	"github.com/post-quantum/nts-kem/internal/afft"
	"github.com/post-quantum/nts-kem/internal/ctbits"
	"github.com/post-quantum/nts-kem/internal/drbg"
	"github.com/post-quantum/nts-kem/internal/field"
	"github.com/post-quantum/nts-kem/internal/gf2mat"
)

// Params identifies one of the three NTS-KEM parameter sets.
type Params struct {
	M int // field degree: 12 or 13
	T int // Goppa polynomial degree / error-correction capacity
}

// N returns the code length n = 2^M.
func (p Params) N() int { return 1 << p.M }

// MT returns the number of GF(2) parity-check rows m*t.
func (p Params) MT() int { return p.M * p.T }

// ErrKeygenExhausted is returned when no acceptable (polynomial,
// support) pair is found within the retry budget.
var ErrKeygenExhausted = errors.New("goppa: keygen exhausted retry budget")

const maxAttempts = 256

// PublicKey holds the systematic non-identity block A of the
// row-reduced parity-check matrix (mt rows, n-mt columns).
type PublicKey struct {
	Params Params
	A      *gf2mat.Matrix
}

// PrivateKey holds the data needed to decode: the Goppa polynomial's
// low coefficients, the support and per-point weight 1/G(L)^2 in the
// same column order as PublicKey.A (the column-swap permutation
// recorded by systemization is applied to Support/H directly at keygen
// time, so decapsulation never needs to invert it separately), the
// swap list itself, and the implicit-rejection fallback secret z.
type PrivateKey struct {
	Params  Params
	A0      []field.Elem // coefficients a0..a_{t-1}; at=1 is implicit
	Support []field.Elem // length n, in PublicKey.A's column order
	H       field.Batch  // bit-sliced 1/G(Support)^2, n/64 batches
	Perm    []gf2mat.Swap
	Z       []byte // n-byte implicit-rejection fallback secret
}

// G returns the full monic Goppa polynomial (A0 followed by the
// implicit leading 1).
func (sk *PrivateKey) G() []field.Elem {
	g := make([]field.Elem, sk.Params.T+1)
	copy(g, sk.A0)
	g[sk.Params.T] = 1
	return g
}

// Zero overwrites every secret-derived field of sk with zeros, for
// callers dropping a private key that must not leave it to the
// garbage collector's schedule.
func (sk *PrivateKey) Zero() {
	ctbits.SecureZeroWords(sk.A0)
	ctbits.SecureZeroWords(sk.Support)
	for _, v := range sk.H {
		ctbits.SecureZeroWords(v)
	}
	ctbits.SecureZero(sk.Z)
}

// Keygen samples a fresh (public key, private key) pair, drawing all
// randomness from rng.
func Keygen(rng *drbg.Stream, params Params) (*PublicKey, *PrivateKey, error) {
	f := field.New(params.M)
	n := params.N()
	t := params.T
	mt := params.MT()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		g, ok := sampleIrreducible(rng, f, t)
		if !ok {
			continue
		}

		support, ok := sampleSupport(rng, f, n, g)
		if !ok {
			continue
		}

		gl := evalOnSupport(f, g, support)
		h := buildParityCheck(f, params, gl, support)

		rank, swaps := h.RREF()
		if rank != mt {
			continue
		}

		// Reorder Support and the secret weight vector to match the
		// column order RREF left the matrix in.
		permSupport := append([]field.Elem{}, support...)
		permWeight := make([]field.Elem, n)
		for j := range support {
			permWeight[j] = f.Inv(f.Sqr(gl[j]))
		}
		for _, s := range swaps {
			permSupport[s.A], permSupport[s.B] = permSupport[s.B], permSupport[s.A]
			permWeight[s.A], permWeight[s.B] = permWeight[s.B], permWeight[s.A]
		}

		// RREF leaves h as [I_mt | A]; the public key is the trailing
		// non-identity block.
		a := gf2mat.New(mt, n-mt)
		for r := 0; r < mt; r++ {
			for c := 0; c < n-mt; c++ {
				a.SetBit(r, c, h.Bit(r, mt+c))
			}
		}

		z := make([]byte, n)
		rng.Read(z)

		pk := &PublicKey{Params: params, A: a}
		sk := &PrivateKey{
			Params:  params,
			A0:      append([]field.Elem{}, g[:t]...),
			Support: permSupport,
			H:       f.FromSlice(permWeight),
			Perm:    swaps,
			Z:       z,
		}
		return pk, sk, nil
	}
	return nil, nil, ErrKeygenExhausted
}

// evalOnSupport evaluates the polynomial g at every support point via
// the batched bit-sliced transform, 64 points per step.
func evalOnSupport(f *field.Field, g, support []field.Elem) []field.Elem {
	coeffs := make([]field.Vec, len(g))
	for i, c := range g {
		coeffs[i] = f.Broadcast(c)
	}
	out := afft.Eval(f, coeffs, f.FromSlice(support))
	return out.ToSlice(len(support))
}

// buildParityCheck forms the binary expansion of H~[i][j] = L_j^i /
// G(L_j), i=0..t-1, j=0..n-1, from the precomputed evaluations gl =
// G(L), inverting each and advancing the Vandermonde power one row at
// a time.
func buildParityCheck(f *field.Field, params Params, gl, support []field.Elem) *gf2mat.Matrix {
	n := len(support)
	power := make([]field.Elem, n)
	for j := range support {
		power[j] = f.Inv(gl[j])
	}

	h := gf2mat.New(params.T*params.M, n)
	for i := 0; i < params.T; i++ {
		for j := range support {
			v := power[j]
			for k := 0; k < params.M; k++ {
				h.SetBit(i*params.M+k, j, uint64(v>>uint(k))&1)
			}
		}
		if i+1 < params.T {
			for j := range support {
				power[j] = f.Mul(power[j], support[j])
			}
		}
	}
	return h
}

// RebuildPublicKey recomputes PublicKey from a PrivateKey alone, by
// re-running the parity-check construction over sk.G()/sk.Support.
// Since Support is already in PublicKey.A's column order, the
// re-derived matrix's RREF needs no further column swaps and
// reproduces the original systematic block exactly.
func RebuildPublicKey(sk *PrivateKey) (*PublicKey, error) {
	f := field.New(sk.Params.M)
	mt := sk.Params.MT()
	n := sk.Params.N()

	h := buildParityCheck(f, sk.Params, evalOnSupport(f, sk.G(), sk.Support), sk.Support)
	rank, _ := h.RREF()
	if rank != mt {
		return nil, errors.New("goppa: private key does not reproduce a full-rank parity check")
	}

	a := gf2mat.New(mt, n-mt)
	for r := 0; r < mt; r++ {
		for c := 0; c < n-mt; c++ {
			a.SetBit(r, c, h.Bit(r, mt+c))
		}
	}
	return &PublicKey{Params: sk.Params, A: a}, nil
}

// sampleIrreducible draws a candidate monic degree-t polynomial and
// tests it for irreducibility, retrying internally a bounded number
// of times before reporting failure to the outer keygen loop.
func sampleIrreducible(rng *drbg.Stream, f *field.Field, t int) ([]field.Elem, bool) {
	for i := 0; i < maxAttempts; i++ {
		g := make([]field.Elem, t+1)
		buf := make([]byte, 2*t)
		rng.Read(buf)
		for k := 0; k < t; k++ {
			v := uint16(buf[2*k]) | uint16(buf[2*k+1])<<8
			g[k] = field.Elem(v) & f.Mask()
		}
		g[t] = 1
		if IsIrreducible(f, g) {
			return g, true
		}
	}
	return nil, false
}

// sampleSupport draws a Fisher-Yates shuffle of the canonical support
// ordering and verifies the Goppa polynomial has no root in it.
func sampleSupport(rng *drbg.Stream, f *field.Field, n int, g []field.Elem) ([]field.Elem, bool) {
	support := make([]field.Elem, n)
	for i := range support {
		support[i] = field.Elem(i)
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Uint16Bounded(uint16(i + 1))
		support[i], support[j] = support[j], support[i]
	}
	for _, l := range support {
		if f.EvalPoly(g, l) == 0 {
			return nil, false
		}
	}
	return support, true
}
