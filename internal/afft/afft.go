// Package afft evaluates bounded-degree polynomials over GF(2^m) at
// every point of the field's support, batched 64 points at a time in
// the bit-sliced representation the rest of the engine uses, and
// computes syndrome power sums over the support. Evaluation is batched
// Horner, O(n*t) vector operations; DESIGN.md records the trade-off
// against the O(n log^2 n) Gao-Mateer butterfly network.
package afft

import "github.com/post-quantum/nts-kem/internal/field"

// EvalBatch evaluates the bit-sliced polynomial with coefficients
// coeffs (coeffs[i] is a Vec holding the coefficient of z^i across 64
// points, so len(coeffs) == degree+1) at the 64 points carried in
// points, returning the 64 evaluations as a Vec.
//
// mask, if non-nil, is ANDed into every output lane: an all-zero mask
// suppresses the evaluation's effect on the result without taking a
// different instruction path, letting callers perform conditional FFTs
// during decaps without a secret-dependent branch.
func EvalBatch(f *field.Field, coeffs []field.Vec, points field.Vec, mask field.Vec) field.Vec {
	if len(coeffs) == 0 {
		return f.NewVec()
	}
	acc := append(field.Vec{}, coeffs[len(coeffs)-1]...)
	tmp := f.NewVec()
	for i := len(coeffs) - 2; i >= 0; i-- {
		f.VecMul(tmp, acc, points)
		field.VecAdd(acc, tmp, coeffs[i])
	}
	if mask != nil {
		for i := range acc {
			acc[i] &= mask[i]
		}
	}
	return acc
}

// Eval evaluates the bit-sliced polynomial coeffs at every one of the
// n = f.N support points, returning n/64 Vec batches. points must hold
// n/64 batches giving the field's support, in the same batch order as
// the desired output.
func Eval(f *field.Field, coeffs []field.Vec, points field.Batch) field.Batch {
	out := make(field.Batch, len(points))
	for b := range points {
		out[b] = EvalBatch(f, coeffs, points[b], nil)
	}
	return out
}

// horizontalXor folds the 64 bits of a lane-plane word down to a
// single bit in bit 0: the XOR (parity) of all 64 bits.
func horizontalXor(w uint64) uint64 {
	w ^= w >> 32
	w ^= w >> 16
	w ^= w >> 8
	w ^= w >> 4
	w ^= w >> 2
	w ^= w >> 1
	return w & 1
}

// Syndromes computes the first count power-sum syndromes
//
//	S_i = sum_{j: v_j=1} h_j * L_j^i,  i = 0..count-1
//
// over the support L with per-point weights h (both given as n/64
// batches), for the 0/1-weighted index set described by v (one packed
// bit per support position, v[b] bit l selecting support position
// 64*b+l). Instead of evaluating a fixed coefficient polynomial at
// every point (what EvalBatch/Eval do), it accumulates power sums of
// the support weighted by the received word — the "transpose"
// direction of the same FFT machinery, walked one power at a time
// rather than via a single recursive pass.
func Syndromes(f *field.Field, support, h field.Batch, v []uint64, count int) []field.Elem {
	nb := len(support)
	hMasked := make(field.Batch, nb)
	curPow := make(field.Batch, nb)
	for b := 0; b < nb; b++ {
		hMasked[b] = f.NewVec()
		for p := 0; p < f.M; p++ {
			hMasked[b][p] = h[b][p] & v[b]
		}
		curPow[b] = f.Broadcast(1)
	}

	syn := make([]field.Elem, count)
	tmp := f.NewVec()
	next := f.NewVec()
	for i := 0; i < count; i++ {
		var acc field.Elem
		for b := 0; b < nb; b++ {
			f.VecMul(tmp, curPow[b], hMasked[b])
			for p := 0; p < f.M; p++ {
				acc ^= field.Elem(horizontalXor(tmp[p])) << uint(p)
			}
			if i+1 < count {
				f.VecMul(next, curPow[b], support[b])
				copy(curPow[b], next)
			}
		}
		syn[i] = acc
	}
	return syn
}
