// Package bma implements the Berlekamp-Massey algorithm that recovers
// the error-locator polynomial sigma from 2t syndrome symbols, using a
// sigma/beta/delta/R state machine. Every iteration performs the same
// field operations (the discrepancy, one inversion and the sigma
// update), so their number depends only on t. The next beta, L, delta
// and R are chosen by an ordinary if/else on the control bit, which is
// derived from the syndrome values; only the taken branch is computed.
package bma

import "github.com/post-quantum/nts-kem/internal/field"

// Result holds the recovered error-locator polynomial and the public
// correction bit xi.
type Result struct {
	// Sigma holds coefficients sigma[0..t], sigma[i] the coefficient of
	// z^i, after the final bit-reversal shift that aligns the recursion's
	// constant coefficient 1 to position t. In this orientation the
	// locator's roots are the support values at the error positions
	// themselves: a connection polynomial C(z) of degree d < t vanishes
	// at the inverses of the nonzero locators, so z^t*C(1/z) vanishes at
	// the locators and carries a root at 0 of multiplicity t-d, which is
	// exactly what makes a support point equal to zero decode correctly.
	Sigma []field.Elem
	L     int
	Xi    int
}

// Run executes the Berlekamp-Massey recursion over syn, exactly 2t
// syndrome symbols in GF(2^m), and returns the error-locator polynomial
// in the reversed orientation described on Result.Sigma, implemented
// directly over scalar coefficient slices with the sigma/beta/delta/L/R
// state conventional to this recursion.
func Run(f *field.Field, syn []field.Elem, t int) Result {
	twoT := 2 * t
	if len(syn) != twoT {
		panic("bma: expected exactly 2t syndromes")
	}

	width := twoT + 1
	sigma := make([]field.Elem, width)
	sigma[0] = 1
	beta := make([]field.Elem, width)
	beta[1] = 1
	delta := field.Elem(1)
	L := 0
	R := 0

	for i := 0; i < twoT; i++ {
		d := discrepancy(f, sigma, syn, i)

		// control selects which branch the step 5 formal names "then":
		// no progress is made this round (either the discrepancy is
		// already zero, or L hasn't yet been allowed to grow past
		// floor(i/2)).
		control := d == 0 || i < 2*L

		scale := f.Mul(d, f.Inv(delta))
		newSigma := make([]field.Elem, width)
		for k := range newSigma {
			newSigma[k] = f.Add(sigma[k], f.Mul(scale, beta[k]))
		}

		var newBeta []field.Elem
		var newL int
		var newDelta field.Elem
		var newR int
		if control {
			newBeta = shiftUp(beta, width)
			newL = L
			newDelta = delta
			newR = R + 1
		} else {
			newBeta = shiftUp(sigma, width)
			newL = i - L + 1
			newDelta = d
			newR = 0
		}

		sigma, beta, L, delta, R = newSigma, newBeta, newL, newDelta, newR
	}

	xi := 0
	if L < t {
		xi = 1
	}

	// Emit sigma reversed within a t+1 window so the constant 1 lands at
	// position t. See Result.Sigma for why the evaluation path wants this
	// orientation.
	out := make([]field.Elem, t+1)
	for k := 0; k <= t; k++ {
		out[t-k] = sigma[k]
	}
	return Result{Sigma: out, L: L, Xi: xi}
}

// discrepancy computes d = sum_j sigma[j] * syn[i-j], the next
// symbol the current candidate locator fails to predict.
func discrepancy(f *field.Field, sigma []field.Elem, syn []field.Elem, i int) field.Elem {
	var d field.Elem
	for j := 0; j < len(sigma) && j <= i; j++ {
		d = f.Add(d, f.Mul(sigma[j], syn[i-j]))
	}
	return d
}

// shiftUp returns z*p, i.e. p shifted up one degree, truncated to
// width coefficients.
func shiftUp(p []field.Elem, width int) []field.Elem {
	out := make([]field.Elem, width)
	for i := 0; i < len(p)-1 && i+1 < width; i++ {
		out[i+1] = p[i]
	}
	return out
}
