package afft

import "github.com/post-quantum/nts-kem/internal/field"

// Interpolate recovers the unique polynomial of degree < len(points)
// that takes the given values at the given points (Lagrange
// interpolation), for use by tests checking that a polynomial is
// recovered from its evaluations. No production code path needs an
// inverse transform: both keygen and encaps/decaps only ever evaluate
// forward.
func Interpolate(f *field.Field, points, values []field.Elem) []field.Elem {
	n := len(points)
	coeffs := make([]field.Elem, n)
	for i := 0; i < n; i++ {
		// Basis polynomial l_i(z) = prod_{j!=i} (z - points[j]) / (points[i] - points[j]).
		basis := []field.Elem{1}
		denom := field.Elem(1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			basis = polyMulLinear(f, basis, points[j])
			denom = f.Mul(denom, f.Add(points[i], points[j]))
		}
		scale := f.Mul(values[i], f.Inv(denom))
		for k := 0; k < len(basis) && k < n; k++ {
			coeffs[k] = f.Add(coeffs[k], f.Mul(basis[k], scale))
		}
	}
	return coeffs
}

// polyMulLinear multiplies poly (coefficients low-to-high) by (z -
// root) i.e. (z + root) over GF(2^m), returning the product's
// coefficients.
func polyMulLinear(f *field.Field, poly []field.Elem, root field.Elem) []field.Elem {
	out := make([]field.Elem, len(poly)+1)
	for i, c := range poly {
		out[i] = f.Add(out[i], f.Mul(c, root))
		out[i+1] = f.Add(out[i+1], c)
	}
	return out
}
