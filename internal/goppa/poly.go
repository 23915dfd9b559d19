package goppa

import "github.com/post-quantum/nts-kem/internal/field"

// polyDeg returns the degree of p (index of its highest nonzero
// coefficient), or -1 for the zero polynomial.
func polyDeg(p []field.Elem) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

func polyTrim(p []field.Elem) []field.Elem {
	d := polyDeg(p)
	if d < 0 {
		return nil
	}
	return p[:d+1]
}

// polyAdd returns a+b over GF(2^m) (addition is XOR, so this is also
// subtraction), padded to the longer operand's length.
func polyAdd(f *field.Field, a, b []field.Elem) []field.Elem {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]field.Elem, n)
	for i := 0; i < n; i++ {
		var av, bv field.Elem
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = f.Add(av, bv)
	}
	return out
}

func polyEqual(a, b []field.Elem) bool {
	a, b = polyTrim(a), polyTrim(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// polyMulMod multiplies a and b over GF(2^m)[z] and reduces the
// product modulo mod, a monic polynomial of degree deg(mod). Every
// coefficient pair is combined unconditionally, with no branch on
// coefficient values. The other helpers IsIrreducible uses (polyRem,
// polyGCD) do branch on the degrees of their operands, and
// IsIrreducible returns as soon as one degree check fails.
func polyMulMod(f *field.Field, a, b, mod []field.Elem) []field.Elem {
	prod := make([]field.Elem, len(a)+len(b)-1)
	for i, ai := range a {
		for j, bj := range b {
			prod[i+j] = f.Add(prod[i+j], f.Mul(ai, bj))
		}
	}
	return polyModMonic(f, prod, mod)
}

// polyModMonic reduces a modulo the monic polynomial mod, returning a
// result of length deg(mod).
func polyModMonic(f *field.Field, a, mod []field.Elem) []field.Elem {
	t := len(mod) - 1
	rem := make([]field.Elem, len(a))
	copy(rem, a)
	for deg := len(rem) - 1; deg >= t; deg-- {
		c := rem[deg]
		for k := 0; k <= t; k++ {
			rem[deg-t+k] = f.Add(rem[deg-t+k], f.Mul(c, mod[k]))
		}
	}
	if len(rem) < t {
		out := make([]field.Elem, t)
		copy(out, rem)
		return out
	}
	return rem[:t]
}

// polyRem computes a mod b over GF(2^m)[z] for an arbitrary nonzero b
// (not necessarily monic), used by polyGCD.
func polyRem(f *field.Field, a, b []field.Elem) []field.Elem {
	bdeg := polyDeg(b)
	rem := make([]field.Elem, len(a))
	copy(rem, a)
	lcInv := f.Inv(b[bdeg])
	for {
		deg := polyDeg(rem)
		if deg < bdeg {
			break
		}
		c := f.Mul(rem[deg], lcInv)
		for k := 0; k <= bdeg; k++ {
			rem[deg-bdeg+k] = f.Add(rem[deg-bdeg+k], f.Mul(c, b[k]))
		}
	}
	return polyTrim(rem)
}

// polyGCD computes gcd(a, b) over GF(2^m)[z] via the Euclidean
// algorithm, up to a scalar multiple.
func polyGCD(f *field.Field, a, b []field.Elem) []field.Elem {
	a, b = polyTrim(a), polyTrim(b)
	for len(b) > 0 {
		r := polyRem(f, a, b)
		a, b = b, r
	}
	return a
}

func polyIsConstantNonZero(p []field.Elem) bool {
	p = polyTrim(p)
	return len(p) == 1 && p[0] != 0
}

// qthPower computes h^q mod mod, where q = 2^f.M, by squaring h
// f.M times modulo mod (Frobenius is additive and q-linear in
// characteristic 2, so repeated squaring computes it exactly).
func qthPower(f *field.Field, h, mod []field.Elem) []field.Elem {
	r := h
	for i := 0; i < f.M; i++ {
		r = polyMulMod(f, r, r, mod)
	}
	return r
}

// IsIrreducible reports whether the monic polynomial g (degree
// len(g)-1, g[len(g)-1] == 1) is irreducible over GF(2^m), via the
// standard product-tree distinct-degree test: x^(q^t) must reduce to x
// modulo g, and for every d in 1..t-1, gcd(x^(q^d) - x, g) must be
// trivial, ruling out any factor of degree dividing a proper divisor
// of t.
func IsIrreducible(f *field.Field, g []field.Elem) bool {
	t := len(g) - 1
	if t <= 0 || g[t] != 1 {
		return false
	}
	z := []field.Elem{0, 1}
	h := append([]field.Elem{}, z...)
	for d := 1; d < t; d++ {
		h = qthPower(f, h, g)
		diff := polyAdd(f, h, z)
		gcd := polyGCD(f, diff, g)
		if !polyIsConstantNonZero(gcd) {
			return false
		}
	}
	h = qthPower(f, h, g)
	return polyEqual(h, z)
}
