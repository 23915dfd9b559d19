package bma

import (
	"math/rand"
	"testing"

	"github.com/post-quantum/nts-kem/internal/field"
)

// syndromesFromSigma generates 2t syndromes that satisfy the linear
// recurrence defined by sigma (sigma[0]==1, degree L), seeded with L
// random initial syndromes, so that running BMA against the result
// must recover sigma exactly (up to Run's output reversal).
func syndromesFromSigma(f *field.Field, sigma []field.Elem, L, twoT int, rng *rand.Rand) []field.Elem {
	syn := make([]field.Elem, twoT)
	for i := 0; i < L; i++ {
		syn[i] = field.Elem(rng.Intn(f.N))
	}
	for i := L; i < twoT; i++ {
		var s field.Elem
		for j := 1; j <= L; j++ {
			s = f.Add(s, f.Mul(sigma[j], syn[i-j]))
		}
		syn[i] = s
	}
	return syn
}

func TestRunRecoversKnownLocator(t *testing.T) {
	f := field.New(12)
	const t_ = 20
	rng := rand.New(rand.NewSource(99))

	cases := []int{0, 1, 5, 13, t_}
	for _, L := range cases {
		sigma := make([]field.Elem, 2*t_+1)
		sigma[0] = 1
		for i := 1; i <= L; i++ {
			v := field.Elem(rng.Intn(f.N-1) + 1)
			sigma[i] = v
		}
		// Force exact degree L by making the leading coefficient nonzero.
		if L > 0 {
			for sigma[L] == 0 {
				sigma[L] = field.Elem(rng.Intn(f.N-1) + 1)
			}
		}

		syn := syndromesFromSigma(f, sigma, L, 2*t_, rng)
		got := Run(f, syn, t_)

		if got.L != L {
			t.Fatalf("L=%d: recovered degree %d, want %d", L, got.L, L)
		}
		// Run emits the recursion's sigma reversed within a t+1 window:
		// coefficient i of the recursion sits at position t-i.
		for i := 0; i <= L; i++ {
			if got.Sigma[t_-i] != sigma[i] {
				t.Fatalf("L=%d: coefficient %d = %d, want %d", L, i, got.Sigma[t_-i], sigma[i])
			}
		}
		for i := L + 1; i <= t_; i++ {
			if got.Sigma[t_-i] != 0 {
				t.Fatalf("L=%d: expected zero coefficient at %d, got %d", L, i, got.Sigma[t_-i])
			}
		}
	}
}

// TestRunLocatorVanishesAtErrorPositions feeds Run the power-sum
// syndromes S_i = sum_l h_l * x_l^i of a known error set and checks the
// returned polynomial vanishes exactly on that set, including the case
// where the support value 0 is one of the error positions (there the
// connection polynomial's degree falls one short and the reversal's
// root at 0 must cover it).
func TestRunLocatorVanishesAtErrorPositions(t *testing.T) {
	f := field.New(12)
	const t_ = 6
	rng := rand.New(rand.NewSource(101))

	cases := [][]field.Elem{
		{3, 17, 255, 1024, 2049, 4000},
		{0, 17, 255, 1024, 2049, 4000}, // zero support point in error
	}
	for ci, errs := range cases {
		syn := make([]field.Elem, 2*t_)
		weights := make([]field.Elem, len(errs))
		for i := range weights {
			weights[i] = field.Elem(rng.Intn(f.N-1) + 1)
		}
		for i := range syn {
			var s field.Elem
			for l, x := range errs {
				s = f.Add(s, f.Mul(weights[l], f.Exp(x, i)))
			}
			syn[i] = s
		}

		got := Run(f, syn, t_)
		if got.L != t_ {
			t.Fatalf("case %d: LFSR length %d, want %d", ci, got.L, t_)
		}
		inErr := map[field.Elem]bool{}
		for _, x := range errs {
			inErr[x] = true
		}
		for x := 0; x < f.N; x++ {
			v := f.EvalPoly(got.Sigma, field.Elem(x))
			if inErr[field.Elem(x)] && v != 0 {
				t.Fatalf("case %d: locator nonzero at error position %d", ci, x)
			}
			if !inErr[field.Elem(x)] && v == 0 {
				t.Fatalf("case %d: locator vanished at non-error position %d", ci, x)
			}
		}
	}
}

func TestRunXiReflectsDegreeShortfall(t *testing.T) {
	f := field.New(12)
	const t_ = 10
	rng := rand.New(rand.NewSource(100))

	sigma := make([]field.Elem, 2*t_+1)
	sigma[0] = 1
	L := 4
	for i := 1; i <= L; i++ {
		sigma[i] = field.Elem(rng.Intn(f.N-1) + 1)
	}
	syn := syndromesFromSigma(f, sigma, L, 2*t_, rng)
	got := Run(f, syn, t_)
	if got.Xi != 1 {
		t.Fatalf("L=%d < t=%d: expected Xi=1, got %d", got.L, t_, got.Xi)
	}
}

func TestRunZeroSyndromesYieldsTrivialLocator(t *testing.T) {
	f := field.New(13)
	const t_ = 8
	syn := make([]field.Elem, 2*t_)
	got := Run(f, syn, t_)
	if got.L != 0 {
		t.Fatalf("all-zero syndromes: expected L=0, got %d", got.L)
	}
	if got.Sigma[t_] != 1 {
		t.Fatalf("all-zero syndromes: expected the reversed constant 1 at position t, got %d", got.Sigma[t_])
	}
}
