package field

import (
	"math/rand"
	"testing"
)

func TestVecMulMatchesScalarMul(t *testing.T) {
	f := New(13)
	rng := rand.New(rand.NewSource(3))
	as := make([]Elem, 64)
	bs := make([]Elem, 64)
	for i := range as {
		as[i] = Elem(rng.Intn(f.N))
		bs[i] = Elem(rng.Intn(f.N))
	}
	av := f.NewVec()
	bv := f.NewVec()
	for i := 0; i < 64; i++ {
		SetLane(av, i, as[i])
		SetLane(bv, i, bs[i])
	}
	dst := f.NewVec()
	f.VecMul(dst, av, bv)
	for i := 0; i < 64; i++ {
		want := f.Mul(as[i], bs[i])
		got := Lane(dst, i)
		if got != want {
			t.Fatalf("lane %d: VecMul=%d want %d", i, got, want)
		}
	}
}

func TestVecSqrMatchesScalarSqr(t *testing.T) {
	f := New(12)
	rng := rand.New(rand.NewSource(4))
	av := f.NewVec()
	as := make([]Elem, 64)
	for i := range as {
		as[i] = Elem(rng.Intn(f.N))
		SetLane(av, i, as[i])
	}
	dst := f.NewVec()
	f.VecSqr(dst, av)
	for i := 0; i < 64; i++ {
		if got, want := Lane(dst, i), f.Sqr(as[i]); got != want {
			t.Fatalf("lane %d: VecSqr=%d want %d", i, got, want)
		}
	}
}

func TestVecInvMatchesScalarInv(t *testing.T) {
	f := New(13)
	rng := rand.New(rand.NewSource(5))
	av := f.NewVec()
	as := make([]Elem, 64)
	for i := range as {
		as[i] = Elem(rng.Intn(f.N-1) + 1) // avoid 0 for most lanes
		SetLane(av, i, as[i])
	}
	SetLane(av, 0, 0) // and exercise the zero lane explicitly
	as[0] = 0

	dst := f.NewVec()
	f.VecInv(dst, av)
	for i := 0; i < 64; i++ {
		if got, want := Lane(dst, i), f.Inv(as[i]); got != want {
			t.Fatalf("lane %d: VecInv=%d want %d", i, got, want)
		}
	}
}

func TestBatchRoundTrip(t *testing.T) {
	f := New(12)
	rng := rand.New(rand.NewSource(6))
	elems := make([]Elem, 256)
	for i := range elems {
		elems[i] = Elem(rng.Intn(f.N))
	}
	b := f.FromSlice(elems)
	out := b.ToSlice(len(elems))
	for i := range elems {
		if out[i] != elems[i] {
			t.Fatalf("round trip mismatch at %d: got %d want %d", i, out[i], elems[i])
		}
	}
}
