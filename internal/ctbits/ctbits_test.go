package ctbits

import "testing"

func TestMux64(t *testing.T) {
	if Mux64(1, 7, 9) != 7 {
		t.Fatal("ctl=1 should select a")
	}
	if Mux64(0, 7, 9) != 9 {
		t.Fatal("ctl=0 should select b")
	}
}

func TestEqZero(t *testing.T) {
	if EqZero64(0) != 1 {
		t.Fatal("0 should be equal to zero")
	}
	if EqZero64(5) != 0 {
		t.Fatal("5 should not be equal to zero")
	}
	if EqZero64(-5) != 0 {
		t.Fatal("-5 should not be equal to zero")
	}
}

func TestLessThan(t *testing.T) {
	cases := []struct{ a, b uint32 }{{1, 2}, {2, 1}, {3, 3}, {0, 0xFFFFFFFF}}
	for _, c := range cases {
		got := LessThan32(c.a, c.b) == 1
		want := c.a < c.b
		if got != want {
			t.Fatalf("LessThan32(%d, %d) = %v, want %v", c.a, c.b, got, want)
		}
	}
}

func TestPopcountHighestBit(t *testing.T) {
	if Popcount64(0b1011) != 3 {
		t.Fatal("wrong popcount")
	}
	if HighestBitIndex(0) != -1 {
		t.Fatal("highest bit of 0 should be -1")
	}
	if HighestBitIndex(0b1000) != 3 {
		t.Fatal("wrong highest bit index")
	}
	if LowestBitIndex(0b1000) != 3 {
		t.Fatal("wrong lowest bit index")
	}
}

func TestSecureZeroWords(t *testing.T) {
	buf := []uint64{1, 2, 3, 0xFFFFFFFFFFFFFFFF}
	SecureZeroWords(buf)
	for i, w := range buf {
		if w != 0 {
			t.Fatalf("word %d not zeroed: %x", i, w)
		}
	}

	type elem uint16
	e := []elem{7, 8, 9}
	SecureZeroWords(e)
	for i, w := range e {
		if w != 0 {
			t.Fatalf("elem %d not zeroed: %x", i, w)
		}
	}
}

func TestVectorEqual(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{1, 2, 3}
	c := []byte{1, 2, 4}
	if !VectorEqual(a, b) {
		t.Fatal("equal vectors should compare equal")
	}
	if VectorEqual(a, c) {
		t.Fatal("different vectors should not compare equal")
	}
	if VectorEqual(a, []byte{1, 2}) {
		t.Fatal("different-length vectors should not compare equal")
	}
}
