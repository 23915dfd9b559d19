package ntskemcore

import (
	"github.com/post-quantum/nts-kem/internal/field"
	"github.com/post-quantum/nts-kem/internal/gf2mat"
)

// PublicKeySize returns the public key's wire size: the systematic
// block's bits, packed as one contiguous bitstream with no per-row
// padding, (n-mt)*mt/8 bytes.
func PublicKeySize(params Params) int {
	mt := params.MT()
	n := params.N()
	return mt * (n - mt) / 8
}

// MarshalPublicKey packs pk.A row-major into a flat bitstream.
func MarshalPublicKey(pk *PublicKey) []byte {
	mt := pk.Params.MT()
	n := pk.Params.N()
	cols := n - mt
	out := make([]byte, PublicKeySize(pk.Params))
	bit := 0
	for r := 0; r < mt; r++ {
		for c := 0; c < cols; c++ {
			if pk.A.Bit(r, c) == 1 {
				out[bit/8] |= 1 << uint(bit%8)
			}
			bit++
		}
	}
	return out
}

// UnmarshalPublicKey is the inverse of MarshalPublicKey.
func UnmarshalPublicKey(params Params, buf []byte) (*PublicKey, error) {
	if len(buf) != PublicKeySize(params) {
		return nil, &Error{Kind: KindParamInvalid}
	}
	mt := params.MT()
	n := params.N()
	cols := n - mt
	a := gf2mat.New(mt, cols)
	bit := 0
	for r := 0; r < mt; r++ {
		for c := 0; c < cols; c++ {
			v := (buf[bit/8] >> uint(bit%8)) & 1
			a.SetBit(r, c, uint64(v))
			bit++
		}
	}
	return &PublicKey{Params: params, A: a}, nil
}

// PrivateKeySize returns the private-key wire size: the Goppa
// polynomial's low t coefficients, the n-point support, the n-point
// secret weight, and the n-byte implicit-rejection secret. The
// recorded column-swap list is deliberately not part of the wire
// format: decapsulation never consults it, since the support is
// already stored in the public key's column order.
func PrivateKeySize(params Params) int {
	t, n := params.T, params.N()
	return 2*t + 2*n + 2*n + n
}

// MarshalPrivateKey serializes sk per PrivateKeySize's layout.
func MarshalPrivateKey(sk *PrivateKey) []byte {
	n := sk.Params.N()
	h := sk.H.ToSlice(n)

	out := make([]byte, 0, PrivateKeySize(sk.Params))
	out = appendElems(out, sk.A0)
	out = appendElems(out, sk.Support)
	out = appendElems(out, h)
	out = append(out, sk.Z...)
	return out
}

// UnmarshalPrivateKey is the inverse of MarshalPrivateKey. The
// column-swap list is left empty: it played its role once, at the
// keygen call that produced this key, and decaps does not need it.
func UnmarshalPrivateKey(params Params, buf []byte) (*PrivateKey, error) {
	if len(buf) != PrivateKeySize(params) {
		return nil, &Error{Kind: KindParamInvalid}
	}
	f := field.New(params.M)
	t, n := params.T, params.N()

	pos := 0
	a0, pos := readElems(buf, pos, t)
	support, pos := readElems(buf, pos, n)
	hScalar, pos := readElems(buf, pos, n)
	z := append([]byte{}, buf[pos:pos+n]...)

	return &PrivateKey{
		Params:  params,
		A0:      a0,
		Support: support,
		H:       f.FromSlice(hScalar),
		Z:       z,
	}, nil
}

func appendElems(out []byte, elems []field.Elem) []byte {
	for _, e := range elems {
		out = append(out, byte(e), byte(e>>8))
	}
	return out
}

func readElems(buf []byte, pos, count int) ([]field.Elem, int) {
	out := make([]field.Elem, count)
	for i := 0; i < count; i++ {
		out[i] = field.Elem(buf[pos]) | field.Elem(buf[pos+1])<<8
		pos += 2
	}
	return out, pos
}
