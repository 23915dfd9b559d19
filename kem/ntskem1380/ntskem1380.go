// Package ntskem1380 implements the NTS-KEM(13,80) parameter set: a
// thin, byte-size-aware wrapper around internal/ntskemcore, in the
// same one-package-per-parameter-set shape conventional for this class
// of KEM scheme.
package ntskem1380

import (
	"bytes"

	"github.com/post-quantum/nts-kem/internal/ntskemcore"
	"github.com/post-quantum/nts-kem/kem"
)

var params = ntskemcore.Params{M: 13, T: 80}

const (
	// SeedSize is the number of bytes DeriveKeyPair and
	// EncapsulateDeterministically consume.
	SeedSize = ntskemcore.SeedSize
	// SharedKeySize is the length of the key Encapsulate/Decapsulate
	// produce.
	SharedKeySize = 32
)

var (
	PublicKeySize  = ntskemcore.PublicKeySize(params)
	PrivateKeySize = ntskemcore.PrivateKeySize(params)
	CiphertextSize = ntskemcore.CiphertextSize(params)
)

type PublicKey struct{ inner *ntskemcore.PublicKey }

type PrivateKey struct{ inner *ntskemcore.PrivateKey }

type scheme struct{}

var sch kem.Scheme = &scheme{}

// Scheme returns this parameter set's KEM interface.
func Scheme() kem.Scheme { return sch }

func (*scheme) Name() string               { return "NTS-KEM(13,80)" }
func (*scheme) PublicKeySize() int         { return PublicKeySize }
func (*scheme) PrivateKeySize() int        { return PrivateKeySize }
func (*scheme) SeedSize() int              { return SeedSize }
func (*scheme) SharedKeySize() int         { return SharedKeySize }
func (*scheme) CiphertextSize() int        { return CiphertextSize }
func (*scheme) EncapsulationSeedSize() int { return SeedSize }

func (pk *PublicKey) Scheme() kem.Scheme  { return sch }
func (sk *PrivateKey) Scheme() kem.Scheme { return sch }

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return ntskemcore.MarshalPublicKey(pk.inner), nil
}

func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	return ntskemcore.MarshalPrivateKey(sk.inner), nil
}

func (pk *PublicKey) Equal(other kem.PublicKey) bool {
	oth, ok := other.(*PublicKey)
	if !ok {
		return false
	}
	a, _ := pk.MarshalBinary()
	b, _ := oth.MarshalBinary()
	return bytes.Equal(a, b)
}

func (sk *PrivateKey) Equal(other kem.PrivateKey) bool {
	oth, ok := other.(*PrivateKey)
	if !ok {
		return false
	}
	a, _ := sk.MarshalBinary()
	b, _ := oth.MarshalBinary()
	return bytes.Equal(a, b)
}

func (sk *PrivateKey) Public() kem.PublicKey {
	pk, err := ntskemcore.PublicFromPrivate(sk.inner)
	if err != nil {
		panic(err)
	}
	return &PublicKey{inner: pk}
}

func (*scheme) GenerateKeyPair() (kem.PublicKey, kem.PrivateKey, error) {
	pk, sk, err := ntskemcore.GenerateKeyPair(params)
	if err != nil {
		return nil, nil, err
	}
	return &PublicKey{inner: pk}, &PrivateKey{inner: sk}, nil
}

func (*scheme) DeriveKeyPair(seed []byte) (kem.PublicKey, kem.PrivateKey) {
	if len(seed) != SeedSize {
		panic("ntskem1380: seed must be SeedSize bytes")
	}
	pk, sk, err := ntskemcore.DeriveKeyPair(params, seed)
	if err != nil {
		panic(err)
	}
	return &PublicKey{inner: pk}, &PrivateKey{inner: sk}
}

func (*scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	p, ok := pk.(*PublicKey)
	if !ok {
		return nil, nil, &ntskemcore.Error{Kind: ntskemcore.KindParamInvalid}
	}
	return ntskemcore.Encapsulate(p.inner)
}

func (*scheme) EncapsulateDeterministically(pk kem.PublicKey, seed []byte) (ct, ss []byte, err error) {
	p, ok := pk.(*PublicKey)
	if !ok {
		return nil, nil, &ntskemcore.Error{Kind: ntskemcore.KindParamInvalid}
	}
	return ntskemcore.EncapsulateDeterministically(p.inner, seed)
}

func (*scheme) Decapsulate(sk kem.PrivateKey, ct []byte) ([]byte, error) {
	s, ok := sk.(*PrivateKey)
	if !ok {
		return nil, &ntskemcore.Error{Kind: ntskemcore.KindParamInvalid}
	}
	if len(ct) != CiphertextSize {
		return nil, kem.ErrCiphertextSize
	}
	return ntskemcore.Decapsulate(s.inner, ct)
}

func (*scheme) UnmarshalBinaryPublicKey(buf []byte) (kem.PublicKey, error) {
	pk, err := ntskemcore.UnmarshalPublicKey(params, buf)
	if err != nil {
		return nil, kem.ErrPubKeySize
	}
	return &PublicKey{inner: pk}, nil
}

func (*scheme) UnmarshalBinaryPrivateKey(buf []byte) (kem.PrivateKey, error) {
	sk, err := ntskemcore.UnmarshalPrivateKey(params, buf)
	if err != nil {
		return nil, kem.ErrPrivKeySize
	}
	return &PrivateKey{inner: sk}, nil
}
