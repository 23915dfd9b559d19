// Package kem defines the generic scheme interface every NTS-KEM
// parameter set implements, the conventional PublicKey/PrivateKey/
// Scheme shape used across Go's post-quantum KEM implementations.
package kem

import "errors"

// ErrPubKeySize is returned by UnmarshalBinaryPublicKey when the input
// does not match the scheme's PublicKeySize.
var ErrPubKeySize = errors.New("kem: incorrect public key size")

// ErrPrivKeySize is returned by UnmarshalBinaryPrivateKey when the
// input does not match the scheme's PrivateKeySize.
var ErrPrivKeySize = errors.New("kem: incorrect private key size")

// ErrCiphertextSize is returned by Decapsulate when the ciphertext
// length does not match the scheme's CiphertextSize.
var ErrCiphertextSize = errors.New("kem: incorrect ciphertext size")

// PublicKey is an opaque public key for some Scheme.
type PublicKey interface {
	Scheme() Scheme
	MarshalBinary() ([]byte, error)
	Equal(PublicKey) bool
}

// PrivateKey is an opaque private key for some Scheme.
type PrivateKey interface {
	Scheme() Scheme
	MarshalBinary() ([]byte, error)
	Equal(PrivateKey) bool
	Public() PublicKey
}

// Scheme represents a specific instance of a KEM.
type Scheme interface {
	Name() string
	PublicKeySize() int
	PrivateKeySize() int
	SeedSize() int
	SharedKeySize() int
	CiphertextSize() int
	EncapsulationSeedSize() int

	GenerateKeyPair() (PublicKey, PrivateKey, error)
	DeriveKeyPair(seed []byte) (PublicKey, PrivateKey)
	Encapsulate(pk PublicKey) (ct, ss []byte, err error)
	EncapsulateDeterministically(pk PublicKey, seed []byte) (ct, ss []byte, err error)
	Decapsulate(sk PrivateKey, ct []byte) ([]byte, error)
	UnmarshalBinaryPublicKey(buf []byte) (PublicKey, error)
	UnmarshalBinaryPrivateKey(buf []byte) (PrivateKey, error)
}
