// Package ntskemcore implements the parameter-generic NTS-KEM keypair,
// encapsulation and decapsulation logic, built on top of internal/goppa's
// key generation and internal/{field,afft,bma,sha3x}'s arithmetic. It
// mirrors the shape of a deriveKeyPair/Encapsulate/Decapsulate trio,
// generalized from one fixed parameter set to the three parameter sets
// named by goppa.Params.
package ntskemcore

import (
	"crypto/rand"

	"github.com/post-quantum/nts-kem/internal/afft"
	"github.com/post-quantum/nts-kem/internal/bma"
	"github.com/post-quantum/nts-kem/internal/ctbits"
	"github.com/post-quantum/nts-kem/internal/drbg"
	"github.com/post-quantum/nts-kem/internal/field"
	"github.com/post-quantum/nts-kem/internal/goppa"
	"github.com/post-quantum/nts-kem/internal/sha3x"
)

// Re-exported so callers outside this package need only import
// ntskemcore, not goppa, for the common types.
type (
	Params     = goppa.Params
	PublicKey  = goppa.PublicKey
	PrivateKey = goppa.PrivateKey
)

const (
	tagCiphertextHash byte = 0x01
	tagSharedKey      byte = 0x02
	tagRejectionKey   byte = 0x03
)

// SeedSize is the number of bytes GenerateKeyPair and DeriveKeyPair draw
// for the DRBG's initial seed.
const SeedSize = 32

// GenerateKeyPair draws a fresh random seed from the operating system's
// CSPRNG and derives a keypair from it.
func GenerateKeyPair(params Params) (*PublicKey, *PrivateKey, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, nil, &Error{Kind: KindRNGUnavailable, Err: err}
	}
	return DeriveKeyPair(params, seed)
}

// DeriveKeyPair deterministically derives a keypair from an explicit
// seed, the same entry point the reference's deriveKeyPair serves for
// known-answer reproducibility.
func DeriveKeyPair(params Params, seed []byte) (*PublicKey, *PrivateKey, error) {
	rng := drbg.NewStream(seed)
	pk, sk, err := goppa.Keygen(rng, params)
	if err != nil {
		return nil, nil, &Error{Kind: KindKeygenExhausted, Err: err}
	}
	return pk, sk, nil
}

// PublicFromPrivate reconstructs a PublicKey from a PrivateKey alone,
// as PrivateKey.Public() needs.
func PublicFromPrivate(sk *PrivateKey) (*PublicKey, error) {
	pk, err := goppa.RebuildPublicKey(sk)
	if err != nil {
		return nil, &Error{Kind: KindParamInvalid, Err: err}
	}
	return pk, nil
}

// CiphertextSize returns the ciphertext length in bytes for params:
// ceil((mt+256)/8), the mt-bit systematic syndrome block followed by
// the 256-bit ciphertext hash. For all three supported parameter sets
// mt is already a multiple of 8, so this equals ceil(mt/8) + 32
// exactly, the byte layout EncapsulateDeterministically and
// Decapsulate actually build and parse.
func CiphertextSize(params Params) int {
	mt := params.MT()
	return (mt + 8*sha3x.DigestSize + 7) / 8
}

// Encapsulate draws a fresh random error vector and returns the
// ciphertext and shared key.
func Encapsulate(pk *PublicKey) (ciphertext, sharedKey []byte, err error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, nil, &Error{Kind: KindRNGUnavailable, Err: err}
	}
	return EncapsulateDeterministically(pk, seed)
}

// EncapsulateDeterministically is Encapsulate with the error vector
// drawn from a DRBG seeded with an explicit seed, rather than the
// system CSPRNG.
func EncapsulateDeterministically(pk *PublicKey, seed []byte) (ciphertext, sharedKey []byte, err error) {
	params := pk.Params
	n := params.N()
	mt := params.MT()
	t := params.T

	rng := drbg.NewStream(seed)
	e := sampleErrorVector(rng, n, t)

	ea := extractBits(e, 0, mt)
	ec := extractBits(e, mt, n-mt)
	syndromeBlock := matVecMulGF2(pk.A, ec)
	for i := range syndromeBlock {
		syndromeBlock[i] ^= ea[i]
	}

	eBytes := packedToBytes(e, n)
	cHash := sha3x.Sum256Tagged(tagCiphertextHash, eBytes)
	key := sha3x.Sum256Tagged(tagSharedKey, eBytes)

	ct := make([]byte, 0, CiphertextSize(params))
	ct = append(ct, packedToBytes(syndromeBlock, mt)...)
	ct = append(ct, cHash[:]...)
	return ct, key[:], nil
}

// matVecMulGF2 computes A*x over GF(2), where x is packed with A.Cols()
// bits starting at bit 0, returning an A.Rows()-bit packed result.
func matVecMulGF2(a interface {
	Rows() int
	Cols() int
	Row(int) []uint64
}, x []uint64) []uint64 {
	rows := a.Rows()
	out := make([]uint64, (rows+63)/64)
	for r := 0; r < rows; r++ {
		row := a.Row(r)
		var acc uint64
		for i, w := range row {
			if i < len(x) {
				acc ^= w & x[i]
			}
		}
		out[r/64] |= uint64(ctbits.Popcount64(acc)&1) << uint(r%64)
	}
	return out
}

// Decapsulate recovers the shared key from a ciphertext. Decoding
// failure is never surfaced to the caller: on any
// validity-check failure it returns the implicit-rejection key derived
// from the private key's fallback secret instead of an error, so the
// two code paths are indistinguishable from the outside.
func Decapsulate(sk *PrivateKey, ciphertext []byte) ([]byte, error) {
	params := sk.Params
	n := params.N()
	mt := params.MT()
	t := params.T

	want := CiphertextSize(params)
	if len(ciphertext) != want {
		return nil, &Error{Kind: KindParamInvalid}
	}
	cBytes := ciphertext[:(mt+7)/8]
	var cHash [32]byte
	copy(cHash[:], ciphertext[(mt+7)/8:])

	// v is the received word (c, padded with n-mt zero bits): cBytes and
	// v agree bit-for-bit from position 0, so the packed words can be
	// copied directly rather than re-walked bit by bit.
	v := make([]uint64, (n+63)/64)
	mtBits := bytesToPacked(cBytes, mt)
	copy(v, mtBits)

	f := field.New(params.M)
	supportBatch := f.FromSlice(sk.Support)
	syn := afft.Syndromes(f, supportBatch, sk.H, v, 2*t)

	result := bma.Run(f, syn, t)
	ctbits.SecureZeroWords(syn)
	sigmaVecs := make([]field.Vec, len(result.Sigma))
	for i, c := range result.Sigma {
		sigmaVecs[i] = f.Broadcast(c)
	}
	evalBatch := afft.Eval(f, sigmaVecs, supportBatch)
	for _, vec := range sigmaVecs {
		ctbits.SecureZeroWords(vec)
	}
	ctbits.SecureZeroWords(result.Sigma)

	// A lane holds an error position exactly when every one of its bit
	// planes is clear, so ORing the planes and complementing yields all
	// 64 error flags of a batch at once, with no per-lane branch. n is a
	// power of two >= 64, so there are no trailing lanes to mask off.
	eprime := make([]uint64, (n+63)/64)
	for b := range evalBatch {
		var nz uint64
		for p := range evalBatch[b] {
			nz |= evalBatch[b][p]
		}
		eprime[b] = ^nz
	}
	for _, vec := range evalBatch {
		ctbits.SecureZeroWords(vec)
	}

	// packedWeight's popcount runs over the candidate error vector, which
	// is secret, but the popcount instruction itself has operand-
	// independent latency on every target this package cares about.
	weightOK := ctbits.Equal32(uint32(packedWeight(eprime)), uint32(t))

	// result.Xi is set when the recovered locator's degree fell short of
	// t: the decoder didn't find a full-weight error pattern, so this
	// decode attempt is rejected alongside the weight and syndrome
	// checks rather than only implicitly through them.
	xiOK := ctbits.EqZero32(int32(result.Xi))

	reSyn := make([]uint64, len(v))
	for i := range reSyn {
		reSyn[i] = v[i] ^ eprime[i]
	}
	resynd := afft.Syndromes(f, supportBatch, sk.H, reSyn, 2*t)
	var synDiff field.Elem
	for _, s := range resynd {
		synDiff |= s
	}
	syndromeOK := field.ConstantTimeIsZero(synDiff)
	ctbits.SecureZeroWords(reSyn)
	ctbits.SecureZeroWords(resynd)

	eprimeBytes := packedToBytes(eprime, n)
	gotHash := sha3x.Sum256Tagged(tagCiphertextHash, eprimeBytes)
	var hashDiff byte
	for i := range gotHash {
		hashDiff |= gotHash[i] ^ cHash[i]
	}
	hashOK := ctbits.EqZero32(int32(hashDiff))

	ok := weightOK & syndromeOK & hashOK & xiOK

	// The fallback covers the whole ciphertext, not just the syndrome
	// block: two invalid ciphertexts differing only in their hash tail
	// must still produce unrelated rejection keys.
	realKey := sha3x.Sum256Tagged(tagSharedKey, eprimeBytes)
	fallbackKey := sha3x.Sum256Tagged(tagRejectionKey, sk.Z, ciphertext)

	ctbits.SecureZeroWords(eprime)
	ctbits.SecureZero(eprimeBytes)

	key := muxBytes(ok, realKey[:], fallbackKey[:])
	return key, nil
}

// muxBytes selects a when ctl == 1 and b when ctl == 0, in time
// independent of ctl, for equal-length byte slices whose length is a
// multiple of 8 (the 32-byte key outputs this package combines).
func muxBytes(ctl uint32, a, b []byte) []byte {
	out := make([]byte, len(a))
	c := uint64(ctl)
	for i := 0; i < len(a); i += 8 {
		var wa, wb uint64
		for k := 0; k < 8; k++ {
			wa |= uint64(a[i+k]) << uint(8*k)
			wb |= uint64(b[i+k]) << uint(8*k)
		}
		w := ctbits.Mux64(c, wa, wb)
		for k := 0; k < 8; k++ {
			out[i+k] = byte(w >> uint(8*k))
		}
	}
	return out
}
