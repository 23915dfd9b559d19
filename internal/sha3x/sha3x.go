// Package sha3x is the narrow SHA3-256/SHAKE256 façade the rest of the
// engine depends on, so that only this file imports
// golang.org/x/crypto/sha3 directly.
package sha3x

import "golang.org/x/crypto/sha3"

const DigestSize = 32

// Sum256 returns the SHA3-256 digest of data.
func Sum256(data []byte) [DigestSize]byte {
	return sha3.Sum256(data)
}

// Sum256Tagged returns SHA3-256(tag ∥ data...), the domain-separated
// hashing pattern used for the ciphertext confirmation hash, the real
// shared secret, and the implicit-rejection fallback secret.
func Sum256Tagged(tag byte, data ...[]byte) [DigestSize]byte {
	h := sha3.New256()
	h.Write([]byte{tag})
	for _, d := range data {
		h.Write(d)
	}
	var out [DigestSize]byte
	h.Sum(out[:0])
	return out
}

// Shake256 expands input deterministically into len(output) bytes via
// SHAKE256.
func Shake256(output, input []byte) {
	shake := sha3.NewShake256()
	shake.Write(input)
	shake.Read(output)
}
