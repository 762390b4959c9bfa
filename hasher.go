package licensekey

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Hasher turns a seed and one generation vector triplet into a payload byte.
//
// The same Hasher must be given to the Generator and to every Verifier of a
// deployment; a mismatch is not detected and simply makes every key look
// forged. Implementations must be pure functions of their inputs and should
// be hard to predict for triplets that have not been observed.
type Hasher interface {
	Hash(seed, a, b, c uint64) byte
}

// HasherFunc adapts an ordinary function to the Hasher interface.
type HasherFunc func(seed, a, b, c uint64) byte

// Hash calls f(seed, a, b, c).
func (f HasherFunc) Hash(seed, a, b, c uint64) byte { return f(seed, a, b, c) }

// keyedHasher derives a payload byte from a keyed hash over the big-endian
// encoding of seed, a, b and c.
type keyedHasher struct {
	newHash func() hash.Hash
}

func (h keyedHasher) Hash(seed, a, b, c uint64) byte {
	var in [32]byte
	binary.BigEndian.PutUint64(in[0:8], seed)
	binary.BigEndian.PutUint64(in[8:16], a)
	binary.BigEndian.PutUint64(in[16:24], b)
	binary.BigEndian.PutUint64(in[24:32], c)
	m := h.newHash()
	_, _ = m.Write(in[:])
	return m.Sum(nil)[0]
}

// NewHMACHasher returns a Hasher built on HMAC-SHA256 keyed with secret.
// Verifier builds necessarily embed the secret, so it only raises the cost
// of writing a key generator; the partial byte checks remain the defence.
func NewHMACHasher(secret []byte) Hasher {
	key := append([]byte(nil), secret...)
	return keyedHasher{newHash: func() hash.Hash { return hmac.New(sha256.New, key) }}
}

// NewBlake2bHasher returns a Hasher built on keyed BLAKE2b-256.
// Secrets longer than 64 bytes are rejected.
func NewBlake2bHasher(secret []byte) (Hasher, error) {
	if len(secret) > blake2b.Size {
		return nil, fmt.Errorf("%w: blake2b secret longer than %d bytes", ErrInvalidConfiguration, blake2b.Size)
	}
	key := append([]byte(nil), secret...)
	if _, err := blake2b.New256(key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return keyedHasher{newHash: func() hash.Hash {
		m, _ := blake2b.New256(key)
		return m
	}}, nil
}
