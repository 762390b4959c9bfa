package licensekey

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// SeedSize is the number of bytes the seed occupies in a serialized key.
	SeedSize = 8
	// ChecksumSize is the number of bytes the checksum occupies in a serialized key.
	ChecksumSize = 2
)

// LicenseKey is a generated or parsed license key.
//
// Layout when flattened by Bytes:
//
//	[8]byte: seed (uint64 big-endian)
//	[n]byte: payload, one byte per generation vector triplet
//	[2]byte: checksum (uint16 big-endian)
type LicenseKey struct {
	Seed     uint64
	Payload  []byte
	Checksum uint16
}

// Bytes returns the flat seed || payload || checksum representation.
func (k LicenseKey) Bytes() []byte {
	buf := make([]byte, KeySize(len(k.Payload)))
	binary.BigEndian.PutUint64(buf[0:SeedSize], k.Seed)
	copy(buf[SeedSize:], k.Payload)
	binary.BigEndian.PutUint16(buf[SeedSize+len(k.Payload):], k.Checksum)
	return buf
}

// Equal reports whether both keys carry the same seed, payload and checksum.
func (k LicenseKey) Equal(o LicenseKey) bool {
	return k.Seed == o.Seed && k.Checksum == o.Checksum && bytes.Equal(k.Payload, o.Payload)
}

// String returns the key in Hex format.
func (k LicenseKey) String() string {
	return Hex.Serialize(k)
}

// KeySize returns the flat size in bytes of a key with payloadLen payload bytes.
func KeySize(payloadLen int) int {
	return SeedSize + payloadLen + ChecksumSize
}

// keyFromBytes splits a flat key. The caller supplies the expected payload
// length; it is never inferred from the input.
func keyFromBytes(b []byte, payloadLen int) (LicenseKey, error) {
	if payloadLen < 1 {
		return LicenseKey{}, fmt.Errorf("%w: payload length %d", ErrMalformedInput, payloadLen)
	}
	if len(b) != KeySize(payloadLen) {
		return LicenseKey{}, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrMalformedInput, KeySize(payloadLen), len(b))
	}
	return LicenseKey{
		Seed:     binary.BigEndian.Uint64(b[0:SeedSize]),
		Payload:  append([]byte(nil), b[SeedSize:SeedSize+payloadLen]...),
		Checksum: binary.BigEndian.Uint16(b[SeedSize+payloadLen:]),
	}, nil
}

// SeedFromString derives a seed from an owner identifier such as an e-mail
// address: the first 8 bytes of SHA-256 over the trimmed, lower-cased value.
func SeedFromString(owner string) uint64 {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(owner))))
	return binary.BigEndian.Uint64(sum[:SeedSize])
}
