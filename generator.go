package licensekey

import "fmt"

// Triplet is one entry of a generation vector. Each triplet yields one
// payload byte.
type Triplet struct {
	A, B, C uint64
}

// Generator issues license keys. It holds the full generation vector and
// must only ever be deployed on the issuing side.
type Generator struct {
	hasher Hasher
	vector []Triplet
}

// NewGenerator creates a generator for the given hasher and generation
// vector. The vector is copied; it must contain at least one triplet.
//
// Use many more triplets than any verifier checks, so that a disassembled
// verifier reveals only a fraction of the vector.
func NewGenerator(h Hasher, vector []Triplet) (*Generator, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil hasher", ErrInvalidConfiguration)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty generation vector", ErrInvalidConfiguration)
	}
	return &Generator{hasher: h, vector: append([]Triplet(nil), vector...)}, nil
}

// PayloadLen returns the number of payload bytes in generated keys.
func (g *Generator) PayloadLen() int { return len(g.vector) }

// Generate creates the license key for seed. Equal seeds always produce
// identical keys.
func (g *Generator) Generate(seed uint64) LicenseKey {
	payload := make([]byte, len(g.vector))
	for i, t := range g.vector {
		payload[i] = g.hasher.Hash(seed, t.A, t.B, t.C)
	}
	return LicenseKey{
		Seed:     seed,
		Payload:  payload,
		Checksum: Checksum(seed, payload),
	}
}
