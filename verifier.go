package licensekey

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Status is the outcome of verifying a license key. Every value is an
// ordinary result, not an error.
type Status int

const (
	// Invalid means the key is malformed: its checksum or payload length is
	// wrong, so it did not come out of any generator (typo, corruption,
	// random guess).
	Invalid Status = iota
	// Valid means the key passed every check.
	Valid
	// Blocked means the key is well formed but its seed has been revoked.
	Blocked
	// Forged means the key is well formed and not revoked, yet fails at
	// least one byte check.
	Forged
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Blocked:
		return "blocked"
	case Forged:
		return "forged"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ByteCheck is one verification probe: Payload[Index] must equal the
// hasher applied to the key's seed and Triplet.
type ByteCheck struct {
	Index   int
	Triplet Triplet
}

// NewByteCheck creates a byte check for payload index idx.
func NewByteCheck(idx int, a, b, c uint64) ByteCheck {
	return ByteCheck{Index: idx, Triplet: Triplet{A: a, B: b, C: c}}
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithRevocationStore persists blocked seeds to st. Seeds already in st are
// loaded when the verifier is created.
func WithRevocationStore(st RevocationStore) VerifierOption {
	return func(v *Verifier) { v.store = st }
}

// WithLogger sets the logger used for revocation events.
func WithLogger(l zerolog.Logger) VerifierOption {
	return func(v *Verifier) { v.log = l }
}

// WithBlocked pre-blocks seeds in memory only, e.g. a list compiled into
// a software update.
func WithBlocked(seeds ...uint64) VerifierOption {
	return func(v *Verifier) {
		for _, s := range seeds {
			v.blocked[s] = struct{}{}
		}
	}
}

// Verifier checks license keys against a subset of the generation vector
// and a revocation set. It is safe for concurrent use.
type Verifier struct {
	hasher     Hasher
	payloadLen int
	checks     []ByteCheck

	mu      sync.RWMutex
	blocked map[uint64]struct{}
	store   RevocationStore
	log     zerolog.Logger
	now     func() time.Time
}

// NewVerifier creates a verifier for keys with payloadLen payload bytes.
// Every check index must lie in [0, payloadLen). An empty check list is
// allowed; such a verifier only screens checksums and revocations.
func NewVerifier(h Hasher, payloadLen int, checks []ByteCheck, opts ...VerifierOption) (*Verifier, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil hasher", ErrInvalidConfiguration)
	}
	if payloadLen < 1 {
		return nil, fmt.Errorf("%w: payload length %d", ErrInvalidConfiguration, payloadLen)
	}
	for i, c := range checks {
		if c.Index < 0 || c.Index >= payloadLen {
			return nil, fmt.Errorf("%w: check %d index %d outside payload of %d bytes",
				ErrInvalidConfiguration, i, c.Index, payloadLen)
		}
	}

	v := &Verifier{
		hasher:     h,
		payloadLen: payloadLen,
		checks:     append([]ByteCheck(nil), checks...),
		blocked:    make(map[uint64]struct{}),
		log:        zerolog.Nop(),
		now:        time.Now,
	}
	for _, o := range opts {
		o(v)
	}

	if v.store != nil {
		seeds, err := v.store.List()
		if err != nil {
			return nil, fmt.Errorf("load revocations: %w", err)
		}
		for _, s := range seeds {
			v.blocked[s] = struct{}{}
		}
		v.log.Debug().Int("count", len(seeds)).Msg("loaded revoked seeds")
	}
	return v, nil
}

// PayloadLen returns the payload length this verifier expects.
func (v *Verifier) PayloadLen() int { return v.payloadLen }

// Block revokes seed. Blocking a seed twice has no further effect.
//
// With a revocation store the seed is persisted first; if that fails the
// in-memory set is left unchanged and the error is returned.
func (v *Verifier) Block(seed uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.blocked[seed]; ok {
		return nil
	}
	if v.store != nil {
		if err := v.store.Add(seed, v.now()); err != nil {
			return fmt.Errorf("persist revocation: %w", err)
		}
	}
	v.blocked[seed] = struct{}{}
	v.log.Info().Uint64("seed", seed).Msg("seed blocked")
	return nil
}

// IsBlocked reports whether seed has been revoked.
func (v *Verifier) IsBlocked(seed uint64) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.blocked[seed]
	return ok
}

// Blocked returns the revoked seeds in ascending order.
func (v *Verifier) Blocked() []uint64 {
	v.mu.RLock()
	out := make([]uint64, 0, len(v.blocked))
	for s := range v.blocked {
		out = append(out, s)
	}
	v.mu.RUnlock()
	slices.Sort(out)
	return out
}

// Verify evaluates key. The checks run in a fixed order: structure and
// checksum, then revocation, then the byte checks. A key failing the
// checksum carries no trustworthy seed, so revocation is never consulted
// for it.
func (v *Verifier) Verify(key LicenseKey) Status {
	if len(key.Payload) != v.payloadLen {
		return Invalid
	}
	if Checksum(key.Seed, key.Payload) != key.Checksum {
		return Invalid
	}

	if v.IsBlocked(key.Seed) {
		return Blocked
	}

	for _, c := range v.checks {
		if key.Payload[c.Index] != v.hasher.Hash(key.Seed, c.Triplet.A, c.Triplet.B, c.Triplet.C) {
			return Forged
		}
	}
	return Valid
}

// VerifyString parses input with f and verifies the result. Parse failures
// are returned as errors wrapping ErrMalformedInput.
func (v *Verifier) VerifyString(f Format, input string) (Status, error) {
	key, err := f.Parse(input, v.payloadLen)
	if err != nil {
		return Invalid, err
	}
	return v.Verify(key), nil
}
