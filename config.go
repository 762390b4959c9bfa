package licensekey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// GeneratorConfig is the on-disk description of a generation vector.
//
//	vector:
//	  - [114, 83, 170]
//	  - [60, 208, 27]
//
// Keep this file on the issuing side only.
type GeneratorConfig struct {
	Vector [][]uint64 `yaml:"vector"`
}

// CheckConfig describes one byte check.
type CheckConfig struct {
	Index   int      `yaml:"index"`
	Triplet []uint64 `yaml:"triplet"`
}

// VerifierConfig is the on-disk description of a verifier.
//
//	payload_length: 4
//	format: hex
//	checks:
//	  - index: 0
//	    triplet: [114, 83, 170]
//	blocked: [11111111]
type VerifierConfig struct {
	PayloadLength int           `yaml:"payload_length"`
	Format        string        `yaml:"format"`
	Checks        []CheckConfig `yaml:"checks"`
	Blocked       []uint64      `yaml:"blocked"`
}

// ParseGeneratorConfig decodes a YAML generator configuration.
func ParseGeneratorConfig(data []byte) (GeneratorConfig, error) {
	var cfg GeneratorConfig
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return GeneratorConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// LoadGeneratorConfig reads and decodes a YAML generator configuration file.
func LoadGeneratorConfig(path string) (GeneratorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GeneratorConfig{}, fmt.Errorf("read generator config: %w", err)
	}
	return ParseGeneratorConfig(data)
}

// ParseVerifierConfig decodes a YAML verifier configuration.
func ParseVerifierConfig(data []byte) (VerifierConfig, error) {
	var cfg VerifierConfig
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return VerifierConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// LoadVerifierConfig reads and decodes a YAML verifier configuration file.
func LoadVerifierConfig(path string) (VerifierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return VerifierConfig{}, fmt.Errorf("read verifier config: %w", err)
	}
	return ParseVerifierConfig(data)
}

func tripletFrom(vals []uint64) (Triplet, error) {
	if len(vals) != 3 {
		return Triplet{}, fmt.Errorf("%w: triplet needs 3 values, got %d", ErrInvalidConfiguration, len(vals))
	}
	return Triplet{A: vals[0], B: vals[1], C: vals[2]}, nil
}

// Triplets converts the configured vector.
func (c GeneratorConfig) Triplets() ([]Triplet, error) {
	out := make([]Triplet, 0, len(c.Vector))
	for i, vals := range c.Vector {
		t, err := tripletFrom(vals)
		if err != nil {
			return nil, fmt.Errorf("vector[%d]: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// ByteChecks converts the configured checks.
func (c VerifierConfig) ByteChecks() ([]ByteCheck, error) {
	out := make([]ByteCheck, 0, len(c.Checks))
	for i, cc := range c.Checks {
		t, err := tripletFrom(cc.Triplet)
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		out = append(out, ByteCheck{Index: cc.Index, Triplet: t})
	}
	return out, nil
}

// KeyFormat returns the configured format, Hex when none is set.
func (c VerifierConfig) KeyFormat() (Format, error) {
	if c.Format == "" {
		return Hex, nil
	}
	f, ok := FormatByName(c.Format)
	if !ok {
		return nil, fmt.Errorf("%w: unknown key format %q", ErrInvalidConfiguration, c.Format)
	}
	return f, nil
}

// NewGeneratorFromConfig creates a generator from a decoded configuration.
func NewGeneratorFromConfig(h Hasher, cfg GeneratorConfig) (*Generator, error) {
	vector, err := cfg.Triplets()
	if err != nil {
		return nil, err
	}
	return NewGenerator(h, vector)
}

// NewVerifierFromConfig creates a verifier from a decoded configuration.
// Seeds listed under blocked are applied in memory after opts.
func NewVerifierFromConfig(h Hasher, cfg VerifierConfig, opts ...VerifierOption) (*Verifier, error) {
	checks, err := cfg.ByteChecks()
	if err != nil {
		return nil, err
	}
	if _, err := cfg.KeyFormat(); err != nil {
		return nil, err
	}
	all := append(append([]VerifierOption(nil), opts...), WithBlocked(cfg.Blocked...))
	return NewVerifier(h, cfg.PayloadLength, checks, all...)
}
