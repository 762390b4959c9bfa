package licensekey

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Format converts license keys to and from an exchange representation.
//
// Parse never infers the payload length; the caller passes the length it
// expects, typically Verifier.PayloadLen.
type Format interface {
	Name() string
	Serialize(k LicenseKey) string
	Parse(input string, payloadLen int) (LicenseKey, error)
}

var (
	// Hex is the baseline format: uppercase hex of seed || payload || checksum.
	Hex Format = hexFormat{}
	// Base32 is unpadded RFC 4648 base32 in dash-separated groups of five,
	// e.g. CERBB-5FS2I-YKEKK-VENA6-OIY.
	Base32 Format = groupedBase32Format{groupSize: 5}
	// Proto is the protobuf wire encoding of the key, base64url without padding.
	Proto Format = protoFormat{}
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{Hex, Base32, Proto}
}

// FormatByName returns the format whose Name matches name, ignoring case.
func FormatByName(name string) (Format, bool) {
	for _, f := range Formats() {
		if strings.EqualFold(f.Name(), name) {
			return f, true
		}
	}
	return nil, false
}

// Serialize renders k using f.
func Serialize(f Format, k LicenseKey) string {
	return f.Serialize(k)
}

// Parse decodes input using f, expecting payloadLen payload bytes.
func Parse(f Format, input string, payloadLen int) (LicenseKey, error) {
	return f.Parse(input, payloadLen)
}

type hexFormat struct{}

func (hexFormat) Name() string { return "hex" }

func (hexFormat) Serialize(k LicenseKey) string {
	return strings.ToUpper(hex.EncodeToString(k.Bytes()))
}

func (hexFormat) Parse(input string, payloadLen int) (LicenseKey, error) {
	b, err := hex.DecodeString(input)
	if err != nil {
		return LicenseKey{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return keyFromBytes(b, payloadLen)
}

var base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

type groupedBase32Format struct {
	groupSize int
}

func (groupedBase32Format) Name() string { return "base32" }

func (f groupedBase32Format) Serialize(k LicenseKey) string {
	raw := base32NoPad.EncodeToString(k.Bytes())
	parts := make([]string, 0, len(raw)/f.groupSize+1)
	for i := 0; i < len(raw); i += f.groupSize {
		end := i + f.groupSize
		if end > len(raw) {
			end = len(raw)
		}
		parts = append(parts, raw[i:end])
	}
	return strings.Join(parts, "-")
}

func (groupedBase32Format) Parse(input string, payloadLen int) (LicenseKey, error) {
	raw := strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, input)
	b, err := base32NoPad.DecodeString(raw)
	if err != nil {
		return LicenseKey{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return keyFromBytes(b, payloadLen)
}
