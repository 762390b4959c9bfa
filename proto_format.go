package licensekey

import (
	"encoding/base64"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the Proto format. The message is equivalent to
//
//	message LicenseKey {
//	  fixed64 seed     = 1;
//	  bytes   payload  = 2;
//	  uint32  checksum = 3;
//	}
const (
	protoFieldSeed     protowire.Number = 1
	protoFieldPayload  protowire.Number = 2
	protoFieldChecksum protowire.Number = 3
)

type protoFormat struct{}

func (protoFormat) Name() string { return "proto" }

// MarshalProto returns the protobuf wire encoding of k.
func MarshalProto(k LicenseKey) []byte {
	b := make([]byte, 0, KeySize(len(k.Payload))+8)
	b = protowire.AppendTag(b, protoFieldSeed, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, k.Seed)
	b = protowire.AppendTag(b, protoFieldPayload, protowire.BytesType)
	b = protowire.AppendBytes(b, k.Payload)
	b = protowire.AppendTag(b, protoFieldChecksum, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(k.Checksum))
	return b
}

// UnmarshalProto decodes the protobuf wire encoding produced by MarshalProto.
// Unknown fields are skipped.
func UnmarshalProto(b []byte, payloadLen int) (LicenseKey, error) {
	var k LicenseKey
	if payloadLen < 1 {
		return k, fmt.Errorf("%w: payload length %d", ErrMalformedInput, payloadLen)
	}
	var haveSeed, havePayload, haveChecksum bool
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return LicenseKey{}, fmt.Errorf("%w: %v", ErrMalformedInput, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == protoFieldSeed && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return LicenseKey{}, fmt.Errorf("%w: seed: %v", ErrMalformedInput, protowire.ParseError(n))
			}
			k.Seed, haveSeed = v, true
			b = b[n:]
		case num == protoFieldPayload && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return LicenseKey{}, fmt.Errorf("%w: payload: %v", ErrMalformedInput, protowire.ParseError(n))
			}
			k.Payload, havePayload = append([]byte(nil), v...), true
			b = b[n:]
		case num == protoFieldChecksum && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return LicenseKey{}, fmt.Errorf("%w: checksum: %v", ErrMalformedInput, protowire.ParseError(n))
			}
			if v > 0xFFFF {
				return LicenseKey{}, fmt.Errorf("%w: checksum %d exceeds 16 bits", ErrMalformedInput, v)
			}
			k.Checksum, haveChecksum = uint16(v), true
			b = b[n:]
		case num == protoFieldSeed || num == protoFieldPayload || num == protoFieldChecksum:
			return LicenseKey{}, fmt.Errorf("%w: field %d has wire type %d", ErrMalformedInput, num, typ)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return LicenseKey{}, fmt.Errorf("%w: field %d: %v", ErrMalformedInput, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if !haveSeed || !havePayload || !haveChecksum {
		return LicenseKey{}, fmt.Errorf("%w: missing required field", ErrMalformedInput)
	}
	if len(k.Payload) != payloadLen {
		return LicenseKey{}, fmt.Errorf("%w: expected %d payload bytes, got %d",
			ErrMalformedInput, payloadLen, len(k.Payload))
	}
	return k, nil
}

func (protoFormat) Serialize(k LicenseKey) string {
	return base64.RawURLEncoding.EncodeToString(MarshalProto(k))
}

func (protoFormat) Parse(input string, payloadLen int) (LicenseKey, error) {
	b, err := base64.RawURLEncoding.DecodeString(input)
	if err != nil {
		return LicenseKey{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return UnmarshalProto(b, payloadLen)
}
