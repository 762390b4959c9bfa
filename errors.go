package licensekey

import "errors"

// ErrMalformedInput indicates serialized key text that could not be decoded:
// invalid characters, invalid encoding, or a decoded length that does not
// match the expected payload length.
var ErrMalformedInput = errors.New("malformed license key input")

// ErrInvalidConfiguration indicates a Generator or Verifier that cannot be
// constructed: missing hasher, empty generation vector, or a byte check
// pointing outside the payload.
var ErrInvalidConfiguration = errors.New("invalid license key configuration")
