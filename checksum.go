package licensekey

// Checksum computes the 16-bit integrity code of a key.
//
// The input is the seed (8 bytes, big-endian) followed by the payload. Two
// accumulators start at 0xAF (right) and 0x56 (left); for every byte the
// right accumulator adds the byte, the left accumulator adds the new right
// value, and each folds back by 0xFF when it exceeds one byte. The result is
// left<<8 | right.
//
// This is a plausibility screen for typos and corruption only. It offers no
// protection against deliberate forgery.
func Checksum(seed uint64, payload []byte) uint16 {
	left, right := uint16(0x56), uint16(0xAF)
	step := func(b byte) {
		right += uint16(b)
		if right > 0xFF {
			right -= 0xFF
		}
		left += right
		if left > 0xFF {
			left -= 0xFF
		}
	}
	for shift := 56; shift >= 0; shift -= 8 {
		step(byte(seed >> uint(shift)))
	}
	for _, b := range payload {
		step(b)
	}
	return left<<8 | right
}
