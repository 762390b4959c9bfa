// Package licensekey generates and verifies license keys offline using
// partial serial number verification.
//
// Anatomy of a key with a 4-triplet generation vector:
//
//	┌───────────────────────────────┬───────────────┬───────┐
//	│ SEED (8 bytes, big-endian)    │ PAYLOAD (4)   │ CHECK │
//	│                               │               │  SUM  │
//	└───────────────────────────────┴───────────────┴───────┘
//
// Each payload byte is Hasher.Hash(seed, a, b, c) for one triplet of the
// generation vector. The Generator knows the whole vector. A Verifier only
// knows a few (index, triplet) pairs, so disassembling an application
// reveals how to fake those bytes and nothing about the rest. When a key
// generator for the application shows up, the next release checks a
// different set of bytes and the forged keys stop working.
//
// Verification order:
//
//  1. checksum (and payload length); failure is Invalid
//  2. revocation set; a hit is Blocked
//  3. byte checks; any mismatch is Forged
//  4. otherwise Valid
//
// Usage:
//
//	gen, _ := licensekey.NewGenerator(hasher, vector)
//	key := gen.Generate(licensekey.SeedFromString("user@example.com"))
//	text := licensekey.Serialize(licensekey.Hex, key)
//
//	v, _ := licensekey.NewVerifier(hasher, len(vector), []licensekey.ByteCheck{
//	    licensekey.NewByteCheck(0, 114, 83, 170),
//	})
//	_ = v.Block(11111111)
//	status, err := v.VerifyString(licensekey.Hex, text)
//
// Revoked seeds can be persisted with OpenFileStore (append-only file, no
// dependencies beyond the standard library) or OpenSQLiteStore, passed to
// NewVerifier through WithRevocationStore.
package licensekey
