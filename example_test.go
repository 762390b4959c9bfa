package licensekey_test

import (
	"fmt"

	"github.com/karasz/licensekey"
)

// demoHasher is for demonstration only. Implement your own mixing function
// or use one of the keyed hashers.
var demoHasher = licensekey.HasherFunc(func(seed, a, b, c uint64) byte {
	return byte((seed ^ a ^ b ^ c) & 0xFF)
})

func ExampleGenerator_Generate() {
	// Use many more triplets in a real deployment, and generate your own.
	gen, err := licensekey.NewGenerator(demoHasher, []licensekey.Triplet{
		{A: 114, B: 83, C: 170},
		{A: 60, B: 208, C: 27},
		{A: 69, B: 14, C: 202},
		{A: 61, B: 232, C: 54},
	})
	if err != nil {
		panic(err)
	}

	key := gen.Generate(1234567891011121314)
	fmt.Println(licensekey.Serialize(licensekey.Hex, key))
	fmt.Println(licensekey.Serialize(licensekey.Base32, key))
	// Output:
	// 112210F4B2D230A229552341E723
	// CERBB-5FS2I-YKEKK-VENA6-OIY
}

func ExampleVerifier_Verify() {
	// Check only the first payload byte. When a key generator for the
	// application appears, check a different byte in the next release.
	verifier, err := licensekey.NewVerifier(demoHasher, 4, []licensekey.ByteCheck{
		licensekey.NewByteCheck(0, 114, 83, 170),
	})
	if err != nil {
		panic(err)
	}

	// Refunded or leaked keys.
	_ = verifier.Block(11111111)

	key, err := licensekey.Parse(licensekey.Hex, "112210F4B2D230A229552341E723", verifier.PayloadLen())
	if err != nil {
		panic(err)
	}

	switch verifier.Verify(key) {
	case licensekey.Valid:
		fmt.Println("Key is valid!")
	case licensekey.Invalid:
		fmt.Println("Key is invalid!")
	case licensekey.Blocked:
		fmt.Println("Key has been blocked!")
	case licensekey.Forged:
		fmt.Println("Key has been forged!")
	}

	_ = verifier.Block(1234567891011121314)
	fmt.Println(verifier.Verify(key))
	// Output:
	// Key is valid!
	// blocked
}
