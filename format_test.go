package licensekey

import (
	"errors"
	"strings"
	"testing"
)

func TestFormats_RoundTrip(t *testing.T) {
	gen := newToyGenerator(t)
	for _, f := range Formats() {
		t.Run(f.Name(), func(t *testing.T) {
			for _, seed := range []uint64{0, 1, 12345, readmeSeed, ^uint64(0)} {
				key := gen.Generate(seed)
				text := Serialize(f, key)
				parsed, err := Parse(f, text, gen.PayloadLen())
				if err != nil {
					t.Fatalf("seed %d: Parse(%q) failed: %v", seed, text, err)
				}
				if !parsed.Equal(key) {
					t.Errorf("seed %d: round trip mismatch: got %+v, want %+v", seed, parsed, key)
				}
			}
		})
	}
}

func TestHex_Serialize(t *testing.T) {
	key := newToyGenerator(t).Generate(readmeSeed)
	if got := Serialize(Hex, key); got != readmeKeyHex {
		t.Errorf("Expected %s, got %s", readmeKeyHex, got)
	}
}

func TestHex_ParseLowercase(t *testing.T) {
	key, err := Parse(Hex, strings.ToLower(readmeKeyHex), 4)
	if err != nil {
		t.Fatal(err)
	}
	if key.Seed != readmeSeed {
		t.Errorf("Expected seed %d, got %d", readmeSeed, key.Seed)
	}
	if key.Checksum != 0xE723 {
		t.Errorf("Expected checksum 0xE723, got %#04x", key.Checksum)
	}
}

func TestHex_ParseMalformed(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		payloadLen int
	}{
		{name: "empty", input: "", payloadLen: 4},
		{name: "non hex", input: "112210F4B2D230A229552341E72Z", payloadLen: 4},
		{name: "odd length", input: readmeKeyHex[:27], payloadLen: 4},
		{name: "too short", input: readmeKeyHex[:26], payloadLen: 4},
		{name: "too long", input: readmeKeyHex + "00", payloadLen: 4},
		{name: "wrong expectation", input: readmeKeyHex, payloadLen: 5},
		{name: "separators", input: "112210F4-B2D230A2-29552341-E723", payloadLen: 4},
		{name: "no payload length", input: readmeKeyHex, payloadLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(Hex, tt.input, tt.payloadLen)
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestBase32_Serialize(t *testing.T) {
	key := newToyGenerator(t).Generate(readmeSeed)
	const want = "CERBB-5FS2I-YKEKK-VENA6-OIY"
	if got := Serialize(Base32, key); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestBase32_ParseLenient(t *testing.T) {
	for _, input := range []string{
		"CERBB-5FS2I-YKEKK-VENA6-OIY",
		"cerbb-5fs2i-ykekk-vena6-oiy",
		"CERBB5FS2IYKEKKVENA6OIY",
		" CERBB 5FS2I\tYKEKK VENA6 OIY\n",
	} {
		key, err := Parse(Base32, input, 4)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", input, err)
			continue
		}
		if key.String() != readmeKeyHex {
			t.Errorf("Parse(%q) = %s, want %s", input, key, readmeKeyHex)
		}
	}
}

func TestBase32_ParseMalformed(t *testing.T) {
	for _, input := range []string{
		"CERBB-5FS2I-YKEKK-VENA6-OI1",
		"CERBB-5FS2I-YKEKK-VENA6",
		"CERBB-5FS2I-YKEKK-VENA6-OIY=",
	} {
		if _, err := Parse(Base32, input, 4); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("Parse(%q): expected ErrMalformedInput, got %v", input, err)
		}
	}
}

func TestFormatByName(t *testing.T) {
	for _, name := range []string{"hex", "HEX", "base32", "Proto"} {
		if _, ok := FormatByName(name); !ok {
			t.Errorf("FormatByName(%q) not found", name)
		}
	}
	if _, ok := FormatByName("base64"); ok {
		t.Error("FormatByName(base64) should not exist")
	}
}

func TestLicenseKey_Bytes(t *testing.T) {
	key := LicenseKey{Seed: 0x0102030405060708, Payload: []byte{0xAA, 0xBB}, Checksum: 0xC0DE}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 0xAA, 0xBB, 0xC0, 0xDE}
	got := key.Bytes()
	if string(got) != string(want) {
		t.Errorf("Bytes() = %x, want %x", got, want)
	}
	if KeySize(2) != len(want) {
		t.Errorf("KeySize(2) = %d, want %d", KeySize(2), len(want))
	}
}

func TestSeedFromString(t *testing.T) {
	const want uint64 = 0xb4c9a289323b21a0
	for _, owner := range []string{"user@example.com", "  User@Example.COM\n"} {
		if got := SeedFromString(owner); got != want {
			t.Errorf("SeedFromString(%q) = %#x, want %#x", owner, got, want)
		}
	}
	if SeedFromString("other@example.com") == want {
		t.Error("different owners produced the same seed")
	}
}
