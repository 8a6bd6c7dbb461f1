package identity

import (
	"errors"
	"strings"
	"testing"

	"aptos-wallet/go-adapter/internal/domains/contracts"
)

const (
	sequentialKeyHex    = "0x000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	sequentialKeyBase58 = "1thX6LZfHDZZKUs92febYZhYRcXddmzfzF2NvTkPNE"
)

func TestFromHexNormalizesPrefix(t *testing.T) {
	withPrefix, err := FromHex(sequentialKeyHex)
	if err != nil {
		t.Fatalf("from hex with prefix failed: %v", err)
	}
	withoutPrefix, err := FromHex(strings.TrimPrefix(sequentialKeyHex, "0x"))
	if err != nil {
		t.Fatalf("from hex without prefix failed: %v", err)
	}
	if !withPrefix.Equal(withoutPrefix) {
		t.Fatalf("prefix must not matter: %q vs %q", withPrefix, withoutPrefix)
	}
	if withPrefix.String() != sequentialKeyHex {
		t.Fatalf("unexpected canonical form: %q", withPrefix.String())
	}
	if len(withPrefix.String()) != 66 {
		t.Fatalf("canonical form must be 0x + 64 digits, got %d chars", len(withPrefix.String()))
	}
}

func TestFromHexLowercases(t *testing.T) {
	pk, err := FromHex(strings.ToUpper(strings.TrimPrefix(sequentialKeyHex, "0x")))
	if err != nil {
		t.Fatalf("from upper-case hex failed: %v", err)
	}
	if pk.String() != sequentialKeyHex {
		t.Fatalf("expected lowercase canonical form, got %q", pk.String())
	}
}

func TestFromHexRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"0x1234",
		"",
		"0x",
		sequentialKeyHex + "00",
		strings.TrimSuffix(sequentialKeyHex, "f"),
		"0x" + strings.Repeat("zz", 32),
	}
	for _, input := range cases {
		_, err := FromHex(input)
		if err == nil {
			t.Fatalf("expected decoding error for %q", input)
		}
		if !errors.Is(err, contracts.ErrDecoding) {
			t.Fatalf("expected DecodingError for %q, got %v", input, err)
		}
	}
}

func TestFromBase58MatchesHex(t *testing.T) {
	fromB58, err := FromBase58(sequentialKeyBase58)
	if err != nil {
		t.Fatalf("from base58 failed: %v", err)
	}
	fromHex, err := FromHex(sequentialKeyHex)
	if err != nil {
		t.Fatalf("from hex failed: %v", err)
	}
	if !fromB58.Equal(fromHex) {
		t.Fatalf("encodings must agree: %q vs %q", fromB58, fromHex)
	}
	if fromHex.Base58() != sequentialKeyBase58 {
		t.Fatalf("unexpected base58 rendering: %q", fromHex.Base58())
	}
}

func TestCodecRoundTripAcrossKeys(t *testing.T) {
	for seed := 0; seed < 64; seed++ {
		raw := make([]byte, PublicKeySize)
		for i := range raw {
			raw[i] = byte(seed*31 + i*7)
		}
		pk, err := FromBytes(raw)
		if err != nil {
			t.Fatalf("from bytes failed: %v", err)
		}
		viaHex, err := FromHex(pk.Hex())
		if err != nil {
			t.Fatalf("from hex failed: %v", err)
		}
		viaBase58, err := FromBase58(pk.Base58())
		if err != nil {
			t.Fatalf("from base58 failed: %v", err)
		}
		if viaHex.String() != viaBase58.String() || viaHex.String() != pk.String() {
			t.Fatalf("round trip mismatch for seed %d: %q %q %q", seed, pk, viaHex, viaBase58)
		}
		if got := viaHex.Bytes(); string(got[:]) != string(raw) {
			t.Fatalf("raw bytes mismatch for seed %d", seed)
		}
	}
}

func TestFromBase58RejectsMalformedInput(t *testing.T) {
	cases := []string{
		// outside the alphabet
		"0OIl",
		// decodes to 31 bytes
		"1CiMQsCUhqABwwLyCFeX2iPnBZX3s28dUUCBrirhs",
		"",
	}
	for _, input := range cases {
		if _, err := FromBase58(input); !errors.Is(err, contracts.ErrDecoding) {
			t.Fatalf("expected DecodingError for %q, got %v", input, err)
		}
	}
}

func TestDecodeUsesCallSiteEncoding(t *testing.T) {
	pk, err := Decode(EncodingBase58, sequentialKeyBase58)
	if err != nil {
		t.Fatalf("decode base58 failed: %v", err)
	}
	if pk.String() != sequentialKeyHex {
		t.Fatalf("unexpected key: %q", pk)
	}
	if _, err := Decode(EncodingHex, sequentialKeyBase58); !errors.Is(err, contracts.ErrDecoding) {
		t.Fatalf("base58 text must not decode as hex, got %v", err)
	}
	if _, err := Decode("bech32", sequentialKeyHex); !errors.Is(err, contracts.ErrDecoding) {
		t.Fatalf("unknown encoding must fail, got %v", err)
	}
}

func TestParseEncoding(t *testing.T) {
	if enc, ok := ParseEncoding(" Base58 "); !ok || enc != EncodingBase58 {
		t.Fatalf("unexpected parse result: %q %v", enc, ok)
	}
	if _, ok := ParseEncoding("utf8"); ok {
		t.Fatal("unknown encoding must not parse")
	}
}
