package identity

import (
	"strings"
)

const (
	PublicKeySize = 32

	hexPrefix = "0x"
)

// PublicKey is an immutable Ed25519 account public key. The zero value is not
// a valid key; build one with FromHex, FromBase58 or Decode.
type PublicKey struct {
	hex string
}

// Encoding names the external representation a provider uses at a call site.
type Encoding string

const (
	EncodingHex    Encoding = "hex"
	EncodingBase58 Encoding = "base58"
)

func ParseEncoding(raw string) (Encoding, bool) {
	switch Encoding(strings.ToLower(strings.TrimSpace(raw))) {
	case EncodingHex:
		return EncodingHex, true
	case EncodingBase58:
		return EncodingBase58, true
	default:
		return "", false
	}
}
