package identity

import (
	"encoding/hex"
	"fmt"
	"strings"

	"aptos-wallet/go-adapter/internal/domains/contracts"

	"github.com/mr-tron/base58/base58"
)

// FromHex accepts 64 hex digits with or without the 0x prefix.
func FromHex(s string) (PublicKey, error) {
	body := strings.TrimPrefix(strings.TrimSpace(s), hexPrefix)
	if len(body) != 2*PublicKeySize {
		return PublicKey{}, contracts.NewWalletError(contracts.KindDecoding,
			fmt.Sprintf("invalid hex public key length: %d digits", len(body)))
	}
	raw, err := hex.DecodeString(body)
	if err != nil {
		return PublicKey{}, contracts.WrapWalletError(contracts.KindDecoding, "invalid hex public key", err)
	}
	return fromRaw(raw), nil
}

func FromBase58(s string) (PublicKey, error) {
	raw, err := base58.Decode(strings.TrimSpace(s))
	if err != nil {
		return PublicKey{}, contracts.WrapWalletError(contracts.KindDecoding, "invalid base58 public key", err)
	}
	if len(raw) != PublicKeySize {
		return PublicKey{}, contracts.NewWalletError(contracts.KindDecoding,
			fmt.Sprintf("invalid base58 public key size: %d bytes", len(raw)))
	}
	return fromRaw(raw), nil
}

// FromBytes copies a raw 32-byte key.
func FromBytes(raw []byte) (PublicKey, error) {
	if len(raw) != PublicKeySize {
		return PublicKey{}, contracts.NewWalletError(contracts.KindDecoding,
			fmt.Sprintf("invalid public key size: %d bytes", len(raw)))
	}
	return fromRaw(raw), nil
}

// Decode uses the decoder fixed for a provider call site. Encodings are never
// sniffed from the input.
func Decode(encoding Encoding, s string) (PublicKey, error) {
	switch encoding {
	case EncodingHex:
		return FromHex(s)
	case EncodingBase58:
		return FromBase58(s)
	default:
		return PublicKey{}, contracts.NewWalletError(contracts.KindDecoding,
			fmt.Sprintf("unsupported public key encoding %q", encoding))
	}
}

func fromRaw(raw []byte) PublicKey {
	return PublicKey{hex: hexPrefix + hex.EncodeToString(raw)}
}

func (pk PublicKey) IsZero() bool {
	return pk.hex == ""
}

// String returns the canonical 0x-prefixed lowercase hex form.
func (pk PublicKey) String() string {
	return pk.hex
}

func (pk PublicKey) Hex() string {
	return pk.hex
}

func (pk PublicKey) Base58() string {
	raw := pk.Bytes()
	return base58.Encode(raw[:])
}

// Bytes decodes the canonical hex back into the raw key. The zero PublicKey
// yields all zero bytes; check IsZero first.
func (pk PublicKey) Bytes() [PublicKeySize]byte {
	var out [PublicKeySize]byte
	if pk.IsZero() {
		return out
	}
	// The hex form is validated on construction.
	_, _ = hex.Decode(out[:], []byte(strings.TrimPrefix(pk.hex, hexPrefix)))
	return out
}

func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.hex == other.hex
}
