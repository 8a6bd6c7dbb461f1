package identity

import (
	"encoding/hex"

	"aptos-wallet/go-adapter/pkg/models"

	"golang.org/x/crypto/sha3"
)

// singleSignatureScheme is appended to the key before hashing. Changing it
// yields addresses of a different authentication scheme.
const singleSignatureScheme byte = 0x00

// DeriveAddress computes 0x || hex(SHA3-256(key || scheme)).
func DeriveAddress(raw [PublicKeySize]byte) string {
	preimage := make([]byte, 0, PublicKeySize+1)
	preimage = append(preimage, raw[:]...)
	preimage = append(preimage, singleSignatureScheme)
	sum := sha3.Sum256(preimage)
	return hexPrefix + hex.EncodeToString(sum[:])
}

// Address returns "" for the zero PublicKey, which holds no key.
func (pk PublicKey) Address() string {
	if pk.IsZero() {
		return ""
	}
	return DeriveAddress(pk.Bytes())
}

// Account builds the identity for pk. AuthKey is left empty; only a provider
// may supply one.
func (pk PublicKey) Account() models.AccountIdentity {
	return models.AccountIdentity{
		Address:   pk.Address(),
		PublicKey: pk.String(),
	}
}

// AccountFromEncoded decodes s with the call-site encoding and derives its
// account identity.
func AccountFromEncoded(encoding Encoding, s string) (models.AccountIdentity, error) {
	pk, err := Decode(encoding, s)
	if err != nil {
		return models.AccountIdentity{}, err
	}
	return pk.Account(), nil
}
