package ports

import (
	"context"
)

// WalletProvider is the capability surface of an injected wallet provider.
// Every blocking call may be slow or fail; implementations own the real
// session and key custody.
type WalletProvider interface {
	// Connect authorizes the application and returns the account public key
	// in the provider's connect encoding.
	Connect(ctx context.Context) (string, error)
	Disconnect(ctx context.Context) error

	SignTransaction(ctx context.Context, payload []byte, submit bool) (*SignedTransaction, error)
	SignMessage(ctx context.Context, message string) ([]byte, error)
	Network(ctx context.Context) (*NetworkInfo, error)

	// PublicKey returns the currently authorized key, or "" when there is none.
	PublicKey() string
	// SetAccountChangeHandler replaces the provider's account-change slot.
	// The provider calls handler with "" when the session is deauthorized.
	SetAccountChangeHandler(handler func(publicKey string))
}

// SignedTransaction is a provider sign answer. Pending is set when the
// provider also submitted the transaction.
type SignedTransaction struct {
	Signed  []byte
	Pending *PendingTransaction
}

type PendingTransaction struct {
	Hash string `json:"hash"`
}

type NetworkInfo struct {
	API     string `json:"api"`
	ChainID int    `json:"chainId"`
	Network string `json:"network"`
}

// ProviderHost resolves providers installed in the host environment by name.
type ProviderHost interface {
	Lookup(name string) (WalletProvider, bool)
}

type CategorizedError struct {
	Category string
	Err      error
}

func (e *CategorizedError) Error() string {
	return e.Err.Error()
}

func (e *CategorizedError) Unwrap() error {
	return e.Err
}
