package contracts

import (
	"errors"
	"strings"
)

const (
	ErrorCategoryAPI     = "api"
	ErrorCategoryCrypto  = "crypto"
	ErrorCategoryStorage = "storage"
	ErrorCategoryNetwork = "network"
)

type ErrorKind string

const (
	KindDecoding                  ErrorKind = "DecodingError"
	KindProviderUnavailable       ErrorKind = "ProviderUnavailableError"
	KindConnectionRejected        ErrorKind = "ConnectionRejectedError"
	KindSignature                 ErrorKind = "SignatureError"
	KindAccountChangeSubscription ErrorKind = "AccountChangeSubscriptionError"
	KindNetworkQuery              ErrorKind = "NetworkQueryError"
	KindAccountQuery              ErrorKind = "AccountQueryError"
	KindDisconnect                ErrorKind = "DisconnectError"
	KindInvalidPayload            ErrorKind = "InvalidPayloadError"
	KindNotImplemented            ErrorKind = "NotImplementedError"
	KindRateLimited               ErrorKind = "RateLimitedError"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrDecoding                  = &WalletError{Kind: KindDecoding}
	ErrProviderUnavailable       = &WalletError{Kind: KindProviderUnavailable}
	ErrConnectionRejected        = &WalletError{Kind: KindConnectionRejected}
	ErrSignature                 = &WalletError{Kind: KindSignature}
	ErrAccountChangeSubscription = &WalletError{Kind: KindAccountChangeSubscription}
	ErrNetworkQuery              = &WalletError{Kind: KindNetworkQuery}
	ErrAccountQuery              = &WalletError{Kind: KindAccountQuery}
	ErrDisconnect                = &WalletError{Kind: KindDisconnect}
	ErrInvalidPayload            = &WalletError{Kind: KindInvalidPayload}
	ErrNotImplemented            = &WalletError{Kind: KindNotImplemented}
	ErrRateLimited               = &WalletError{Kind: KindRateLimited}
)

// Category maps a kind onto the service error categories used for metrics.
func (k ErrorKind) Category() string {
	switch k {
	case KindDecoding, KindSignature:
		return ErrorCategoryCrypto
	case KindProviderUnavailable, KindConnectionRejected, KindAccountChangeSubscription,
		KindNetworkQuery, KindAccountQuery, KindDisconnect:
		return ErrorCategoryNetwork
	default:
		return ErrorCategoryAPI
	}
}

// WalletError is the single error type surfaced by the adapter. Err keeps the
// provider's original failure so its message is never lost.
type WalletError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *WalletError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *WalletError) Unwrap() error {
	return e.Err
}

func (e *WalletError) Is(target error) bool {
	t, ok := target.(*WalletError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewWalletError(kind ErrorKind, message string) error {
	return &WalletError{Kind: kind, Message: message}
}

func WrapWalletError(kind ErrorKind, message string, err error) error {
	return &WalletError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the outermost WalletError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var walletErr *WalletError
	if errors.As(err, &walletErr) {
		return walletErr.Kind
	}
	return ""
}

func normalizeErrorCategory(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case ErrorCategoryCrypto:
		return ErrorCategoryCrypto
	case ErrorCategoryStorage:
		return ErrorCategoryStorage
	case ErrorCategoryNetwork:
		return ErrorCategoryNetwork
	default:
		return ErrorCategoryAPI
	}
}

func WrapCategorizedError(category string, err error) error {
	if err == nil {
		return nil
	}
	var existing *CategorizedError
	if errors.As(err, &existing) {
		return &CategorizedError{
			Category: normalizeErrorCategory(existing.Category),
			Err:      existing.Err,
		}
	}
	return &CategorizedError{
		Category: normalizeErrorCategory(category),
		Err:      err,
	}
}

func ErrorCategory(err error) string {
	var classified *CategorizedError
	if errors.As(err, &classified) {
		return normalizeErrorCategory(classified.Category)
	}
	if kind := KindOf(err); kind != "" {
		return kind.Category()
	}
	return ErrorCategoryAPI
}
