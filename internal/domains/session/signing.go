package session

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"aptos-wallet/go-adapter/internal/domains/contracts"
	"aptos-wallet/go-adapter/pkg/models"
)

// MessagePrefix is reported in every sign-message response.
const MessagePrefix = "APTOS"

// SignTransaction has the provider sign payload without submitting it.
// The payload is passed through untouched.
func (r *Reconciler) SignTransaction(ctx context.Context, payload []byte) (models.TransactionResult, error) {
	return r.signTransaction(ctx, opSignTransaction, payload, false)
}

// SignAndSubmitTransaction has the provider sign and submit payload.
func (r *Reconciler) SignAndSubmitTransaction(ctx context.Context, payload []byte) (models.TransactionResult, error) {
	return r.signTransaction(ctx, opSignAndSubmitTransaction, payload, true)
}

func (r *Reconciler) signTransaction(ctx context.Context, operation string, payload []byte, submit bool) (models.TransactionResult, error) {
	started := time.Now()
	correlationID := r.correlationID(operation)
	if r.provider == nil {
		return models.TransactionResult{}, r.fail(operation, correlationID, started, errProviderUnavailable())
	}
	if !r.allowPrompt(operation) {
		return models.TransactionResult{}, r.fail(operation, correlationID, started,
			contracts.NewWalletError(contracts.KindRateLimited, "too many signing requests"))
	}
	signed, err := r.provider.SignTransaction(ctx, payload, submit)
	if err != nil {
		return models.TransactionResult{}, r.fail(operation, correlationID, started,
			contracts.WrapWalletError(contracts.KindSignature, "provider failed to sign transaction", err))
	}
	result, ok := transactionResult(signed)
	if !ok {
		return models.TransactionResult{}, r.fail(operation, correlationID, started,
			contracts.NewWalletError(contracts.KindSignature, "provider returned no signing result"))
	}
	r.logInfo(operation, correlationID, "transaction signed",
		"submitted", result.Submitted(),
		"payload_bytes", len(payload),
	)
	r.succeed(operation, started)
	return result, nil
}

// transactionResult prefers the submission hash when the provider returned a
// receipt and falls back to the signed bytes.
func transactionResult(signed *contracts.SignedTransaction) (models.TransactionResult, bool) {
	if signed == nil {
		return models.TransactionResult{}, false
	}
	if signed.Pending != nil && strings.TrimSpace(signed.Pending.Hash) != "" {
		return models.TransactionResult{Hash: signed.Pending.Hash}, true
	}
	if len(signed.Signed) > 0 {
		return models.TransactionResult{Signed: append([]byte(nil), signed.Signed...)}, true
	}
	return models.TransactionResult{}, false
}

// SignMessage delegates payload.Message to the provider. Nonce and prefix are
// echoed in the response but are not part of the signed bytes. The signature
// is rendered as 0x-prefixed lowercase hex of the provider's raw bytes.
func (r *Reconciler) SignMessage(ctx context.Context, payload models.SignMessagePayload) (models.SignMessageResponse, error) {
	started := time.Now()
	correlationID := r.correlationID(opSignMessage)
	if strings.TrimSpace(payload.Nonce) == "" {
		return models.SignMessageResponse{}, r.fail(opSignMessage, correlationID, started,
			contracts.NewWalletError(contracts.KindInvalidPayload, "sign message payload requires a nonce"))
	}
	if r.provider == nil {
		return models.SignMessageResponse{}, r.fail(opSignMessage, correlationID, started, errProviderUnavailable())
	}
	if !r.allowPrompt(opSignMessage) {
		return models.SignMessageResponse{}, r.fail(opSignMessage, correlationID, started,
			contracts.NewWalletError(contracts.KindRateLimited, "too many signing requests"))
	}
	signature, err := r.provider.SignMessage(ctx, payload.Message)
	if err != nil {
		return models.SignMessageResponse{}, r.fail(opSignMessage, correlationID, started,
			contracts.WrapWalletError(contracts.KindSignature, "provider failed to sign message", err))
	}
	if len(signature) == 0 {
		return models.SignMessageResponse{}, r.fail(opSignMessage, correlationID, started,
			contracts.NewWalletError(contracts.KindSignature, "provider returned no signature"))
	}

	state := r.Snapshot()
	resp := models.SignMessageResponse{
		Application: "",
		FullMessage: payload.Message,
		Message:     payload.Message,
		Nonce:       payload.Nonce,
		Prefix:      MessagePrefix,
		Signature:   "0x" + hex.EncodeToString(signature),
	}
	if state.CurrentAccount != nil {
		resp.Address = state.CurrentAccount.Address
	}
	if state.CurrentNetwork != nil {
		resp.ChainID = state.CurrentNetwork.ChainID
	}
	r.logInfo(opSignMessage, correlationID, "message signed", "address", resp.Address)
	r.succeed(opSignMessage, started)
	return resp, nil
}
