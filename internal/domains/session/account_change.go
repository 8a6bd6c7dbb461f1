package session

import (
	"context"
	"strings"
	"time"

	"aptos-wallet/go-adapter/internal/domains/contracts"
	"aptos-wallet/go-adapter/internal/identity"
	"aptos-wallet/go-adapter/pkg/models"
)

const (
	accountChangeSwitched = "switched"
	accountChangeCleared  = "cleared"
	accountChangeInvalid  = "invalid"
)

// AccountChangeFunc receives the new account, or nil when the provider ended
// the session.
type AccountChangeFunc func(account *models.AccountIdentity)

// OnAccountChange installs a handler into the provider's account-change slot.
// The handler may run on any goroutine, concurrently with other operations.
func (r *Reconciler) OnAccountChange(callback AccountChangeFunc) error {
	started := time.Now()
	correlationID := r.correlationID(opAccountChange)
	if r.provider == nil {
		return r.fail(opAccountChange, correlationID, started,
			contracts.NewWalletError(contracts.KindAccountChangeSubscription, "no wallet provider to subscribe to"))
	}
	r.provider.SetAccountChangeHandler(func(publicKey string) {
		r.handleAccountChange(publicKey, callback)
	})
	r.logInfo(opAccountChange, correlationID, "account change handler installed")
	r.succeed(opAccountChange, started)
	return nil
}

// OnNetworkChange is part of the adapter contract but the provider offers no
// network push, so it always reports NotImplementedError.
func (r *Reconciler) OnNetworkChange(callback func(models.NetworkDescriptor)) error {
	started := time.Now()
	correlationID := r.correlationID(opNetworkChange)
	return r.fail(opNetworkChange, correlationID, started,
		contracts.NewWalletError(contracts.KindNotImplemented, "network change subscription is not supported by this provider"))
}

func (r *Reconciler) handleAccountChange(publicKey string, callback AccountChangeFunc) {
	started := time.Now()
	correlationID := r.correlationID(opAccountChange)
	publicKey = strings.TrimSpace(publicKey)
	if publicKey == "" {
		r.handleDeauthorized(correlationID, started, callback)
		return
	}

	account, err := identity.AccountFromEncoded(r.encodings.AccountChange, publicKey)
	if err != nil {
		r.metrics.RecordAccountChange(accountChangeInvalid)
		_ = r.fail(opAccountChange, correlationID, started, err, "encoding", string(r.encodings.AccountChange))
		return
	}
	prev := r.setAccount(&account)
	r.metrics.RecordAccountChange(accountChangeSwitched)
	attrs := []any{"address", account.Address}
	if prev != nil {
		attrs = append(attrs, "previous_address", prev.Address)
	}
	r.logInfo(opAccountChange, correlationID, "account switched by provider", attrs...)
	r.succeed(opAccountChange, started)
	if callback != nil {
		notified := account
		callback(&notified)
	}
}

// handleDeauthorized treats an empty push as the provider ending the session.
// The provider is the source of truth here, so local state is cleared even if
// the follow-up Disconnect call fails.
func (r *Reconciler) handleDeauthorized(correlationID string, started time.Time, callback AccountChangeFunc) {
	wasConnected := r.Connected()
	if wasConnected {
		if err := r.provider.Disconnect(context.Background()); err != nil {
			r.logWarn(opAccountChange, correlationID, "provider disconnect after deauthorization failed",
				"error", err.Error())
		}
	}
	r.clear()
	r.metrics.RecordAccountChange(accountChangeCleared)
	r.logInfo(opAccountChange, correlationID, "session deauthorized by provider", "was_connected", wasConnected)
	r.succeed(opAccountChange, started)
	if wasConnected && callback != nil {
		callback(nil)
	}
}
