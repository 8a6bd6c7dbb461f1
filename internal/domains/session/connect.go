package session

import (
	"context"
	"strconv"
	"strings"
	"time"

	"aptos-wallet/go-adapter/internal/domains/contracts"
	"aptos-wallet/go-adapter/internal/identity"
	"aptos-wallet/go-adapter/pkg/models"
)

func errProviderUnavailable() error {
	return contracts.NewWalletError(contracts.KindProviderUnavailable, "wallet provider is not installed")
}

// Connect asks the provider to authorize the application, stores the derived
// account and then refreshes the network. A failed network refresh is
// returned but the stored account is kept.
func (r *Reconciler) Connect(ctx context.Context) error {
	started := time.Now()
	correlationID := r.correlationID(opConnect)

	r.mu.Lock()
	r.inflightConnects++
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.inflightConnects--
		r.mu.Unlock()
	}()

	if r.provider == nil {
		return r.fail(opConnect, correlationID, started, errProviderUnavailable())
	}
	raw, err := r.provider.Connect(ctx)
	if err != nil {
		return r.fail(opConnect, correlationID, started,
			contracts.WrapWalletError(contracts.KindConnectionRejected, "provider rejected connect", err))
	}
	if strings.TrimSpace(raw) == "" {
		return r.fail(opConnect, correlationID, started,
			contracts.NewWalletError(contracts.KindConnectionRejected, "provider returned no account"))
	}
	account, err := identity.AccountFromEncoded(r.encodings.Connect, raw)
	if err != nil {
		return r.fail(opConnect, correlationID, started, err, "encoding", string(r.encodings.Connect))
	}
	owner := &account
	r.setAccount(owner)
	r.logInfo(opConnect, correlationID, "account connected", "address", account.Address)

	network, err := r.queryNetwork(ctx)
	if err != nil {
		return r.fail(opConnect, correlationID, started, err, "address", account.Address)
	}
	if !r.setNetworkFor(owner, &network) {
		r.logWarn(opConnect, correlationID, "session replaced before network resolved; network not stored",
			"address", account.Address)
		r.succeed(opConnect, started)
		return nil
	}
	r.logInfo(opConnect, correlationID, "network resolved",
		"network", string(network.Name),
		"chain_id", network.ChainID,
	)
	r.succeed(opConnect, started)
	return nil
}

// Disconnect ends the provider session. Local state is cleared only once the
// provider confirms; on failure it is left as it was.
func (r *Reconciler) Disconnect(ctx context.Context) error {
	started := time.Now()
	correlationID := r.correlationID(opDisconnect)
	if r.provider == nil {
		return r.fail(opDisconnect, correlationID, started, errProviderUnavailable())
	}
	if err := r.provider.Disconnect(ctx); err != nil {
		return r.fail(opDisconnect, correlationID, started,
			contracts.WrapWalletError(contracts.KindDisconnect, "provider disconnect failed", err))
	}
	hadAccount := r.clear()
	r.logInfo(opDisconnect, correlationID, "session cleared", "had_account", hadAccount)
	r.succeed(opDisconnect, started)
	return nil
}

// Account reads the provider's current key without connecting and without
// touching the stored session.
func (r *Reconciler) Account(ctx context.Context) (models.AccountIdentity, error) {
	started := time.Now()
	correlationID := r.correlationID(opAccount)
	if r.provider == nil {
		return models.AccountIdentity{}, r.fail(opAccount, correlationID, started, errProviderUnavailable())
	}
	raw := r.provider.PublicKey()
	if strings.TrimSpace(raw) == "" {
		return models.AccountIdentity{}, r.fail(opAccount, correlationID, started,
			contracts.NewWalletError(contracts.KindAccountQuery, "provider has no authorized account"))
	}
	account, err := identity.AccountFromEncoded(r.encodings.Account, raw)
	if err != nil {
		return models.AccountIdentity{}, r.fail(opAccount, correlationID, started, err,
			"encoding", string(r.encodings.Account))
	}
	r.succeed(opAccount, started)
	return account, nil
}

// Network queries the provider and replaces the stored network descriptor.
func (r *Reconciler) Network(ctx context.Context) (models.NetworkDescriptor, error) {
	started := time.Now()
	correlationID := r.correlationID(opNetwork)
	if r.provider == nil {
		return models.NetworkDescriptor{}, r.fail(opNetwork, correlationID, started, errProviderUnavailable())
	}
	network, err := r.queryNetwork(ctx)
	if err != nil {
		return models.NetworkDescriptor{}, r.fail(opNetwork, correlationID, started, err)
	}
	r.setNetwork(&network)
	r.succeed(opNetwork, started)
	return network, nil
}

func (r *Reconciler) queryNetwork(ctx context.Context) (models.NetworkDescriptor, error) {
	info, err := r.provider.Network(ctx)
	if err != nil {
		return models.NetworkDescriptor{}, contracts.WrapWalletError(contracts.KindNetworkQuery, "provider network query failed", err)
	}
	if info == nil {
		return models.NetworkDescriptor{}, contracts.NewWalletError(contracts.KindNetworkQuery, "provider returned no network")
	}
	network := models.NetworkDescriptor{
		APIEndpoint: info.API,
		ChainID:     strconv.Itoa(info.ChainID),
		Name:        models.ParseNetworkName(info.Network),
		RawName:     info.Network,
	}
	return network, nil
}
