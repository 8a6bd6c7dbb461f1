package session

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"aptos-wallet/go-adapter/internal/domains/contracts"
	"aptos-wallet/go-adapter/internal/identity"
	"aptos-wallet/go-adapter/pkg/models"
)

// Metrics receives operation outcomes. *metrics.Recorder satisfies it.
type Metrics interface {
	RecordOp(operation string, started time.Time)
	RecordOpError(operation, category string, started time.Time)
	RecordAccountChange(kind string)
}

// PromptLimiter gates signing prompts. *ratelimiter.PromptLimiter satisfies it.
type PromptLimiter interface {
	Allow(operation string) bool
}

// Encodings fixes, per provider call site, how the provider renders public
// keys. Providers disagree on this and the strings are not self-describing.
type Encodings struct {
	Connect       identity.Encoding
	Account       identity.Encoding
	AccountChange identity.Encoding
}

func DefaultEncodings() Encodings {
	return Encodings{
		Connect:       identity.EncodingHex,
		Account:       identity.EncodingHex,
		AccountChange: identity.EncodingBase58,
	}
}

type Options struct {
	Logger    *slog.Logger
	Metrics   Metrics
	Limiter   PromptLimiter
	Encodings Encodings
}

// State is a point-in-time copy of the session.
type State struct {
	CurrentAccount *models.AccountIdentity   `json:"current_account"`
	CurrentNetwork *models.NetworkDescriptor `json:"current_network"`
	Connecting     bool                      `json:"connecting"`
}

type Reconciler struct {
	provider  contracts.WalletProvider
	encodings Encodings
	logger    *slog.Logger
	metrics   Metrics
	limiter   PromptLimiter
	seq       atomic.Uint64

	mu               sync.RWMutex
	account          *models.AccountIdentity
	network          *models.NetworkDescriptor
	inflightConnects int
}

// New builds a reconciler around provider. A nil provider is allowed; every
// operation that needs it then fails with ProviderUnavailableError.
func New(provider contracts.WalletProvider, opts Options) *Reconciler {
	if isNilProvider(provider) {
		provider = nil
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := opts.Metrics
	if m == nil {
		m = noopMetrics{}
	}
	enc := opts.Encodings
	defaults := DefaultEncodings()
	if enc.Connect == "" {
		enc.Connect = defaults.Connect
	}
	if enc.Account == "" {
		enc.Account = defaults.Account
	}
	if enc.AccountChange == "" {
		enc.AccountChange = defaults.AccountChange
	}
	return &Reconciler{
		provider:  provider,
		encodings: enc,
		logger:    logger,
		metrics:   m,
		limiter:   opts.Limiter,
	}
}

func (r *Reconciler) ProviderInstalled() bool {
	return r.provider != nil
}

func (r *Reconciler) Connecting() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inflightConnects > 0
}

func (r *Reconciler) Connected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.account != nil
}

func (r *Reconciler) CurrentAccount() (models.AccountIdentity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.account == nil {
		return models.AccountIdentity{}, false
	}
	return *r.account, true
}

func (r *Reconciler) CurrentNetwork() (models.NetworkDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.network == nil {
		return models.NetworkDescriptor{}, false
	}
	return *r.network, true
}

func (r *Reconciler) Snapshot() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := State{Connecting: r.inflightConnects > 0}
	if r.account != nil {
		account := *r.account
		out.CurrentAccount = &account
	}
	if r.network != nil {
		network := *r.network
		out.CurrentNetwork = &network
	}
	return out
}

func (r *Reconciler) setAccount(account *models.AccountIdentity) *models.AccountIdentity {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.account
	r.account = account
	return prev
}

func (r *Reconciler) setNetwork(network *models.NetworkDescriptor) {
	r.mu.Lock()
	r.network = network
	r.mu.Unlock()
}

// setNetworkFor stores network only while owner is still the current account.
// A connect that lost its session to a disconnect or a push must not leave a
// network behind without an account.
func (r *Reconciler) setNetworkFor(owner *models.AccountIdentity, network *models.NetworkDescriptor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.account != owner {
		return false
	}
	r.network = network
	return true
}

// clear drops account and network together and reports whether an account
// was set.
func (r *Reconciler) clear() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	hadAccount := r.account != nil
	r.account = nil
	r.network = nil
	return hadAccount
}

func (r *Reconciler) correlationID(operation string) string {
	return fmt.Sprintf("%s-%d", operation, r.seq.Add(1))
}

func (r *Reconciler) allowPrompt(operation string) bool {
	if r.limiter == nil {
		return true
	}
	return r.limiter.Allow(operation)
}

func isNilProvider(p contracts.WalletProvider) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

type noopMetrics struct{}

func (noopMetrics) RecordOp(string, time.Time)              {}
func (noopMetrics) RecordOpError(string, string, time.Time) {}
func (noopMetrics) RecordAccountChange(string)              {}
