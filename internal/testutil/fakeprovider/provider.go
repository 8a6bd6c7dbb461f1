// Package fakeprovider is an in-memory wallet provider for tests.
package fakeprovider

import (
	"context"
	"errors"
	"sync"

	"aptos-wallet/go-adapter/internal/domains/contracts"
)

var ErrNoHandler = errors.New("fakeprovider: no account change handler installed")

// Provider answers every call from preset values. Connect can be held open with
// HoldConnect to exercise interleavings.
type Provider struct {
	mu sync.Mutex

	connectKey    string
	connectErr    error
	disconnectErr error
	publicKey     string
	signResult    *contracts.SignedTransaction
	signErr       error
	messageSig    []byte
	messageErr    error
	network       *contracts.NetworkInfo
	networkErr    error
	connectGate   chan struct{}
	connectEnter  chan struct{}
	networkGate   chan struct{}
	networkEnter  chan struct{}

	handler     func(string)
	calls       map[string]int
	lastPayload []byte
	lastSubmit  bool
	lastMessage string
}

func New() *Provider {
	return &Provider{calls: make(map[string]int)}
}

func (p *Provider) SetConnectResult(publicKey string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connectKey, p.connectErr = publicKey, err
}

func (p *Provider) SetDisconnectErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnectErr = err
}

func (p *Provider) SetPublicKey(publicKey string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publicKey = publicKey
}

func (p *Provider) SetSignResult(result *contracts.SignedTransaction, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signResult, p.signErr = result, err
}

func (p *Provider) SetMessageResult(signature []byte, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messageSig, p.messageErr = signature, err
}

func (p *Provider) SetNetworkResult(info *contracts.NetworkInfo, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.network, p.networkErr = info, err
}

// HoldConnect makes the next Connect calls block until the returned release
// func is called. entered receives one value per Connect that reached the gate.
func (p *Provider) HoldConnect() (entered <-chan struct{}, release func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	gate := make(chan struct{})
	enter := make(chan struct{}, 16)
	p.connectGate, p.connectEnter = gate, enter
	var once sync.Once
	return enter, func() { once.Do(func() { close(gate) }) }
}

// HoldNetwork does for Network what HoldConnect does for Connect.
func (p *Provider) HoldNetwork() (entered <-chan struct{}, release func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	gate := make(chan struct{})
	enter := make(chan struct{}, 16)
	p.networkGate, p.networkEnter = gate, enter
	var once sync.Once
	return enter, func() { once.Do(func() { close(gate) }) }
}

func (p *Provider) Connect(ctx context.Context) (string, error) {
	p.mu.Lock()
	p.calls["connect"]++
	gate, enter := p.connectGate, p.connectEnter
	p.mu.Unlock()

	if gate != nil {
		enter <- struct{}{}
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connectErr == nil && p.connectKey != "" {
		p.publicKey = p.connectKey
	}
	return p.connectKey, p.connectErr
}

func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["disconnect"]++
	if p.disconnectErr != nil {
		return p.disconnectErr
	}
	p.publicKey = ""
	return nil
}

func (p *Provider) SignTransaction(ctx context.Context, payload []byte, submit bool) (*contracts.SignedTransaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["sign_transaction"]++
	p.lastPayload = append([]byte(nil), payload...)
	p.lastSubmit = submit
	return p.signResult, p.signErr
}

func (p *Provider) SignMessage(ctx context.Context, message string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["sign_message"]++
	p.lastMessage = message
	return append([]byte(nil), p.messageSig...), p.messageErr
}

func (p *Provider) Network(ctx context.Context) (*contracts.NetworkInfo, error) {
	p.mu.Lock()
	p.calls["network"]++
	gate, enter := p.networkGate, p.networkEnter
	p.mu.Unlock()

	if gate != nil {
		enter <- struct{}{}
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.network == nil {
		return nil, p.networkErr
	}
	info := *p.network
	return &info, p.networkErr
}

func (p *Provider) PublicKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.publicKey
}

func (p *Provider) SetAccountChangeHandler(handler func(publicKey string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["set_account_change_handler"]++
	p.handler = handler
}

// FireAccountChange invokes the installed handler the way a provider push would.
func (p *Provider) FireAccountChange(publicKey string) error {
	p.mu.Lock()
	handler := p.handler
	p.mu.Unlock()
	if handler == nil {
		return ErrNoHandler
	}
	handler(publicKey)
	return nil
}

func (p *Provider) Calls(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[name]
}

func (p *Provider) LastSignRequest() ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.lastPayload...), p.lastSubmit
}

func (p *Provider) LastMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastMessage
}

// Host is a ProviderHost backed by a map.
type Host map[string]contracts.WalletProvider

func (h Host) Lookup(name string) (contracts.WalletProvider, bool) {
	p, ok := h[name]
	return p, ok && p != nil
}
