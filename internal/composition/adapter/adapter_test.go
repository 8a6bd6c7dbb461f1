package adapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"aptos-wallet/go-adapter/internal/bootstrap/adapterconfig"
	"aptos-wallet/go-adapter/internal/domains/contracts"
	"aptos-wallet/go-adapter/internal/identity"
	"aptos-wallet/go-adapter/internal/testutil/fakeprovider"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	testKeyHex     = "0x000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	testKeyAddress = "0xa48b46cfc7b26c4da6d5dd176a84104dabdf394eda11e71880c0c6f42ba43bc3"
)

func newTestProvider() *fakeprovider.Provider {
	p := fakeprovider.New()
	p.SetConnectResult(testKeyHex, nil)
	p.SetNetworkResult(&contracts.NetworkInfo{API: "https://fullnode.mainnet.aptoslabs.com/v1", ChainID: 1, Network: "Mainnet"}, nil)
	return p
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNewResolvesConfiguredProvider(t *testing.T) {
	p := newTestProvider()
	a, err := New(fakeprovider.Host{"nightly": p}, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if a.ReadyState() != ReadyStateInstalled {
		t.Fatalf("expected installed, got %q", a.ReadyState())
	}
	if err := a.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	account, ok := a.CurrentAccount()
	if !ok || account.Address != testKeyAddress {
		t.Fatalf("unexpected account: %#v", account)
	}
}

func TestNewWithoutProviderFailsOnUse(t *testing.T) {
	a, err := New(fakeprovider.Host{"petra": newTestProvider()}, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if a.ReadyState() != ReadyStateNotDetected {
		t.Fatalf("expected not detected, got %q", a.ReadyState())
	}
	if err := a.Connect(context.Background()); !errors.Is(err, contracts.ErrProviderUnavailable) {
		t.Fatalf("expected ProviderUnavailableError, got %v", err)
	}

	a, err = New(nil, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("new adapter without host: %v", err)
	}
	if a.ProviderInstalled() {
		t.Fatal("nil host must not yield a provider")
	}
}

func TestMetadataFollowsConfig(t *testing.T) {
	a, err := New(nil, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	want := Metadata{Name: "Nightly", URL: InstallURL, ProviderName: "nightly"}
	if a.Metadata() != want {
		t.Fatalf("unexpected metadata: %#v", a.Metadata())
	}

	cfg := adapterconfig.Default()
	cfg.ProviderName = "nightly-beta"
	a, err = New(fakeprovider.Host{"nightly-beta": newTestProvider()}, Options{Config: &cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if a.Metadata().ProviderName != "nightly-beta" || !a.ProviderInstalled() {
		t.Fatalf("expected provider from configured name, got %#v", a.Metadata())
	}
}

func TestConfiguredEncodingsReachSession(t *testing.T) {
	p := fakeprovider.New()
	p.SetConnectResult("1thX6LZfHDZZKUs92febYZhYRcXddmzfzF2NvTkPNE", nil)
	p.SetNetworkResult(&contracts.NetworkInfo{ChainID: 2, Network: "Testnet"}, nil)
	cfg := adapterconfig.Default()
	cfg.Encodings.Connect = identity.EncodingBase58

	a, err := New(fakeprovider.Host{"nightly": p}, Options{Config: &cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if err := a.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if account, _ := a.CurrentAccount(); account.Address != testKeyAddress {
		t.Fatalf("unexpected account: %#v", account)
	}
}

func TestSigningLimiterFromConfig(t *testing.T) {
	p := newTestProvider()
	p.SetSignResult(&contracts.SignedTransaction{Signed: []byte{0x01}}, nil)
	cfg := adapterconfig.Default()
	cfg.Signing = adapterconfig.Signing{RatePerSecond: 0.001, Burst: 1}

	a, err := New(fakeprovider.Host{"nightly": p}, Options{Config: &cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if _, err := a.SignTransaction(context.Background(), []byte("a")); err != nil {
		t.Fatalf("first sign failed: %v", err)
	}
	if _, err := a.SignTransaction(context.Background(), []byte("b")); !errors.Is(err, contracts.ErrRateLimited) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
}

func TestLogsNeverCarryRawAddress(t *testing.T) {
	var buf bytes.Buffer
	a, err := New(fakeprovider.Host{"nightly": newTestProvider()}, Options{
		Logger: DefaultLogger(&buf, slog.LevelDebug),
	})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if err := a.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	out := buf.String()
	if out == "" {
		t.Fatal("expected connect to log")
	}
	if strings.Contains(out, testKeyAddress) || strings.Contains(out, testKeyHex) {
		t.Fatalf("raw identifiers leaked into logs: %s", out)
	}
}

func TestMetricsRegisteredAndSnapshotted(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := New(fakeprovider.Host{"nightly": newTestProvider()}, Options{Logger: quietLogger(), Registerer: reg})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if err := a.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if stat := a.MetricsSnapshot().OperationStats["connect"]; stat.Count != 1 {
		t.Fatalf("unexpected connect stats: %#v", stat)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}

	if _, err := New(nil, Options{Logger: quietLogger(), Registerer: reg}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}
