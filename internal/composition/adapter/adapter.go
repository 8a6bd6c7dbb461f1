// Package adapter is the composition root: it resolves the configured provider
// from the host and wires the session reconciler with logging, metrics and the
// signing limiter.
package adapter

import (
	"io"
	"log/slog"
	"os"

	"aptos-wallet/go-adapter/internal/bootstrap/adapterconfig"
	"aptos-wallet/go-adapter/internal/domains/contracts"
	"aptos-wallet/go-adapter/internal/domains/session"
	"aptos-wallet/go-adapter/internal/platform/metrics"
	"aptos-wallet/go-adapter/internal/platform/privacylog"
	"aptos-wallet/go-adapter/internal/platform/ratelimiter"
	"aptos-wallet/go-adapter/pkg/models"

	"github.com/prometheus/client_golang/prometheus"
)

const InstallURL = "https://chrome.google.com/webstore/detail/nightly/fiikommddbeccaoicoejoniammnalkfa"

type ReadyState string

const (
	ReadyStateInstalled   ReadyState = "Installed"
	ReadyStateNotDetected ReadyState = "NotDetected"
)

// Metadata describes the wallet to a wallet-selection UI.
type Metadata struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	ProviderName string `json:"provider_name"`
}

type Options struct {
	// Config defaults to adapterconfig.Default() when nil.
	Config *adapterconfig.Config
	// Logger defaults to JSON on stdout at Config.LogLevel. It is always
	// wrapped with the privacy sanitizer.
	Logger *slog.Logger
	// Registerer receives the adapter's Prometheus collectors. Nil keeps the
	// metrics in-process only.
	Registerer prometheus.Registerer
}

// Adapter is a wallet adapter bound to one provider for the process lifetime.
type Adapter struct {
	*session.Reconciler

	metadata Metadata
	metrics  *metrics.Recorder
}

func New(host contracts.ProviderHost, opts Options) (*Adapter, error) {
	cfg := adapterconfig.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = DefaultLogger(os.Stdout, cfg.LogLevel)
	}
	logger = slog.New(privacylog.WrapHandler(logger.Handler()))

	recorder, err := metrics.NewRecorder(opts.Registerer)
	if err != nil {
		return nil, err
	}

	provider := lookupProvider(host, cfg.ProviderName)
	if provider == nil {
		logger.Warn("wallet provider not detected",
			"component", "adapter",
			"provider_name", cfg.ProviderName,
		)
	}

	sessionOpts := session.Options{
		Logger:    logger,
		Metrics:   recorder,
		Encodings: cfg.Encodings,
	}
	if limiter := ratelimiter.New(cfg.Signing.RatePerSecond, cfg.Signing.Burst); limiter != nil {
		sessionOpts.Limiter = limiter
	}

	return &Adapter{
		Reconciler: session.New(provider, sessionOpts),
		metadata: Metadata{
			Name:         cfg.WalletName,
			URL:          InstallURL,
			ProviderName: cfg.ProviderName,
		},
		metrics: recorder,
	}, nil
}

// NewFromConfigPath loads configuration the way adapterconfig.LoadFromPath
// does and builds the adapter from it.
func NewFromConfigPath(host contracts.ProviderHost, configPath string, reg prometheus.Registerer) (*Adapter, error) {
	cfg := adapterconfig.LoadFromPath(configPath)
	return New(host, Options{Config: &cfg, Registerer: reg})
}

func lookupProvider(host contracts.ProviderHost, name string) contracts.WalletProvider {
	if host == nil {
		return nil
	}
	provider, ok := host.Lookup(name)
	if !ok {
		return nil
	}
	return provider
}

func DefaultLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func (a *Adapter) Metadata() Metadata {
	return a.metadata
}

func (a *Adapter) ReadyState() ReadyState {
	if a.ProviderInstalled() {
		return ReadyStateInstalled
	}
	return ReadyStateNotDetected
}

func (a *Adapter) MetricsSnapshot() models.MetricsSnapshot {
	return a.metrics.Snapshot()
}
