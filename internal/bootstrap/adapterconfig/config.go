package adapterconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"aptos-wallet/go-adapter/internal/domains/session"
	"aptos-wallet/go-adapter/internal/identity"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWalletName   = "Nightly"
	DefaultProviderName = "nightly"
)

// Config is the resolved adapter configuration.
type Config struct {
	WalletName   string
	ProviderName string
	LogLevel     slog.Level
	Encodings    session.Encodings
	Signing      Signing
}

// Signing configures the sign-prompt limiter. A zero rate disables it.
type Signing struct {
	RatePerSecond float64
	Burst         int
}

type FileConfig struct {
	Adapter AdapterFileConfig `yaml:"adapter"`
}

type AdapterFileConfig struct {
	WalletName   string              `yaml:"walletName"`
	ProviderName string              `yaml:"providerName"`
	LogLevel     string              `yaml:"logLevel"`
	Encodings    EncodingsFileConfig `yaml:"encodings"`
	Signing      SigningFileConfig   `yaml:"signing"`
}

type EncodingsFileConfig struct {
	Connect       string `yaml:"connect"`
	Account       string `yaml:"account"`
	AccountChange string `yaml:"accountChange"`
}

type SigningFileConfig struct {
	RatePerSecond *float64 `yaml:"ratePerSecond"`
	Burst         *int     `yaml:"burst"`
}

func Default() Config {
	return Config{
		WalletName:   DefaultWalletName,
		ProviderName: DefaultProviderName,
		LogLevel:     slog.LevelInfo,
		Encodings:    session.DefaultEncodings(),
	}
}

func LoadFromPath(configPath string) Config {
	cfg := Default()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates,
			"configs/adapter.yaml",
			"adapter.yaml",
		)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var parsed FileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}

		merged := cfg
		Merge(&merged, parsed.Adapter)
		ApplyEnvOverrides(&merged)
		return merged
	}

	ApplyEnvOverrides(&cfg)
	return cfg
}

// Merge copies every set and valid field of src into dst.
func Merge(dst *Config, src AdapterFileConfig) {
	if v := strings.TrimSpace(src.WalletName); v != "" {
		dst.WalletName = v
	}
	if v := strings.TrimSpace(src.ProviderName); v != "" {
		dst.ProviderName = v
	}
	if level, ok := parseLevel(src.LogLevel); ok {
		dst.LogLevel = level
	}
	mergeEncoding(&dst.Encodings.Connect, src.Encodings.Connect)
	mergeEncoding(&dst.Encodings.Account, src.Encodings.Account)
	mergeEncoding(&dst.Encodings.AccountChange, src.Encodings.AccountChange)
	if src.Signing.RatePerSecond != nil && *src.Signing.RatePerSecond >= 0 {
		dst.Signing.RatePerSecond = *src.Signing.RatePerSecond
	}
	if src.Signing.Burst != nil && *src.Signing.Burst >= 0 {
		dst.Signing.Burst = *src.Signing.Burst
	}
}

func ApplyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("APTOS_ADAPTER_WALLET_NAME")); v != "" {
		cfg.WalletName = v
	}
	if v := strings.TrimSpace(os.Getenv("APTOS_ADAPTER_PROVIDER_NAME")); v != "" {
		cfg.ProviderName = v
	}
	if level, ok := parseLevel(os.Getenv("APTOS_ADAPTER_LOG_LEVEL")); ok {
		cfg.LogLevel = level
	}
	mergeEncoding(&cfg.Encodings.Connect, os.Getenv("APTOS_ADAPTER_CONNECT_ENCODING"))
	mergeEncoding(&cfg.Encodings.Account, os.Getenv("APTOS_ADAPTER_ACCOUNT_ENCODING"))
	mergeEncoding(&cfg.Encodings.AccountChange, os.Getenv("APTOS_ADAPTER_ACCOUNT_CHANGE_ENCODING"))

	if raw := strings.TrimSpace(os.Getenv("APTOS_ADAPTER_SIGNING_RATE")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			cfg.Signing.RatePerSecond = v
		}
	}
	if raw := strings.TrimSpace(os.Getenv("APTOS_ADAPTER_SIGNING_BURST")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			cfg.Signing.Burst = v
		}
	}
}

func mergeEncoding(dst *identity.Encoding, raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	if enc, ok := identity.ParseEncoding(raw); ok {
		*dst = enc
	}
}

func parseLevel(raw string) (slog.Level, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, false
	}
	return level, true
}
