package models

import (
	"strings"
	"time"
)

// AccountIdentity is the account the embedding application considers current.
// AuthKey is only ever set from provider data.
type AccountIdentity struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	AuthKey   string `json:"auth_key,omitempty"`
}

type NetworkName string

const (
	NetworkMainnet NetworkName = "mainnet"
	NetworkTestnet NetworkName = "testnet"
	NetworkDevnet  NetworkName = "devnet"
	NetworkCustom  NetworkName = "custom"
)

// ParseNetworkName maps a provider-reported network name onto the known set.
// Anything unrecognized is a custom network.
func ParseNetworkName(raw string) NetworkName {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mainnet", "main":
		return NetworkMainnet
	case "testnet", "test":
		return NetworkTestnet
	case "devnet", "dev":
		return NetworkDevnet
	default:
		return NetworkCustom
	}
}

type NetworkDescriptor struct {
	APIEndpoint string      `json:"api_endpoint"`
	ChainID     string      `json:"chain_id"`
	Name        NetworkName `json:"name"`
	RawName     string      `json:"raw_name,omitempty"`
}

type SignMessagePayload struct {
	Message string `json:"message"`
	Nonce   string `json:"nonce"`
}

type SignMessageResponse struct {
	Address     string `json:"address"`
	Application string `json:"application"`
	ChainID     string `json:"chain_id,omitempty"`
	FullMessage string `json:"full_message"`
	Message     string `json:"message"`
	Nonce       string `json:"nonce"`
	Prefix      string `json:"prefix"`
	Signature   string `json:"signature"`
}

// TransactionResult holds either the submission hash or the signed bytes,
// depending on what the provider answered with.
type TransactionResult struct {
	Hash   string `json:"hash,omitempty"`
	Signed []byte `json:"signed,omitempty"`
}

func (r TransactionResult) Submitted() bool {
	return r.Hash != ""
}

type OperationMetric struct {
	Count         int   `json:"count"`
	Errors        int   `json:"errors"`
	AvgLatencyMs  int64 `json:"avg_latency_ms"`
	MaxLatencyMs  int64 `json:"max_latency_ms"`
	LastLatencyMs int64 `json:"last_latency_ms"`
}

type MetricsSnapshot struct {
	ErrorCounters  map[string]int             `json:"error_counters"`
	OperationStats map[string]OperationMetric `json:"operation_stats"`
	AccountChanges map[string]int             `json:"account_changes"`
	LastUpdatedAt  time.Time                  `json:"last_updated_at"`
}
