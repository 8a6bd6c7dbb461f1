package contracts

import contractports "aptos-wallet/go-adapter/internal/domains/contracts/ports"

type WalletProvider = contractports.WalletProvider
type ProviderHost = contractports.ProviderHost
type SignedTransaction = contractports.SignedTransaction
type PendingTransaction = contractports.PendingTransaction
type NetworkInfo = contractports.NetworkInfo
type CategorizedError = contractports.CategorizedError
