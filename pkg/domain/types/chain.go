package types

type (
	// Currency identifies one of the reward-pool token contracts.
	Currency string

	// Amount is a token amount in the currency's smallest indivisible unit.
	Amount int64

	// TxHash is the hash of a submitted chain transaction.
	TxHash string

	// IdempotencyKey deduplicates mutating chain calls across retries.
	IdempotencyKey string

	// WalletAddress is a recipient address on the reward chain.
	WalletAddress string

	// WindowKind selects which rolling-window ceiling applies to an admission.
	WindowKind string

	// AllocationStatus is the lifecycle state of a reward allocation.
	AllocationStatus string
)

const (
	CurrencyGAS  Currency = "GAS"
	CurrencyNEO  Currency = "NEO"
	CurrencyUSDC Currency = "USDC"
)

const (
	WindowFunding  WindowKind = "funding"
	WindowTransfer WindowKind = "transfer"
)

const (
	AllocationPending   AllocationStatus = "pending"
	AllocationConfirmed AllocationStatus = "confirmed"
	AllocationFailed    AllocationStatus = "failed"
)

// Currencies lists every supported reward currency.
func Currencies() []Currency {
	return []Currency{CurrencyGAS, CurrencyNEO, CurrencyUSDC}
}

// IsValid reports whether the currency is one of the supported tokens.
func (x Currency) IsValid() bool {
	switch x {
	case CurrencyGAS, CurrencyNEO, CurrencyUSDC:
		return true
	}
	return false
}

func (x WindowKind) IsValid() bool {
	return x == WindowFunding || x == WindowTransfer
}
