package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/types"
)

// WindowDuration is the rolling window over which funding and transfer
// ceilings are enforced.
const WindowDuration = 24 * time.Hour

// FundingWindow is the rolling-window accumulator for one subject, currency
// and kind. amount_consumed <= the configured ceiling holds after every
// accepted admission.
type FundingWindow struct {
	SubjectID      types.UserID
	Currency       types.Currency
	Kind           types.WindowKind
	WindowStart    time.Time
	AmountConsumed types.Amount
}

// Expired reports whether the window has elapsed at the given time and must
// be reset before the next admission is evaluated.
func (x *FundingWindow) Expired(now time.Time) bool {
	return !x.WindowStart.After(now.Add(-WindowDuration))
}

// LimitConfig holds the per-currency daily ceilings for each window kind.
type LimitConfig struct {
	Funding  map[types.Currency]types.Amount
	Transfer map[types.Currency]types.Amount
}

// DefaultLimits returns the ceilings applied when no configuration is given.
func DefaultLimits() *LimitConfig {
	return &LimitConfig{
		Funding: map[types.Currency]types.Amount{
			types.CurrencyGAS:  500_00000000,
			types.CurrencyNEO:  100,
			types.CurrencyUSDC: 5000_000000,
		},
		Transfer: map[types.Currency]types.Amount{
			types.CurrencyGAS:  200_00000000,
			types.CurrencyNEO:  50,
			types.CurrencyUSDC: 2000_000000,
		},
	}
}

// Ceiling returns the limit for the currency and kind.
func (x *LimitConfig) Ceiling(currency types.Currency, kind types.WindowKind) (types.Amount, error) {
	var m map[types.Currency]types.Amount
	switch kind {
	case types.WindowFunding:
		m = x.Funding
	case types.WindowTransfer:
		m = x.Transfer
	default:
		return 0, goerr.Wrap(types.ErrInvalidOption, "unknown window kind", goerr.V("kind", kind))
	}

	limit, ok := m[currency]
	if !ok {
		return 0, goerr.Wrap(types.ErrInvalidOption, "no ceiling configured for currency",
			goerr.V("currency", currency),
			goerr.V("kind", kind),
		)
	}
	return limit, nil
}

func (x *LimitConfig) Validate() error {
	for _, c := range types.Currencies() {
		for _, kind := range []types.WindowKind{types.WindowFunding, types.WindowTransfer} {
			limit, err := x.Ceiling(c, kind)
			if err != nil {
				return err
			}
			if limit <= 0 {
				return goerr.Wrap(types.ErrInvalidOption, "ceiling must be positive",
					goerr.V("currency", c),
					goerr.V("kind", kind),
					goerr.V("limit", limit),
				)
			}
		}
	}
	return nil
}
