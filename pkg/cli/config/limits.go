package config

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
)

// Limits overrides the per-currency daily ceilings. Each entry is
// CURRENCY=AMOUNT in the currency's smallest unit, e.g. GAS=50000000000.
type Limits struct {
	funding  []string
	transfer []string
}

func (x *Limits) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "funding-limit",
			Usage:       "Daily funding ceiling override as CURRENCY=AMOUNT",
			Category:    "Limits",
			Destination: &x.funding,
			Sources:     cli.EnvVars("ISSUEPOOL_FUNDING_LIMIT"),
		},
		&cli.StringSliceFlag{
			Name:        "transfer-limit",
			Usage:       "Daily transfer ceiling override as CURRENCY=AMOUNT",
			Category:    "Limits",
			Destination: &x.transfer,
			Sources:     cli.EnvVars("ISSUEPOOL_TRANSFER_LIMIT"),
		},
	}
}

// Build applies the overrides on top of the default ceilings and validates
// the result.
func (x Limits) Build() (*model.LimitConfig, error) {
	limits := model.DefaultLimits()

	if err := applyOverrides(limits.Funding, x.funding); err != nil {
		return nil, err
	}
	if err := applyOverrides(limits.Transfer, x.transfer); err != nil {
		return nil, err
	}

	if err := limits.Validate(); err != nil {
		return nil, err
	}
	return limits, nil
}

func applyOverrides(m map[types.Currency]types.Amount, entries []string) error {
	for _, entry := range entries {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return goerr.Wrap(types.ErrInvalidOption, "limit override must be CURRENCY=AMOUNT",
				goerr.V("entry", entry),
			)
		}

		currency := types.Currency(strings.ToUpper(strings.TrimSpace(parts[0])))
		if !currency.IsValid() {
			return goerr.Wrap(types.ErrInvalidOption, "unsupported currency in limit override",
				goerr.V("entry", entry),
			)
		}

		amount, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil || amount <= 0 {
			return goerr.Wrap(types.ErrInvalidOption, "limit amount must be a positive integer",
				goerr.V("entry", entry),
			)
		}

		m[currency] = types.Amount(amount)
	}
	return nil
}

func (x Limits) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("FundingOverrides", x.funding),
		slog.Any("TransferOverrides", x.transfer),
	)
}
