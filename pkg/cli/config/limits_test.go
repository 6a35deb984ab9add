package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/issuepool/issuepool/pkg/cli/config"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
)

// buildLimits parses the given command line through the real flag set and
// returns the resulting ceilings.
func buildLimits(t *testing.T, args ...string) (*model.LimitConfig, error) {
	t.Helper()

	var limitsCfg config.Limits
	var built *model.LimitConfig
	var buildErr error

	cmd := &cli.Command{
		Name:  "test",
		Flags: limitsCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			built, buildErr = limitsCfg.Build()
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))

	return built, buildErr
}

func TestLimitsBuild(t *testing.T) {
	t.Run("defaults apply without overrides", func(t *testing.T) {
		limits, err := buildLimits(t)
		gt.NoError(t, err)
		gt.V(t, limits.Funding).Equal(model.DefaultLimits().Funding)
		gt.V(t, limits.Transfer).Equal(model.DefaultLimits().Transfer)
	})

	t.Run("overrides replace only the named currency", func(t *testing.T) {
		limits, err := buildLimits(t, "--funding-limit", "GAS=100", "--transfer-limit", "neo=5")
		gt.NoError(t, err)

		gt.V(t, limits.Funding[types.CurrencyGAS]).Equal(types.Amount(100))
		gt.V(t, limits.Funding[types.CurrencyNEO]).Equal(model.DefaultLimits().Funding[types.CurrencyNEO])
		gt.V(t, limits.Transfer[types.CurrencyNEO]).Equal(types.Amount(5))
	})

	t.Run("malformed entries are rejected", func(t *testing.T) {
		for _, entry := range []string{"GAS", "GAS=abc", "GAS=-5", "DOGE=100"} {
			_, err := buildLimits(t, "--funding-limit", entry)
			gt.True(t, errors.Is(err, types.ErrInvalidOption))
		}
	})
}
