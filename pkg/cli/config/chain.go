package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/issuepool/issuepool/pkg/infra/chain"
)

type Chain struct {
	rpcURL  string
	timeout time.Duration
}

func (x *Chain) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "chain-rpc-url",
			Usage:       "JSON-RPC endpoint of the reward pool node",
			Category:    "Chain",
			Destination: &x.rpcURL,
			Sources:     cli.EnvVars("ISSUEPOOL_CHAIN_RPC_URL"),
			Required:    true,
		},
		&cli.DurationFlag{
			Name:        "chain-timeout",
			Usage:       "HTTP timeout for chain RPC calls",
			Category:    "Chain",
			Destination: &x.timeout,
			Sources:     cli.EnvVars("ISSUEPOOL_CHAIN_TIMEOUT"),
			Value:       30 * time.Second,
		},
	}
}

func (x Chain) NewGateway() (*chain.Gateway, error) {
	client, err := chain.NewClient(chain.Config{
		RPCURL:  x.rpcURL,
		Timeout: x.timeout,
	})
	if err != nil {
		return nil, err
	}
	return chain.NewGateway(client), nil
}

func (x Chain) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("RPCURL", x.rpcURL),
		slog.Duration("Timeout", x.timeout),
	)
}
