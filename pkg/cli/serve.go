package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/issuepool/issuepool/pkg/cli/config"
	"github.com/issuepool/issuepool/pkg/controller/server"
	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/infra"
	"github.com/issuepool/issuepool/pkg/usecase"
	"github.com/issuepool/issuepool/pkg/utils/logging"
	"github.com/issuepool/issuepool/pkg/utils/safe"
)

func serveCommand() *cli.Command {
	var (
		addr              string
		reconcileInterval time.Duration

		githubApp config.GitHubApp
		chainCfg  config.Chain
		database  config.Database
		limits    config.Limits
		bigQuery  config.BigQuery
		sentry    config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("ISSUEPOOL_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "reconcile-interval",
			Usage:       "Interval between pending-allocation sweeps (0 disables)",
			Value:       time.Minute,
			Sources:     cli.EnvVars("ISSUEPOOL_RECONCILE_INTERVAL"),
			Destination: &reconcileInterval,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			githubApp.Flags(),
			chainCfg.Flags(),
			database.Flags(),
			limits.Flags(),
			bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("ReconcileInterval", reconcileInterval),
				slog.Any("GitHubApp", githubApp),
				slog.Any("Chain", chainCfg),
				slog.Any("Database", database),
				slog.Any("Limits", limits),
				slog.Any("BigQuery", bigQuery),
				slog.Any("Sentry", sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			ghClient, err := githubApp.New()
			if err != nil {
				return err
			}

			gateway, err := chainCfg.NewGateway()
			if err != nil {
				return err
			}

			limitConfig, err := limits.Build()
			if err != nil {
				return err
			}

			infraOptions := []infra.Option{
				infra.WithGitHub(ghClient),
				infra.WithChain(gateway),
			}

			if database.Enabled() {
				repo, db, err := database.NewRepository()
				if err != nil {
					return err
				}
				defer safe.Close(db)
				infraOptions = append(infraOptions, infra.WithRewardRepository(repo))
			} else {
				logging.Default().Warn("no database configured, using in-memory store")
			}

			if bqClient, err := bigQuery.NewClient(ctx); err != nil {
				return err
			} else if bqClient != nil {
				infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
			}

			clients := infra.New(infraOptions...)

			uc := usecase.New(clients, usecase.WithLimits(limitConfig))
			s := server.New(uc, server.WithWebhookSecret(githubApp.Secret()))

			reconcileCtx, stopReconcile := context.WithCancel(ctx)
			defer stopReconcile()
			if reconcileInterval > 0 {
				go runReconcileLoop(reconcileCtx, uc, reconcileInterval)
			}

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}

// runReconcileLoop sweeps pending allocations on a fixed interval until the
// context ends.
func runReconcileLoop(ctx context.Context, uc interfaces.UseCase, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := uc.ReconcileAllocations(ctx); err != nil {
				logging.From(ctx).Error("reconcile sweep failed", slog.Any("error", err))
			}
		}
	}
}
