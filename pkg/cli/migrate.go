package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/issuepool/issuepool/pkg/cli/config"
	"github.com/issuepool/issuepool/pkg/repository/postgres"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

func migrateCommand() *cli.Command {
	var database config.Database

	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database schema migrations",
		Flags: database.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if !database.Enabled() {
				return goerr.New("database DSN is required for migration")
			}

			logging.Default().Info("running migrations", slog.Any("Database", database))

			if err := postgres.Migrate(database.DSN()); err != nil {
				return err
			}

			logging.Default().Info("migrations applied")
			return nil
		},
	}
}
