package config

import (
	"database/sql"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/repository/postgres"
)

// Database selects the persistent store. Without a DSN the server falls back
// to the in-memory repository, which is only suitable for development.
type Database struct {
	dsn string `masq:"secret"`
}

func (x *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "database-dsn",
			Usage:       "Postgres DSN (optional; in-memory store when omitted)",
			Category:    "Database",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("ISSUEPOOL_DATABASE_DSN"),
		},
	}
}

func (x Database) Enabled() bool {
	return x.dsn != ""
}

func (x Database) DSN() string {
	return x.dsn
}

func (x Database) NewRepository() (interfaces.RewardRepository, *sql.DB, error) {
	return postgres.New(x.dsn)
}

func (x Database) LogValue() slog.Value {
	// Keep host visibility without leaking credentials.
	host := x.dsn
	if i := strings.LastIndex(host, "@"); i >= 0 {
		host = host[i+1:]
	}
	return slog.GroupValue(
		slog.Bool("Enabled", x.Enabled()),
		slog.String("Host", host),
	)
}
