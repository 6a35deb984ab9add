package postgres

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// New opens a Postgres-backed repository with the given DSN.
func New(dsn string) (interfaces.RewardRepository, *sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open postgres connection")
	}
	if err := db.Ping(); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to ping postgres")
	}

	return &rewardRepository{db: db}, db, nil
}

// Migrate applies all pending schema migrations to the database.
func Migrate(dsn string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return goerr.Wrap(err, "failed to load embedded migrations")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return goerr.Wrap(err, "failed to open postgres connection")
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return goerr.Wrap(err, "failed to create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return goerr.Wrap(err, "failed to create migrator")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return goerr.Wrap(err, "failed to apply migrations")
	}

	return nil
}
