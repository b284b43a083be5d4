package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wolfman30/sy-number-bot/internal/contacts"
	"github.com/wolfman30/sy-number-bot/migrations"
	"github.com/wolfman30/sy-number-bot/pkg/logging"
)

// ConnectPostgres opens and pings a pool. An empty URL returns (nil, nil).
func ConnectPostgres(ctx context.Context, databaseURL string, logger *logging.Logger) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	logger.Info("connected to postgres")
	return pool, nil
}

// RunMigrations applies the embedded schema. With force >= 0 the schema
// version is forced instead.
func RunMigrations(databaseURL string, force int) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("bootstrap: open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("bootstrap: ping db: %w", err)
	}
	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("bootstrap: db driver: %w", err)
	}
	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("bootstrap: source driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("bootstrap: create migrator: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if force >= 0 {
		if err := m.Force(force); err != nil {
			return fmt.Errorf("bootstrap: force version %d: %w", force, err)
		}
		return nil
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("bootstrap: migrate up: %w", err)
	}
	return nil
}

type contactSeeder interface {
	SeedIfEmpty(ctx context.Context, seed []contacts.Contact) (int, error)
}

// SeedContacts writes the default contacts into an empty table.
func SeedContacts(ctx context.Context, store contactSeeder, logger *logging.Logger) error {
	if store == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	n, err := store.SeedIfEmpty(ctx, contacts.DefaultSeed)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("seeded contacts table", "count", n)
	}
	return nil
}

// BuildContactsRepository returns the Postgres store when a pool is available
// and an in-memory repository holding the default seed otherwise.
func BuildContactsRepository(pool *pgxpool.Pool, logger *logging.Logger) contacts.Repository {
	if logger == nil {
		logger = logging.Default()
	}
	if pool == nil {
		logger.Warn("DATABASE_URL not set, serving contacts from memory")
		return contacts.NewInMemoryRepository(contacts.DefaultSeed...)
	}
	return contacts.NewStore(pool)
}
