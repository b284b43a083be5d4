package contacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of *pgxpool.Pool the store needs; pgxmock satisfies it in tests.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists contacts in Postgres.
type Store struct {
	pool PgxPool
}

func NewStore(pool PgxPool) *Store {
	if pool == nil {
		return nil
	}
	return &Store{pool: pool}
}

// FindByPhone runs an exact match on the unique phone column.
func (s *Store) FindByPhone(ctx context.Context, phone string) (*Contact, error) {
	query := `
		SELECT phone, name, type
		FROM contacts
		WHERE phone = $1
	`
	var (
		c        Contact
		lineType string
	)
	if err := s.pool.QueryRow(ctx, query, phone).Scan(&c.Phone, &c.Name, &lineType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("contacts: find by phone: %w", err)
	}
	c.Type = LineType(lineType)
	return &c, nil
}

// Count returns the number of stored contacts.
func (s *Store) Count(ctx context.Context) (int, error) {
	return count(ctx, s.pool)
}

// Insert adds a contact; an existing phone is left untouched.
func (s *Store) Insert(ctx context.Context, c Contact) error {
	return insert(ctx, s.pool, c)
}

// SeedIfEmpty writes seed when the table has no rows. It reports how many
// contacts were inserted.
func (s *Store) SeedIfEmpty(ctx context.Context, seed []Contact) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("contacts: begin seed: %w", err)
	}
	inserted, err := seedTx(ctx, tx, seed)
	if err != nil || inserted == 0 {
		_ = tx.Rollback(ctx)
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("contacts: commit seed: %w", err)
	}
	return inserted, nil
}

func seedTx(ctx context.Context, tx pgx.Tx, seed []Contact) (int, error) {
	existing, err := count(ctx, tx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}
	for _, c := range seed {
		if err := insert(ctx, tx, c); err != nil {
			return 0, err
		}
	}
	return len(seed), nil
}

func count(ctx context.Context, q querier) (int, error) {
	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("contacts: count: %w", err)
	}
	return n, nil
}

func insert(ctx context.Context, q querier, c Contact) error {
	if err := c.validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO contacts (phone, name, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, c.Phone, c.Name, string(c.Type)); err != nil {
		return fmt.Errorf("contacts: insert %s: %w", c.Phone, err)
	}
	return nil
}
