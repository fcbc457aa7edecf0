package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leavedesk/leave-api/internal/core/ports"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store provides Postgres-backed persistence for users and leaves.
type Store struct {
	pool *pgxpool.Pool
	dsn  string
}

// NewStore connects a pool to databaseURL. The schema is applied separately by Migrate.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool, dsn: databaseURL}, nil
}

func (s *Store) Name() string { return "postgres" }

func (s *Store) Users() ports.UserRepository { return &UserRepository{pool: s.pool} }

func (s *Store) Leaves() ports.LeaveRepository { return &LeaveRepository{pool: s.pool} }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Close releases database resources.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

// Migrate applies all pending up migrations embedded in the binary.
func (s *Store) Migrate(context.Context) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", src, s.dsn)
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrate up failed: %w", err)
	}
	return nil
}
