// Package db selects and opens the configured storage backend.
package db

import (
	"context"
	"fmt"

	"github.com/leavedesk/leave-api/internal/core/ports"
	"github.com/leavedesk/leave-api/internal/infrastructure/config"
	"github.com/leavedesk/leave-api/internal/infrastructure/db/memory"
	"github.com/leavedesk/leave-api/internal/infrastructure/db/mongo"
	"github.com/leavedesk/leave-api/internal/infrastructure/db/postgres"
)

// Store is an explicitly owned storage handle: opened at startup, closed at shutdown.
type Store interface {
	Name() string
	Users() ports.UserRepository
	Leaves() ports.LeaveRepository
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	_ Store = (*mongo.Store)(nil)
	_ Store = (*postgres.Store)(nil)
	_ Store = (*memory.Store)(nil)
)

// Open connects the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return mongo.NewStore(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	case config.DriverPostgres:
		return postgres.NewStore(ctx, cfg.Postgres.DSN())
	case config.DriverMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
