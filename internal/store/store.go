// Package store persists catalyst records behind a driver-neutral
// interface with Postgres and embedded SQLite implementations.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/propai/catalyst-cli/internal/model"
)

// Store is the catalyst persistence interface. FindByKey returns
// (nil, nil) when no record matches; only infrastructure failures are
// errors.
type Store interface {
	// ListCatalysts returns every stored catalyst; the scoring snapshot
	// is built from this at load time.
	ListCatalysts(ctx context.Context) ([]model.Catalyst, error)

	// FindByKey looks up zero or one record by the (name, state, type)
	// business key. Matching is case-sensitive and exact.
	FindByKey(ctx context.Context, key model.Key) (*model.Catalyst, error)

	// Insert persists a new record and returns the assigned id.
	Insert(ctx context.Context, c model.Catalyst) (string, error)

	// Update overwrites all fields of the record with the given id.
	Update(ctx context.Context, id string, c model.Catalyst) error

	// Migrate creates or upgrades the schema.
	Migrate(ctx context.Context) error

	Close() error
}

// Config selects and configures a store driver.
type Config struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// Open creates a Store for the configured driver. A missing database URL
// is a startup failure, not a per-request error.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, eris.New("store: database_url is required")
	}

	switch cfg.Driver {
	case "", "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q (valid: postgres, sqlite)", cfg.Driver)
	}
}
