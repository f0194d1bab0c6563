package main

import (
	"context"

	"github.com/propai/catalyst-cli/internal/store"
)

// openStore opens the configured store and ensures the schema exists.
func openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
