package ingest

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/propai/catalyst-cli/internal/model"
	"github.com/propai/catalyst-cli/internal/store"
)

// Reconciler merges candidate rows into the catalyst store by business
// key with last-writer-wins semantics. It is the single writer for a
// run: rows are applied sequentially so two candidates sharing a key can
// never race to insert duplicates.
type Reconciler struct {
	store store.Store
}

// NewReconciler creates a Reconciler writing to the given store.
func NewReconciler(s store.Store) *Reconciler {
	return &Reconciler{store: s}
}

// Stats summarizes a reconcile pass.
type Stats struct {
	Inserted int
	Updated  int
}

// Reconcile upserts every candidate: an existing record with the same
// (name, state, type) key is fully overwritten, otherwise the candidate
// is inserted. Re-running with identical input is a no-op beyond
// rewriting the same values. Store failures abort the run; the store is
// the one collaborator whose loss is not recoverable.
func (r *Reconciler) Reconcile(ctx context.Context, candidates []model.Catalyst) (Stats, error) {
	log := zap.L().With(zap.String("component", "ingest.reconciler"))

	// Within one batch the last row for a key wins, mirroring the
	// per-run overwrite semantics.
	latest := make(map[model.Key]int, len(candidates))
	order := make([]model.Key, 0, len(candidates))
	for i, c := range candidates {
		key := c.Key()
		if _, seen := latest[key]; !seen {
			order = append(order, key)
		}
		latest[key] = i
	}

	var stats Stats
	for _, key := range order {
		c := candidates[latest[key]]

		existing, err := r.store.FindByKey(ctx, key)
		if err != nil {
			return stats, eris.Wrapf(err, "reconcile: find %s/%s/%s", key.Name, key.State, key.Type)
		}

		if existing != nil {
			if err := r.store.Update(ctx, existing.ID, c); err != nil {
				return stats, eris.Wrapf(err, "reconcile: update %s", existing.ID)
			}
			stats.Updated++
			log.Debug("updated catalyst",
				zap.String("name", c.Name),
				zap.String("state", c.State),
				zap.String("type", string(c.Type)),
			)
			continue
		}

		if _, err := r.store.Insert(ctx, c); err != nil {
			return stats, eris.Wrapf(err, "reconcile: insert %s/%s/%s", key.Name, key.State, key.Type)
		}
		stats.Inserted++
		log.Debug("inserted catalyst",
			zap.String("name", c.Name),
			zap.String("state", c.State),
			zap.String("type", string(c.Type)),
		)
	}

	log.Info("reconcile complete",
		zap.Int("inserted", stats.Inserted),
		zap.Int("updated", stats.Updated),
	)
	return stats, nil
}
