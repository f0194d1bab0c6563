package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/propai/catalyst-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, satisfied by
// pgxmock for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS catalysts (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	state          TEXT NOT NULL,
	type           TEXT NOT NULL,
	lat            DOUBLE PRECISION NOT NULL,
	lng            DOUBLE PRECISION NOT NULL,
	radius_miles   DOUBLE PRECISION NOT NULL,
	capex_usd      DOUBLE PRECISION,
	jobs_estimated INTEGER,
	recency_tier   TEXT NOT NULL DEFAULT '',
	announced_at   TIMESTAMPTZ,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_catalysts_business_key
	ON catalysts(name, state, type);
CREATE INDEX IF NOT EXISTS idx_catalysts_state ON catalysts(state);
`

const (
	listCatalystsSQL = `SELECT id, name, state, type, lat, lng, radius_miles, capex_usd, jobs_estimated, recency_tier, announced_at FROM catalysts ORDER BY state, name`
	findByKeySQL     = `SELECT id, name, state, type, lat, lng, radius_miles, capex_usd, jobs_estimated, recency_tier, announced_at FROM catalysts WHERE name = $1 AND state = $2 AND type = $3`
	insertSQL        = `INSERT INTO catalysts (id, name, state, type, lat, lng, radius_miles, capex_usd, jobs_estimated, recency_tier, announced_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`
	updateSQL        = `UPDATE catalysts SET name = $1, state = $2, type = $3, lat = $4, lng = $5, radius_miles = $6, capex_usd = $7, jobs_estimated = $8, recency_tier = $9, announced_at = $10, updated_at = now() WHERE id = $11`
)

// NewPostgres creates a PostgresStore with a connection pool and verifies
// connectivity.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) ListCatalysts(ctx context.Context) ([]model.Catalyst, error) {
	rows, err := s.pool.Query(ctx, listCatalystsSQL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list catalysts")
	}
	defer rows.Close()

	var result []model.Catalyst
	for rows.Next() {
		var c model.Catalyst
		if err := rows.Scan(
			&c.ID, &c.Name, &c.State, &c.Type,
			&c.Lat, &c.Lng, &c.RadiusMiles,
			&c.CapexUSD, &c.JobsEstimated, &c.RecencyTier, &c.AnnouncedAt,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan catalyst")
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: list catalysts rows")
	}

	return result, nil
}

func (s *PostgresStore) FindByKey(ctx context.Context, key model.Key) (*model.Catalyst, error) {
	var c model.Catalyst
	err := s.pool.QueryRow(ctx, findByKeySQL, key.Name, key.State, string(key.Type)).Scan(
		&c.ID, &c.Name, &c.State, &c.Type,
		&c.Lat, &c.Lng, &c.RadiusMiles,
		&c.CapexUSD, &c.JobsEstimated, &c.RecencyTier, &c.AnnouncedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: find catalyst %s/%s/%s", key.Name, key.State, key.Type)
	}
	return &c, nil
}

func (s *PostgresStore) Insert(ctx context.Context, c model.Catalyst) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx, insertSQL,
		id, c.Name, c.State, string(c.Type),
		c.Lat, c.Lng, c.RadiusMiles,
		c.CapexUSD, c.JobsEstimated, string(c.RecencyTier), c.AnnouncedAt,
	)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: insert catalyst %s", c.Name)
	}
	return id, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, c model.Catalyst) error {
	tag, err := s.pool.Exec(ctx, updateSQL,
		c.Name, c.State, string(c.Type),
		c.Lat, c.Lng, c.RadiusMiles,
		c.CapexUSD, c.JobsEstimated, string(c.RecencyTier), c.AnnouncedAt,
		id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update catalyst %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: update catalyst %s: no such record", id)
	}
	return nil
}
