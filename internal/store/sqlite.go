package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/propai/catalyst-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite for local runs
// without a Postgres instance.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures
// WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS catalysts (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	state          TEXT NOT NULL,
	type           TEXT NOT NULL,
	lat            REAL NOT NULL,
	lng            REAL NOT NULL,
	radius_miles   REAL NOT NULL,
	capex_usd      REAL,
	jobs_estimated INTEGER,
	recency_tier   TEXT NOT NULL DEFAULT '',
	announced_at   DATETIME,
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_catalysts_business_key
	ON catalysts(name, state, type);
CREATE INDEX IF NOT EXISTS idx_catalysts_state ON catalysts(state);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListCatalysts(ctx context.Context) ([]model.Catalyst, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, state, type, lat, lng, radius_miles, capex_usd, jobs_estimated, recency_tier, announced_at
		 FROM catalysts ORDER BY state, name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list catalysts")
	}
	defer rows.Close()

	var result []model.Catalyst
	for rows.Next() {
		c, err := scanCatalyst(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan catalyst")
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: list catalysts rows")
	}
	return result, nil
}

func (s *SQLiteStore) FindByKey(ctx context.Context, key model.Key) (*model.Catalyst, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, state, type, lat, lng, radius_miles, capex_usd, jobs_estimated, recency_tier, announced_at
		 FROM catalysts WHERE name = ? AND state = ? AND type = ?`,
		key.Name, key.State, string(key.Type))

	c, err := scanCatalyst(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: find catalyst %s/%s/%s", key.Name, key.State, key.Type)
	}
	return &c, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, c model.Catalyst) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO catalysts (id, name, state, type, lat, lng, radius_miles, capex_usd, jobs_estimated, recency_tier, announced_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))`,
		id, c.Name, c.State, string(c.Type),
		c.Lat, c.Lng, c.RadiusMiles,
		c.CapexUSD, c.JobsEstimated, string(c.RecencyTier), c.AnnouncedAt,
	)
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: insert catalyst %s", c.Name)
	}
	return id, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, c model.Catalyst) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE catalysts SET name = ?, state = ?, type = ?, lat = ?, lng = ?, radius_miles = ?,
		 capex_usd = ?, jobs_estimated = ?, recency_tier = ?, announced_at = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		c.Name, c.State, string(c.Type),
		c.Lat, c.Lng, c.RadiusMiles,
		c.CapexUSD, c.JobsEstimated, string(c.RecencyTier), c.AnnouncedAt,
		id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update catalyst %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: update rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: update catalyst %s: no such record", id)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalyst(r rowScanner) (model.Catalyst, error) {
	var c model.Catalyst
	var capex sql.NullFloat64
	var jobs sql.NullInt64
	var announced sql.NullTime

	err := r.Scan(
		&c.ID, &c.Name, &c.State, &c.Type,
		&c.Lat, &c.Lng, &c.RadiusMiles,
		&capex, &jobs, &c.RecencyTier, &announced,
	)
	if err != nil {
		return model.Catalyst{}, err
	}

	if capex.Valid {
		c.CapexUSD = &capex.Float64
	}
	if jobs.Valid {
		v := int(jobs.Int64)
		c.JobsEstimated = &v
	}
	if announced.Valid {
		t := announced.Time.UTC()
		c.AnnouncedAt = &t
	}
	return c, nil
}
