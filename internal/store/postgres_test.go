package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propai/catalyst-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func stored(name string) model.Catalyst {
	capex := 4_400_000_000.0
	jobs := 2200
	announced := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.Catalyst{
		Name:          name,
		State:         "OH",
		Type:          model.TypeEVGigafactory,
		Lat:           40.236,
		Lng:           -83.367,
		RadiusMiles:   12,
		CapexUSD:      &capex,
		JobsEstimated: &jobs,
		RecencyTier:   model.TierC,
		AnnouncedAt:   &announced,
	}
}

func catalystRows(cs ...model.Catalyst) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "name", "state", "type", "lat", "lng", "radius_miles",
		"capex_usd", "jobs_estimated", "recency_tier", "announced_at",
	})
	for _, c := range cs {
		rows.AddRow(c.ID, c.Name, c.State, c.Type, c.Lat, c.Lng, c.RadiusMiles,
			c.CapexUSD, c.JobsEstimated, c.RecencyTier, c.AnnouncedAt)
	}
	return rows
}

func TestPostgresListCatalysts(t *testing.T) {
	s, mock := newMockStore(t)

	a := stored("Honda LG EV Battery Ohio")
	a.ID = "11111111-1111-1111-1111-111111111111"
	b := stored("Intel New Albany Fab")
	b.ID = "22222222-2222-2222-2222-222222222222"
	b.Type = model.TypeSemiconductorFab

	mock.ExpectQuery(`SELECT .+ FROM catalysts ORDER BY state, name`).
		WillReturnRows(catalystRows(a, b))

	got, err := s.ListCatalysts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.Name, got[0].Name)
	assert.Equal(t, *a.CapexUSD, *got[0].CapexUSD)
	assert.Equal(t, b.Type, got[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByKey(t *testing.T) {
	s, mock := newMockStore(t)

	c := stored("Honda LG EV Battery Ohio")
	c.ID = "11111111-1111-1111-1111-111111111111"

	mock.ExpectQuery(`SELECT .+ FROM catalysts WHERE name = \$1 AND state = \$2 AND type = \$3`).
		WithArgs(c.Name, c.State, string(c.Type)).
		WillReturnRows(catalystRows(c))

	got, err := s.FindByKey(context.Background(), c.Key())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, 2200, *got.JobsEstimated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByKeyAbsent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM catalysts WHERE name = \$1`).
		WithArgs("Nope", "TX", "logistics_hub").
		WillReturnRows(catalystRows())

	got, err := s.FindByKey(context.Background(), model.Key{
		Name: "Nope", State: "TX", Type: model.TypeLogisticsHub,
	})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsert(t *testing.T) {
	s, mock := newMockStore(t)

	c := stored("Honda LG EV Battery Ohio")

	mock.ExpectExec(`INSERT INTO catalysts`).
		WithArgs(pgxmock.AnyArg(), c.Name, c.State, string(c.Type),
			c.Lat, c.Lng, c.RadiusMiles,
			c.CapexUSD, c.JobsEstimated, string(c.RecencyTier), c.AnnouncedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := s.Insert(context.Background(), c)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdate(t *testing.T) {
	s, mock := newMockStore(t)

	c := stored("Honda LG EV Battery Ohio")
	id := "11111111-1111-1111-1111-111111111111"

	mock.ExpectExec(`UPDATE catalysts SET`).
		WithArgs(c.Name, c.State, string(c.Type),
			c.Lat, c.Lng, c.RadiusMiles,
			c.CapexUSD, c.JobsEstimated, string(c.RecencyTier), c.AnnouncedAt,
			id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.Update(context.Background(), id, c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateMissingRecord(t *testing.T) {
	s, mock := newMockStore(t)

	c := stored("Ghost Plant")

	mock.ExpectExec(`UPDATE catalysts SET`).
		WithArgs(c.Name, c.State, string(c.Type),
			c.Lat, c.Lng, c.RadiusMiles,
			c.CapexUSD, c.JobsEstimated, string(c.RecencyTier), c.AnnouncedAt,
			"missing-id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.Update(context.Background(), "missing-id", c)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMigrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS catalysts`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresQueryFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM catalysts`).
		WillReturnError(eris.New("connection refused"))

	_, err := s.ListCatalysts(context.Background())
	assert.Error(t, err)
}
