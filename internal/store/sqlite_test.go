package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propai/catalyst-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "catalysts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	c := stored("GM Ultium Lansing")
	c.State = "MI"

	id, err := s.Insert(ctx, c)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.FindByKey(ctx, c.Key())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.Type, got.Type)
	assert.InDelta(t, c.Lat, got.Lat, 1e-9)
	assert.InDelta(t, c.Lng, got.Lng, 1e-9)
	require.NotNil(t, got.CapexUSD)
	assert.Equal(t, *c.CapexUSD, *got.CapexUSD)
	require.NotNil(t, got.JobsEstimated)
	assert.Equal(t, *c.JobsEstimated, *got.JobsEstimated)
	assert.Equal(t, c.RecencyTier, got.RecencyTier)
	require.NotNil(t, got.AnnouncedAt)
	assert.True(t, got.AnnouncedAt.Equal(*c.AnnouncedAt))
}

func TestSQLiteNullableFields(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	c := model.Catalyst{
		Name:        "Bare Minimum Plant",
		State:       "TN",
		Type:        model.TypeIndustrialMegaproject,
		Lat:         35.0,
		Lng:         -86.0,
		RadiusMiles: 10,
	}

	_, err := s.Insert(ctx, c)
	require.NoError(t, err)

	got, err := s.FindByKey(ctx, c.Key())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.CapexUSD)
	assert.Nil(t, got.JobsEstimated)
	assert.Nil(t, got.AnnouncedAt)
	assert.Equal(t, model.TierUnknown, got.RecencyTier)
}

func TestSQLiteFindByKeyAbsent(t *testing.T) {
	s := newTestSQLite(t)

	got, err := s.FindByKey(context.Background(), model.Key{
		Name: "Nobody", State: "KS", Type: model.TypeAirport,
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteKeyIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	c := stored("Panasonic EV Battery Kansas")
	c.State = "KS"
	_, err := s.Insert(ctx, c)
	require.NoError(t, err)

	got, err := s.FindByKey(ctx, model.Key{
		Name: "PANASONIC EV BATTERY KANSAS", State: "KS", Type: c.Type,
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	c := stored("Intel New Albany Fab")
	c.Type = model.TypeSemiconductorFab
	id, err := s.Insert(ctx, c)
	require.NoError(t, err)

	capex := 28_000_000_000.0
	c.CapexUSD = &capex
	c.RadiusMiles = 30
	c.RecencyTier = model.TierB
	announced := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.AnnouncedAt = &announced

	require.NoError(t, s.Update(ctx, id, c))

	got, err := s.FindByKey(ctx, c.Key())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, capex, *got.CapexUSD)
	assert.Equal(t, 30.0, got.RadiusMiles)
	assert.Equal(t, model.TierB, got.RecencyTier)
}

func TestSQLiteUpdateMissingRecord(t *testing.T) {
	s := newTestSQLite(t)

	err := s.Update(context.Background(), "no-such-id", stored("Ghost"))
	assert.Error(t, err)
}

func TestSQLiteListOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	for _, c := range []model.Catalyst{
		{Name: "Zeta Plant", State: "OH", Type: model.TypeAutoAssembly, Lat: 40, Lng: -83, RadiusMiles: 10},
		{Name: "Alpha Plant", State: "OH", Type: model.TypeAutoAssembly, Lat: 40, Lng: -83, RadiusMiles: 10},
		{Name: "Mid Plant", State: "GA", Type: model.TypeAutoAssembly, Lat: 33, Lng: -84, RadiusMiles: 10},
	} {
		_, err := s.Insert(ctx, c)
		require.NoError(t, err)
	}

	got, err := s.ListCatalysts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Mid Plant", got[0].Name)
	assert.Equal(t, "Alpha Plant", got[1].Name)
	assert.Equal(t, "Zeta Plant", got[2].Name)
}

func TestSQLiteBusinessKeyUnique(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	c := stored("Duplicate Plant")
	_, err := s.Insert(ctx, c)
	require.NoError(t, err)

	_, err = s.Insert(ctx, c)
	assert.Error(t, err)
}

func TestOpenRequiresDatabaseURL(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "sqlite"})
	assert.Error(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle", DatabaseURL: "x"})
	assert.Error(t, err)
}

func TestOpenSQLite(t *testing.T) {
	s, err := Open(context.Background(), Config{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "open.db"),
	})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Migrate(context.Background()))
}
