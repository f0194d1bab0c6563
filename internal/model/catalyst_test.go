package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasValidPosition(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"origin", 0, 0, true},
		{"typical", 40.083, -82.808, true},
		{"lat north edge", 90, 0, true},
		{"lat south edge", -90, 0, true},
		{"lng east edge", 0, 180, true},
		{"lng west edge", 0, -180, true},
		{"lat too far north", 90.0001, 0, false},
		{"lat too far south", -90.0001, 0, false},
		{"lng too far east", 0, 180.0001, false},
		{"lng too far west", 0, -180.0001, false},
		{"lat nan", math.NaN(), 0, false},
		{"lng nan", 0, math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Catalyst{Lat: tt.lat, Lng: tt.lng}
			assert.Equal(t, tt.want, c.HasValidPosition())
		})
	}
}

func TestKey(t *testing.T) {
	c := Catalyst{
		ID:    "some-uuid",
		Name:  "Intel New Albany Fab",
		State: "OH",
		Type:  TypeSemiconductorFab,
		Lat:   40.083,
		Lng:   -82.808,
	}

	// Identity is the business triple; the store id never participates.
	assert.Equal(t, Key{Name: "Intel New Albany Fab", State: "OH", Type: TypeSemiconductorFab}, c.Key())

	other := c
	other.ID = "different-uuid"
	other.Lat = 41.0
	assert.Equal(t, c.Key(), other.Key())

	renamed := c
	renamed.Name = "intel new albany fab"
	assert.NotEqual(t, c.Key(), renamed.Key())
}

func TestAnnouncedYear(t *testing.T) {
	assert.Equal(t, 0, Catalyst{}.AnnouncedYear())

	announced := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := Catalyst{AnnouncedAt: &announced}
	assert.Equal(t, 2022, c.AnnouncedYear())
}
