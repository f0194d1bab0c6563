package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$2,100,000,000", 2_100_000_000, true},
		{"1250000", 1_250_000, true},
		{" 42.5 ", 42.5, true},
		{"", 0, false},
		{"   ", 0, false},
		{"n/a", 0, false},
		{"$", 0, false},
	}

	for _, tt := range tests {
		got, ok := NormalizeFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNormalizeInt(t *testing.T) {
	got, ok := NormalizeInt("1,700")
	assert.True(t, ok)
	assert.Equal(t, 1700, got)

	got, ok = NormalizeInt("1699.6")
	assert.True(t, ok)
	assert.Equal(t, 1700, got)

	_, ok = NormalizeInt("unknown")
	assert.False(t, ok)
}

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2022-06-15", 2022, true},
		{"2022", 2022, true},
		{"  2019 ", 2019, true},
		{"99", 0, false},
		{"TBD?", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := NormalizeYear(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
