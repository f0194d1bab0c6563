// Package ingest turns heterogeneous economic-development source rows into
// typed catalyst candidates and reconciles them into the store.
package ingest

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeFloat converts a loosely formatted numeric field to a float.
// Currency symbols and thousands separators are stripped. Empty or
// unparsable input reports ok=false; bad fields are missing data, never
// an error.
func NormalizeFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormalizeInt converts a loosely formatted numeric field to an integer,
// rounding to nearest.
func NormalizeInt(s string) (int, bool) {
	f, ok := NormalizeFloat(s)
	if !ok {
		return 0, false
	}
	return int(math.Round(f)), true
}

// NormalizeYear extracts a 4-digit year from a date-like string by taking
// its leading four characters. Shorter or non-numeric input reports
// ok=false.
func NormalizeYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}
