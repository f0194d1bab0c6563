package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecordsBareArray(t *testing.T) {
	body := `[
		{"project_name": "Lone Star Fab", "capex": 17000000000, "jobs": 3000, "active": true},
		{"project_name": "Gulf Plant", "capex": 80000000.5, "jobs": null}
	]`

	rows, err := DecodeRecords(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Lone Star Fab", rows[0].Get("project_name"))
	// Large and fractional numbers stringify without exponent notation.
	assert.Equal(t, "17000000000", rows[0].Get("capex"))
	assert.Equal(t, "80000000.5", rows[1].Get("capex"))
	assert.Equal(t, "true", rows[0].Get("active"))
	// JSON null reads as missing.
	assert.Equal(t, "", rows[1].Get("jobs"))
}

func TestDecodeRecordsResultsWrapper(t *testing.T) {
	body := `{"results": [{"latitude": 30.2672, "start_year": "2024"}]}`

	rows, err := DecodeRecords(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "30.2672", rows[0].Get("latitude"))
	assert.Equal(t, "2024", rows[0].Get("start_year"))
}

func TestDecodeRecordsNoResults(t *testing.T) {
	// An object without a results array is an empty source, not an error.
	rows, err := DecodeRecords(strings.NewReader(`{"count": 3}`))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeRecordsInvalid(t *testing.T) {
	_, err := DecodeRecords(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestStringifyNested(t *testing.T) {
	got := stringify(map[string]any{"a": float64(1)})
	assert.Equal(t, `{"a":1}`, got)
}
