package fetch

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
)

// DecodeRecords reads a JSON payload of structured records: either a bare
// array of objects or an object with a "results" array, the two shapes
// state APIs serve. Field values are stringified so the normalizers see
// the same input regardless of source format.
func DecodeRecords(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "json: read payload")
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		var wrapper struct {
			Results []map[string]any `json:"results"`
		}
		if werr := json.Unmarshal(data, &wrapper); werr != nil {
			return nil, eris.Wrap(err, "json: decode records")
		}
		records = wrapper.Results
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(rec))
		for k, v := range rec {
			row[k] = stringify(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// stringify renders a decoded JSON value the way it appeared on the wire,
// so numeric normalization treats 2022 and "2022" alike.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
