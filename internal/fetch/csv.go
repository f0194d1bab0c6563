package fetch

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Row is one tabular record keyed by header name. Missing columns read
// as the empty string.
type Row map[string]string

// Get returns the value for a header name, matched case-insensitively.
func (r Row) Get(field string) string {
	if v, ok := r[field]; ok {
		return v
	}
	lower := strings.ToLower(field)
	for k, v := range r {
		if strings.ToLower(k) == lower {
			return v
		}
	}
	return ""
}

// DecodeCSV reads a header-first CSV payload into rows. When encoding is
// "latin1" the payload is transcoded from ISO 8859-1 first; state portals
// still serve files in it. Malformed data rows are skipped rather than
// failing the whole source.
func DecodeCSV(r io.Reader, encoding string) ([]Row, error) {
	if strings.EqualFold(encoding, "latin1") {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
