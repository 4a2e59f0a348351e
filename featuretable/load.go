package featuretable

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/bloomgroup/engine/normalize"
)

// LoadCSV reads a header row plus one data row per respondent and
// normalizes each into a FeatureRecord via normalizer. Every cell is a raw
// string; normalize.Normalizer already treats strings as the legacy
// multi-select and numeric-parse path (comma-split fallback),
// so no CSV-specific type coercion is needed here.
func LoadCSV(r io.Reader, normalizer *normalize.Normalizer) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return Table{}, nil
		}
		return Table{}, err
	}

	var table Table
	rowIndex := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, err
		}

		raw := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(row) && row[i] != "" {
				raw[col] = row[i]
			}
		}

		rec, err := normalizer.Normalize(rowIndex, raw)
		if err != nil {
			table.Errors = append(table.Errors, DataError{RowIndex: rowIndex, Err: err})
		} else {
			table.Records = append(table.Records, rec)
		}
		rowIndex++
	}

	return table, nil
}

// LoadJSONRows decodes a JSON array of response objects and normalizes each
// into a FeatureRecord. Rows that fail normalization are recorded in
// Table.Errors and excluded from Table.Records, per "Records
// that fail normalization are excluded from the run's FeaturesTable."
func LoadJSONRows(r io.Reader, normalizer *normalize.Normalizer) (Table, error) {
	var rows []map[string]any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return Table{}, err
	}

	var table Table
	for rowIndex, raw := range rows {
		rec, err := normalizer.Normalize(rowIndex, raw)
		if err != nil {
			table.Errors = append(table.Errors, DataError{RowIndex: rowIndex, Err: err})
			continue
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}
