// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package dataset

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order when inferring datetime columns.
// excelize returns formatted cell text, so these cover the formats the
// library emits for common date styles.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01-02-06",
	"Jan 2, 2006",
}

// Load parses spreadsheet bytes (XLS/XLSX) into a Dataset. The first sheet
// is used; its first row supplies column names. Numeric and datetime dtypes
// are inferred per column, empty cells are recorded as missing.
func Load(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}

	ds := &Dataset{
		Name:  sheets[0],
		Types: map[string]ColumnType{},
	}
	if len(rows) == 0 {
		return ds, nil
	}

	ds.Columns = headerNames(rows[0])
	raw := rows[1:]

	// Infer a dtype per column from the raw cell text, then materialize
	// typed values. A column is numeric or datetime only if every
	// non-empty cell parses as such.
	for ci, col := range ds.Columns {
		ds.Types[col] = inferColumnType(raw, ci)
	}

	for _, rawRow := range raw {
		row := make(map[string]interface{}, len(ds.Columns))
		for ci, col := range ds.Columns {
			var cell string
			if ci < len(rawRow) {
				cell = rawRow[ci]
			}
			row[col] = convertCell(cell, ds.Types[col])
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// LoadBytes parses an in-memory spreadsheet file.
func LoadBytes(data []byte) (*Dataset, error) {
	return Load(bytes.NewReader(data))
}

// headerNames cleans the header row: blank headers get positional names and
// duplicates get a numeric suffix so column names stay unique.
func headerNames(header []string) []string {
	names := make([]string, 0, len(header))
	seen := make(map[string]int)
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n)
		} else {
			seen[h] = 1
		}
		names = append(names, h)
	}
	return names
}

func inferColumnType(raw [][]string, ci int) ColumnType {
	sawValue := false
	numeric := true
	datetime := true

	for _, row := range raw {
		if ci >= len(row) || row[ci] == "" {
			continue
		}
		sawValue = true
		cell := row[ci]
		if numeric {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric = false
			}
		}
		if datetime {
			if _, ok := parseDate(cell); !ok {
				datetime = false
			}
		}
		if !numeric && !datetime {
			return TypeText
		}
	}

	switch {
	case !sawValue:
		return TypeText
	case numeric:
		return TypeNumeric
	case datetime:
		return TypeDatetime
	default:
		return TypeText
	}
}

func convertCell(cell string, t ColumnType) interface{} {
	if cell == "" {
		return nil
	}
	switch t {
	case TypeNumeric:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil
		}
		return f
	case TypeDatetime:
		if ts, ok := parseDate(cell); ok {
			return ts
		}
		return nil
	default:
		return cell
	}
}

func parseDate(cell string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
