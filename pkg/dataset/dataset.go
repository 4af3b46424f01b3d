// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package dataset holds the in-memory tabular representation of an uploaded
// spreadsheet, plus the aggregate operations the query engine runs against it.
package dataset

import (
	"time"
)

// ColumnType classifies a column's inferred dtype.
type ColumnType string

const (
	TypeNumeric  ColumnType = "numeric"
	TypeText     ColumnType = "text"
	TypeDatetime ColumnType = "datetime"
)

// Dataset is an ordered, typed table loaded from a spreadsheet.
// Cell values are float64 (numeric), string (text), time.Time (datetime),
// or nil for missing cells. Column names and types are stable after load;
// chart construction reads the table but never mutates it.
type Dataset struct {
	Name    string                   `json:"name"`
	Columns []string                 `json:"columns"`
	Types   map[string]ColumnType    `json:"types"`
	Rows    []map[string]interface{} `json:"rows"`
}

// Series is a named one-dimensional result, e.g. per-column means or the
// distinct values of a single column. Index carries labels when the series
// is keyed (one entry per numeric column for aggregates); it is empty for
// plain value lists such as distinct values.
type Series struct {
	Name   string        `json:"name"`
	Index  []string      `json:"index,omitempty"`
	Values []interface{} `json:"values"`
}

// Table is a rectangular result with ordered columns, produced by
// head/describe/correlation queries.
type Table struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

// Summary describes the shape of the loaded dataset.
type Summary struct {
	Rows           int                `json:"rows"`
	Columns        int                `json:"columns"`
	NumericColumns int                `json:"numeric_columns"`
	MissingValues  int                `json:"missing_values"`
	ColumnTypes    map[ColumnType]int `json:"column_types"`
}

// RowCount returns the number of data rows.
func (ds *Dataset) RowCount() int {
	return len(ds.Rows)
}

// Empty reports whether the dataset has no rows or no columns.
func (ds *Dataset) Empty() bool {
	return ds == nil || len(ds.Rows) == 0 || len(ds.Columns) == 0
}

// NumericColumns returns the names of numeric columns in column order.
func (ds *Dataset) NumericColumns() []string {
	return ds.columnsOfType(TypeNumeric)
}

// CategoricalColumns returns the names of text columns in column order.
// Datetime columns are excluded; they are neither numeric nor categorical
// for chart encoding purposes.
func (ds *Dataset) CategoricalColumns() []string {
	return ds.columnsOfType(TypeText)
}

func (ds *Dataset) columnsOfType(t ColumnType) []string {
	cols := make([]string, 0, len(ds.Columns))
	for _, c := range ds.Columns {
		if ds.Types[c] == t {
			cols = append(cols, c)
		}
	}
	return cols
}

// Summarize computes the dataset summary. It never fails; a nil dataset
// yields a zeroed summary with an empty type map.
func (ds *Dataset) Summarize() Summary {
	s := Summary{ColumnTypes: map[ColumnType]int{}}
	if ds == nil {
		return s
	}

	s.Rows = len(ds.Rows)
	s.Columns = len(ds.Columns)
	for _, c := range ds.Columns {
		t := ds.Types[c]
		s.ColumnTypes[t]++
		if t == TypeNumeric {
			s.NumericColumns++
		}
	}
	for _, row := range ds.Rows {
		for _, c := range ds.Columns {
			if v, ok := row[c]; !ok || v == nil {
				s.MissingValues++
			}
		}
	}
	return s
}

// NumericValues returns the non-missing float64 values of a column in row
// order. Missing cells are dropped, not zero-filled.
func (ds *Dataset) NumericValues(col string) []float64 {
	vals := make([]float64, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		if f, ok := row[col].(float64); ok {
			vals = append(vals, f)
		}
	}
	return vals
}

// Labels renders a column as per-row display strings, one per dataset row.
// Missing cells render as the empty string.
func (ds *Dataset) Labels(col string) []string {
	labels := make([]string, len(ds.Rows))
	for i, row := range ds.Rows {
		labels[i] = cellString(row[col])
	}
	return labels
}

// cellString renders a cell for categorical/label use.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return formatNumber(v)
	}
}
