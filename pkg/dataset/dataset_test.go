// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package dataset

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestSummarize(t *testing.T) {
	ds := statsDataset()
	s := ds.Summarize()

	if s.Rows != 4 || s.Columns != 4 {
		t.Fatalf("shape = %dx%d, want 4x4", s.Rows, s.Columns)
	}
	if s.NumericColumns != 3 {
		t.Errorf("numeric columns = %d, want 3", s.NumericColumns)
	}
	if s.MissingValues != 4 {
		t.Errorf("missing values = %d, want 4", s.MissingValues)
	}
	if s.ColumnTypes[TypeText] != 1 || s.ColumnTypes[TypeNumeric] != 3 {
		t.Errorf("type counts = %v", s.ColumnTypes)
	}
}

func TestSummarizeNil(t *testing.T) {
	var ds *Dataset
	s := ds.Summarize()
	if s.Rows != 0 || s.Columns != 0 || s.ColumnTypes == nil {
		t.Fatalf("nil dataset summary = %+v", s)
	}
}

func TestColumnClassification(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"name", "joined", "score"},
		Types: map[string]ColumnType{
			"name":   TypeText,
			"joined": TypeDatetime,
			"score":  TypeNumeric,
		},
	}

	if got := ds.NumericColumns(); len(got) != 1 || got[0] != "score" {
		t.Errorf("numeric = %v", got)
	}
	// Datetime columns are neither numeric nor categorical.
	if got := ds.CategoricalColumns(); len(got) != 1 || got[0] != "name" {
		t.Errorf("categorical = %v", got)
	}
}

func TestLabelsAndNumericValues(t *testing.T) {
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ds := &Dataset{
		Columns: []string{"tag", "when", "v"},
		Types: map[string]ColumnType{
			"tag":  TypeText,
			"when": TypeDatetime,
			"v":    TypeNumeric,
		},
		Rows: []map[string]interface{}{
			{"tag": "a", "when": when, "v": 1.5},
			{"tag": nil, "when": nil, "v": nil},
		},
	}

	labels := ds.Labels("tag")
	if labels[0] != "a" || labels[1] != "" {
		t.Errorf("labels = %v", labels)
	}
	if got := ds.Labels("when")[0]; got != "2024-03-01 00:00:00" {
		t.Errorf("datetime label = %q", got)
	}

	vals := ds.NumericValues("v")
	if len(vals) != 1 || vals[0] != 1.5 {
		t.Errorf("numeric values = %v", vals)
	}
}

func TestEmpty(t *testing.T) {
	var nilDS *Dataset
	if !nilDS.Empty() {
		t.Error("nil dataset should be empty")
	}
	if !(&Dataset{Columns: []string{"a"}}).Empty() {
		t.Error("dataset with no rows should be empty")
	}
	if statsDataset().Empty() {
		t.Error("populated dataset should not be empty")
	}
}

func TestExportXLSXRoundTrip(t *testing.T) {
	tbl := statsDataset().Head(2)

	var buf bytes.Buffer
	if err := ExportXLSX(tbl, "Results", &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "group" {
		t.Errorf("header = %v", rows[0])
	}
}
