// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package dataset

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// sheetBytes builds an in-memory workbook from string cells.
func sheetBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestLoadTypesAndValues(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"city", "population", "founded"},
		{"austin", 974000, "1839-12-27"},
		{"boise", 235000, "1863-07-07"},
		{"reno", nil, "1868-05-09"},
	})

	ds, err := LoadBytes(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := ds.Columns; len(got) != 3 || got[0] != "city" {
		t.Fatalf("unexpected columns: %v", got)
	}
	if ds.Types["city"] != TypeText {
		t.Errorf("city type = %s, want text", ds.Types["city"])
	}
	if ds.Types["population"] != TypeNumeric {
		t.Errorf("population type = %s, want numeric", ds.Types["population"])
	}
	if ds.Types["founded"] != TypeDatetime {
		t.Errorf("founded type = %s, want datetime", ds.Types["founded"])
	}

	if v := ds.Rows[0]["population"]; v != 974000.0 {
		t.Errorf("population[0] = %v, want 974000", v)
	}
	if v := ds.Rows[2]["population"]; v != nil {
		t.Errorf("missing cell should be nil, got %v", v)
	}
	ts, ok := ds.Rows[0]["founded"].(time.Time)
	if !ok || ts.Year() != 1839 {
		t.Errorf("founded[0] = %v, want a time in 1839", ds.Rows[0]["founded"])
	}
}

func TestLoadHeaderCleanup(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"name", nil, "name", "score"},
		{"a", "x", "b", 1},
	})

	ds, err := LoadBytes(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []string{"name", "column_2", "name.1", "score"}
	if len(ds.Columns) != len(want) {
		t.Fatalf("columns = %v, want %v", ds.Columns, want)
	}
	for i := range want {
		if ds.Columns[i] != want[i] {
			t.Fatalf("columns = %v, want %v", ds.Columns, want)
		}
	}
}

func TestLoadMixedColumnIsText(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"v"},
		{"5"},
		{"2006-01-02"},
	})

	ds, err := LoadBytes(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Types["v"] != TypeText {
		t.Errorf("mixed numeric/date column = %s, want text", ds.Types["v"])
	}
}

func TestLoadGarbageFails(t *testing.T) {
	if _, err := LoadBytes([]byte("definitely not a workbook")); err == nil {
		t.Fatal("expected an error for unparseable bytes")
	}
}

func TestLoadEmptyColumnIsText(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"a", "b"},
		{1, nil},
		{2, nil},
	})

	ds, err := LoadBytes(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Types["b"] != TypeText {
		t.Errorf("all-empty column = %s, want text", ds.Types["b"])
	}
}
