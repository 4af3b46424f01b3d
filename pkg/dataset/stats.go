// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Means returns the mean of each numeric column.
func (ds *Dataset) Means() *Series {
	return ds.aggregate("mean", mean)
}

// Medians returns the median of each numeric column.
func (ds *Dataset) Medians() *Series {
	return ds.aggregate("median", median)
}

// Sums returns the sum of each numeric column.
func (ds *Dataset) Sums() *Series {
	return ds.aggregate("sum", sum)
}

// aggregate applies fn per numeric column. Columns with no non-missing
// values are skipped rather than reported as NaN.
func (ds *Dataset) aggregate(name string, fn func([]float64) float64) *Series {
	s := &Series{Name: name}
	for _, col := range ds.NumericColumns() {
		vals := ds.NumericValues(col)
		if len(vals) == 0 {
			continue
		}
		s.Index = append(s.Index, col)
		s.Values = append(s.Values, fn(vals))
	}
	return s
}

// describeStats lists the descriptive statistics in presentation order.
var describeStats = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe returns descriptive statistics for every numeric column, one row
// per statistic, mirroring the usual count/mean/std/min/quartiles/max table.
func (ds *Dataset) Describe() *Table {
	numeric := ds.NumericColumns()
	tbl := &Table{Columns: append([]string{"statistic"}, numeric...)}

	for _, stat := range describeStats {
		row := map[string]interface{}{"statistic": stat}
		for _, col := range numeric {
			vals := ds.NumericValues(col)
			if len(vals) == 0 {
				row[col] = nil
				continue
			}
			switch stat {
			case "count":
				row[col] = float64(len(vals))
			case "mean":
				row[col] = mean(vals)
			case "std":
				row[col] = std(vals)
			case "min":
				row[col] = minOf(vals)
			case "25%":
				row[col] = quantile(vals, 0.25)
			case "50%":
				row[col] = quantile(vals, 0.50)
			case "75%":
				row[col] = quantile(vals, 0.75)
			case "max":
				row[col] = maxOf(vals)
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

// Correlation returns the pairwise Pearson correlation matrix of the numeric
// columns. The matrix is symmetric with a unit diagonal; pairs are computed
// over rows where both cells are present.
func (ds *Dataset) Correlation() *Table {
	numeric := ds.NumericColumns()
	tbl := &Table{Columns: append([]string{"column"}, numeric...)}

	for _, a := range numeric {
		row := map[string]interface{}{"column": a}
		for _, b := range numeric {
			if a == b {
				row[b] = 1.0
				continue
			}
			row[b] = ds.pearson(a, b)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

// CorrelationMatrix returns the correlation matrix in positional form:
// column labels plus a dense [i][j] value grid. Used by heatmap rendering.
func (ds *Dataset) CorrelationMatrix() ([]string, [][]float64) {
	numeric := ds.NumericColumns()
	matrix := make([][]float64, len(numeric))
	for i, a := range numeric {
		matrix[i] = make([]float64, len(numeric))
		for j, b := range numeric {
			if i == j {
				matrix[i][j] = 1.0
				continue
			}
			matrix[i][j] = ds.pearson(a, b)
		}
	}
	return numeric, matrix
}

func (ds *Dataset) pearson(a, b string) float64 {
	var xs, ys []float64
	for _, row := range ds.Rows {
		x, xok := row[a].(float64)
		y, yok := row[b].(float64)
		if xok && yok {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return 0
	}

	mx, my := mean(xs), mean(ys)
	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// Head returns the first n rows. n past the end is clamped.
func (ds *Dataset) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(ds.Rows) {
		n = len(ds.Rows)
	}
	tbl := &Table{Columns: append([]string(nil), ds.Columns...)}
	for _, row := range ds.Rows[:n] {
		copied := make(map[string]interface{}, len(row))
		for k, v := range row {
			copied[k] = v
		}
		tbl.Rows = append(tbl.Rows, copied)
	}
	return tbl
}

// Unique returns the distinct non-missing values of a column in first-seen
// order. Unknown columns yield an empty series.
func (ds *Dataset) Unique(col string) *Series {
	s := &Series{Name: col}
	seen := make(map[string]bool)
	for _, row := range ds.Rows {
		v, ok := row[col]
		if !ok || v == nil {
			continue
		}
		key := cellString(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		s.Values = append(s.Values, v)
	}
	return s
}

// GroupMean returns the mean of the value column grouped by the label
// column, in first-seen group order. Rows with a missing value cell are
// skipped; rows with a missing label group under the empty string.
func (ds *Dataset) GroupMean(by, value string) ([]string, []float64) {
	var order []string
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, row := range ds.Rows {
		v, ok := row[value].(float64)
		if !ok {
			continue
		}
		label := cellString(row[by])
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		sums[label] += v
		counts[label]++
	}

	means := make([]float64, len(order))
	for i, label := range order {
		means[i] = sums[label] / float64(counts[label])
	}
	return order, means
}

func mean(vals []float64) float64 {
	return sum(vals) / float64(len(vals))
}

func sum(vals []float64) float64 {
	var t float64
	for _, v := range vals {
		t += v
	}
	return t
}

func median(vals []float64) float64 {
	return quantile(vals, 0.5)
}

// std is the sample standard deviation (ddof=1). A single value yields 0.
func std(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

// quantile uses linear interpolation between closest ranks.
func quantile(vals []float64, q float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func formatNumber(v interface{}) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
