// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package query

import (
	"strconv"
	"strings"

	"github.com/teradata-labs/glance/pkg/dataset"
)

// defaultHeadRows is how many rows a question that matches no trigger gets.
const defaultHeadRows = 5

// trigger pairs a keyword predicate with a handler. Triggers are evaluated
// in declaration order and the first match wins, so "average of top 10"
// resolves to per-column means, not a head.
type trigger struct {
	match  func(ds *dataset.Dataset, q string) bool
	handle func(ds *dataset.Dataset, q string) *Result
}

func containsAny(words ...string) func(*dataset.Dataset, string) bool {
	return func(_ *dataset.Dataset, q string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}
}

var triggers = []trigger{
	{containsAny("average", "mean"), func(ds *dataset.Dataset, _ string) *Result {
		return seriesResult(ds.Means())
	}},
	{containsAny("median"), func(ds *dataset.Dataset, _ string) *Result {
		return seriesResult(ds.Medians())
	}},
	{containsAny("sum"), func(ds *dataset.Dataset, _ string) *Result {
		return seriesResult(ds.Sums())
	}},
	{containsAny("count"), func(ds *dataset.Dataset, _ string) *Result {
		return &Result{Kind: KindCount, Count: ds.RowCount()}
	}},
	{containsAny("describe"), func(ds *dataset.Dataset, _ string) *Result {
		return tableResult(ds.Describe())
	}},
	{matchUnique, func(ds *dataset.Dataset, q string) *Result {
		col, _ := uniqueColumn(ds, q)
		return seriesResult(ds.Unique(col))
	}},
	{containsAny("correlation", "corr"), func(ds *dataset.Dataset, _ string) *Result {
		return tableResult(ds.Correlation())
	}},
	{containsAny("top", "first"), func(ds *dataset.Dataset, q string) *Result {
		return tableResult(ds.Head(requestedRows(q)))
	}},
}

// answerFallback resolves a question with keyword dispatch. It always
// produces a result; anything that matches no trigger gets a head preview.
func answerFallback(ds *dataset.Dataset, question string) *Result {
	q := strings.ToLower(question)
	for _, t := range triggers {
		if t.match(ds, q) {
			return t.handle(ds, q)
		}
	}
	return tableResult(ds.Head(defaultHeadRows))
}

// matchUnique requires both the keyword and a resolvable column name, so a
// question like "any unique ideas?" falls through to the later triggers.
func matchUnique(ds *dataset.Dataset, q string) bool {
	if !strings.Contains(q, "unique") {
		return false
	}
	_, ok := uniqueColumn(ds, q)
	return ok
}

// uniqueColumn finds the first dataset column mentioned in the question,
// matched case-insensitively on the full column name.
func uniqueColumn(ds *dataset.Dataset, q string) (string, bool) {
	for _, col := range ds.Columns {
		if col != "" && strings.Contains(q, strings.ToLower(col)) {
			return col, true
		}
	}
	return "", false
}

// requestedRows scans for the first of 1..20 whose decimal form appears as
// a substring of the question. "top 25" resolves to 2 and a question with
// no digits gets the default preview size.
func requestedRows(q string) int {
	for i := 1; i <= 20; i++ {
		if strings.Contains(q, strconv.Itoa(i)) {
			return i
		}
	}
	return defaultHeadRows
}
