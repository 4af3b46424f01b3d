// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package query

import (
	"github.com/teradata-labs/glance/pkg/dataset"
	"github.com/teradata-labs/glance/pkg/nlq"
)

// Kind discriminates the forms a query result can take.
type Kind string

const (
	KindScalar Kind = "scalar"
	KindCount  Kind = "count"
	KindSeries Kind = "series"
	KindTable  Kind = "table"
	KindText   Kind = "text"
)

// Result is the discriminated union produced by Query. Exactly one payload
// field matching Kind is populated. Results are produced fresh per query
// and never persisted.
type Result struct {
	Kind   Kind            `json:"kind"`
	Scalar float64         `json:"scalar,omitempty"`
	Count  int             `json:"count,omitempty"`
	Series *dataset.Series `json:"series,omitempty"`
	Table  *dataset.Table  `json:"table,omitempty"`
	Text   string          `json:"text,omitempty"`
}

func seriesResult(s *dataset.Series) *Result {
	return &Result{Kind: KindSeries, Series: s}
}

func tableResult(t *dataset.Table) *Result {
	return &Result{Kind: KindTable, Table: t}
}

// resultFromAnswer maps a live-service answer onto the result union.
func resultFromAnswer(ans *nlq.Answer) *Result {
	switch ans.Type {
	case nlq.AnswerScalar:
		return &Result{Kind: KindScalar, Scalar: ans.Scalar}
	case nlq.AnswerTable:
		return &Result{Kind: KindTable, Table: ans.Table}
	default:
		return &Result{Kind: KindText, Text: ans.Text}
	}
}
