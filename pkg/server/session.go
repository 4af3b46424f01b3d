// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/teradata-labs/glance/pkg/dataset"
	"github.com/teradata-labs/glance/pkg/query"
)

// headerSession carries the session identifier on every request after the
// initial upload.
const headerSession = "X-Glance-Session"

// Session is the per-upload mutable state: one engine with its dataset and
// the last tabular result, kept for export. The engine is not safe for
// concurrent use, so every request within a session takes the lock.
type Session struct {
	ID     string
	Engine *query.Engine

	mu        sync.Mutex
	lastTable *dataset.Table
}

func newSession(engine *query.Engine) *Session {
	return &Session{ID: uuid.NewString(), Engine: engine}
}

// RememberTable records a tabular result for later export.
func (s *Session) RememberTable(t *dataset.Table) {
	s.lastTable = t
}

// LastTable returns the most recent tabular result, or nil.
func (s *Session) LastTable() *dataset.Table {
	return s.lastTable
}
