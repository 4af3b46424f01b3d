// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package query answers natural-language questions about a loaded dataset.
// An engine starts in live mode, forwarding questions to an LLM provider,
// and drops permanently to keyword dispatch the first time the provider
// fails. The fallback path always produces a result.
package query

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/teradata-labs/glance/pkg/dataset"
	"github.com/teradata-labs/glance/pkg/nlq"
)

// Mode reports which answering path the engine is on.
type Mode string

const (
	// ModeLive forwards questions to the configured LLM provider.
	ModeLive Mode = "live"
	// ModeFallback answers with keyword dispatch only. The transition
	// from live is one-way for the lifetime of the engine.
	ModeFallback Mode = "fallback"
)

// Engine holds one dataset and answers questions about it. It is not safe
// for concurrent use; callers serialize access.
type Engine struct {
	logger *zap.Logger
	svc    *nlq.Service
	mode   Mode
	ds     *dataset.Dataset
}

// New creates an engine. A missing credential is a configuration error;
// any other service initialization failure degrades the engine to
// fallback mode instead of failing construction.
func New(cfg nlq.Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	e := &Engine{logger: logger, mode: ModeLive}
	svc, err := nlq.New(cfg)
	if err != nil {
		logger.Warn("query service unavailable, starting in fallback mode",
			zap.Error(err))
		e.mode = ModeFallback
		return e, nil
	}
	e.svc = svc
	return e, nil
}

// NewWithService creates an engine around an existing service. Used by
// tests to inject mock providers.
func NewWithService(svc *nlq.Service, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, svc: svc, mode: ModeLive}
}

// Mode reports the current answering mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Dataset returns the loaded dataset, or nil before the first Load.
func (e *Engine) Dataset() *dataset.Dataset {
	return e.ds
}

// Load parses a spreadsheet and replaces the held dataset. A parse failure
// leaves the previous dataset in place. In live mode the new dataset is
// bound to the query service; a bind failure drops the engine to fallback
// rather than failing the load.
func (e *Engine) Load(name string, r io.Reader) error {
	ds, err := dataset.Load(r)
	if err != nil {
		return &LoadError{Err: err}
	}
	ds.Name = name
	e.ds = ds

	e.logger.Info("dataset loaded",
		zap.String("name", name),
		zap.Int("rows", ds.RowCount()),
		zap.Int("columns", len(ds.Columns)))

	if e.mode == ModeLive {
		if err := e.svc.Bind(ds); err != nil {
			e.logger.Warn("bind failed, switching to fallback mode",
				zap.Error(err))
			e.mode = ModeFallback
		}
	}
	return nil
}

// Query answers a question about the loaded dataset. In live mode a
// provider failure permanently drops the engine to fallback and the same
// question is answered there, so the caller still gets a result.
func (e *Engine) Query(ctx context.Context, question string) (*Result, error) {
	if e.ds == nil {
		return nil, ErrNoData
	}

	if e.mode == ModeLive {
		ans, err := e.svc.Ask(ctx, question)
		if err == nil {
			return resultFromAnswer(ans), nil
		}
		e.logger.Warn("provider failed, switching to fallback mode",
			zap.Error(err))
		e.mode = ModeFallback
	}

	return answerFallback(e.ds, question), nil
}

// Summary describes the loaded dataset. With no dataset loaded it reports
// all-zero counts rather than an error.
func (e *Engine) Summary() dataset.Summary {
	if e.ds == nil {
		return dataset.Summary{ColumnTypes: map[dataset.ColumnType]int{}}
	}
	return e.ds.Summarize()
}
