// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package nlq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/teradata-labs/glance/pkg/dataset"
	"github.com/teradata-labs/glance/pkg/nlq/anthropic"
	"github.com/teradata-labs/glance/pkg/nlq/openai"
)

// AnswerType discriminates the typed forms a provider reply can take.
type AnswerType string

const (
	AnswerScalar AnswerType = "scalar"
	AnswerTable  AnswerType = "table"
	AnswerText   AnswerType = "text"
)

// Answer is the typed result of one question.
type Answer struct {
	Type   AnswerType     `json:"type"`
	Scalar float64        `json:"scalar,omitempty"`
	Table  *dataset.Table `json:"table,omitempty"`
	Text   string         `json:"text,omitempty"`
}

// Config holds configuration for the query service.
type Config struct {
	Provider   string // "anthropic" (default) or "openai"
	APIKey     string
	Model      string
	Endpoint   string
	Timeout    time.Duration
	MaxTokens  int
	SampleRows int // rows included in the bound schema prompt (default 5)
}

// Service forwards natural-language questions about a bound dataset to an
// LLM provider and converts replies into typed answers.
type Service struct {
	provider   Provider
	sampleRows int
	system     string
	bound      bool
}

// New creates a query service for the configured provider. The credential
// is required; an unsupported provider name is an initialization failure.
func New(cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.SampleRows <= 0 {
		cfg.SampleRows = 5
	}

	var provider Provider
	switch cfg.Provider {
	case "", "anthropic":
		provider = anthropic.NewClient(anthropic.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			Endpoint:  cfg.Endpoint,
			Timeout:   cfg.Timeout,
			MaxTokens: cfg.MaxTokens,
		})
	case "openai":
		provider = openai.NewClient(openai.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			Endpoint:  cfg.Endpoint,
			Timeout:   cfg.Timeout,
			MaxTokens: cfg.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: anthropic, openai)", cfg.Provider)
	}

	return &Service{provider: provider, sampleRows: cfg.SampleRows}, nil
}

// NewWithProvider creates a service around an existing provider. Used by
// tests to inject mock providers.
func NewWithProvider(p Provider) *Service {
	return &Service{provider: p, sampleRows: 5}
}

// Provider returns the underlying provider.
func (s *Service) Provider() Provider {
	return s.provider
}

// Bind attaches a dataset to the service by composing the schema-aware
// system prompt sent with every question. Must be called again whenever a
// new dataset replaces the old one.
func (s *Service) Bind(ds *dataset.Dataset) error {
	if ds == nil {
		return fmt.Errorf("nlq: cannot bind nil dataset")
	}

	sample := ds.Head(s.sampleRows)
	sampleJSON, err := json.Marshal(sample.Rows)
	if err != nil {
		return fmt.Errorf("nlq: failed to marshal sample rows: %w", err)
	}

	var schema strings.Builder
	for i, col := range ds.Columns {
		if i > 0 {
			schema.WriteString(", ")
		}
		fmt.Fprintf(&schema, "%s (%s)", col, ds.Types[col])
	}

	s.system = fmt.Sprintf(systemPromptTemplate,
		ds.Name, ds.RowCount(), schema.String(), string(sampleJSON))
	s.bound = true
	return nil
}

// Ask forwards a question verbatim and returns the typed answer. A reply
// that is not the expected strict JSON degrades to a text answer rather
// than failing; only transport and API errors propagate.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	if !s.bound {
		return nil, ErrNotBound
	}

	reply, err := s.provider.Ask(ctx, s.system, question)
	if err != nil {
		return nil, err
	}
	return parseAnswer(reply), nil
}

// systemPromptTemplate instructs the model to answer with strict JSON so
// replies can be mapped onto the QueryResult union.
const systemPromptTemplate = `You are a data analysis assistant answering questions about one table.

Table %q has %d rows. Columns: %s.

Sample rows as JSON: %s

Answer the user's question about this table. Reply with a single JSON object and nothing else, in one of these shapes:
  {"type":"scalar","scalar":<number>}
  {"type":"table","table":{"columns":[...],"rows":[{...}]}}
  {"type":"text","text":"<answer>"}`

// parseAnswer maps a raw provider reply onto an Answer. Code fences are
// stripped first since models wrap JSON in them despite instructions.
func parseAnswer(reply string) *Answer {
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var ans Answer
	if err := json.Unmarshal([]byte(trimmed), &ans); err == nil {
		switch ans.Type {
		case AnswerScalar:
			return &ans
		case AnswerTable:
			if ans.Table != nil {
				return &ans
			}
		case AnswerText:
			if ans.Text != "" {
				return &ans
			}
		}
	}

	// Not the expected shape; surface the reply as free text.
	return &Answer{Type: AnswerText, Text: reply}
}
