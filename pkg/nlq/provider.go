// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package nlq turns natural-language questions about a bound dataset into
// typed answers by delegating to an LLM-backed query provider. The provider
// is treated as a black box: the service composes a schema-aware system
// prompt once per dataset and forwards each question verbatim.
package nlq

import (
	"context"
	"errors"
)

// Provider is a minimal single-turn LLM client. Implementations live in the
// anthropic and openai subpackages.
type Provider interface {
	// Ask sends one system+user turn and returns the raw text reply.
	Ask(ctx context.Context, system, question string) (string, error)

	// Name returns the provider name.
	Name() string

	// Model returns the model identifier.
	Model() string
}

// ErrMissingAPIKey is returned when a provider is configured without a
// credential.
var ErrMissingAPIKey = errors.New("nlq: API key is required")

// ErrNotBound is returned when a question is asked before a dataset has
// been bound to the service.
var ErrNotBound = errors.New("nlq: no dataset bound")
