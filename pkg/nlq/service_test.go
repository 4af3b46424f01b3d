// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package nlq

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/teradata-labs/glance/pkg/dataset"
)

type fakeProvider struct {
	reply      string
	err        error
	lastSystem string
	lastAsked  string
}

func (p *fakeProvider) Ask(_ context.Context, system, question string) (string, error) {
	p.lastSystem = system
	p.lastAsked = question
	return p.reply, p.err
}

func (p *fakeProvider) Name() string  { return "fake" }
func (p *fakeProvider) Model() string { return "fake-1" }

func sampleDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Name:    "people.xlsx",
		Columns: []string{"name", "age"},
		Types: map[string]dataset.ColumnType{
			"name": dataset.TypeText,
			"age":  dataset.TypeNumeric,
		},
		Rows: []map[string]interface{}{
			{"name": "ada", "age": 36.0},
			{"name": "grace", "age": 45.0},
		},
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := New(Config{Provider: "cohere", APIKey: "k"}); err == nil {
		t.Fatal("expected an error for an unsupported provider")
	}
	if _, err := New(Config{Provider: "openai", APIKey: "k"}); err != nil {
		t.Fatalf("openai should be supported: %v", err)
	}
}

func TestAskRequiresBind(t *testing.T) {
	svc := NewWithProvider(&fakeProvider{})
	if _, err := svc.Ask(context.Background(), "anything"); !errors.Is(err, ErrNotBound) {
		t.Fatalf("expected ErrNotBound, got %v", err)
	}
}

func TestBindComposesSchemaPrompt(t *testing.T) {
	p := &fakeProvider{reply: `{"type":"text","text":"ok"}`}
	svc := NewWithProvider(p)

	if err := svc.Bind(sampleDataset()); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, err := svc.Ask(context.Background(), "who is oldest?"); err != nil {
		t.Fatalf("ask: %v", err)
	}

	for _, want := range []string{"people.xlsx", "name (text)", "age (numeric)", "ada"} {
		if !strings.Contains(p.lastSystem, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if p.lastAsked != "who is oldest?" {
		t.Errorf("question forwarded as %q", p.lastAsked)
	}
}

func TestBindNil(t *testing.T) {
	svc := NewWithProvider(&fakeProvider{})
	if err := svc.Bind(nil); err == nil {
		t.Fatal("expected an error binding a nil dataset")
	}
}

func TestAskParsesAnswers(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		check func(t *testing.T, ans *Answer)
	}{
		{
			name:  "scalar",
			reply: `{"type":"scalar","scalar":40.5}`,
			check: func(t *testing.T, ans *Answer) {
				if ans.Type != AnswerScalar || ans.Scalar != 40.5 {
					t.Fatalf("answer = %+v", ans)
				}
			},
		},
		{
			name:  "table",
			reply: `{"type":"table","table":{"columns":["name"],"rows":[{"name":"ada"}]}}`,
			check: func(t *testing.T, ans *Answer) {
				if ans.Type != AnswerTable || ans.Table == nil || len(ans.Table.Rows) != 1 {
					t.Fatalf("answer = %+v", ans)
				}
			},
		},
		{
			name:  "fenced json",
			reply: "```json\n{\"type\":\"scalar\",\"scalar\":2}\n```",
			check: func(t *testing.T, ans *Answer) {
				if ans.Type != AnswerScalar || ans.Scalar != 2 {
					t.Fatalf("fenced reply not unwrapped: %+v", ans)
				}
			},
		},
		{
			name:  "malformed degrades to text",
			reply: "the oldest person is grace",
			check: func(t *testing.T, ans *Answer) {
				if ans.Type != AnswerText || ans.Text != "the oldest person is grace" {
					t.Fatalf("answer = %+v", ans)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewWithProvider(&fakeProvider{reply: tt.reply})
			if err := svc.Bind(sampleDataset()); err != nil {
				t.Fatalf("bind: %v", err)
			}
			ans, err := svc.Ask(context.Background(), "q")
			if err != nil {
				t.Fatalf("ask: %v", err)
			}
			tt.check(t, ans)
		})
	}
}

func TestAskPropagatesProviderError(t *testing.T) {
	svc := NewWithProvider(&fakeProvider{err: errors.New("api: 500")})
	if err := svc.Bind(sampleDataset()); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, err := svc.Ask(context.Background(), "q"); err == nil {
		t.Fatal("expected the provider error to propagate")
	}
}
