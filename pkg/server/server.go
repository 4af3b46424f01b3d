// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package server exposes the dashboard over HTTP: spreadsheet upload,
// natural-language queries, chart construction, and tabular export. Each
// upload creates a session holding one query engine and its dataset;
// requests within a session are serialized by the session lock.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teradata-labs/glance/pkg/nlq"
	"github.com/teradata-labs/glance/pkg/visualization"
)

// Config holds server configuration.
type Config struct {
	Addr  string
	NLQ   nlq.Config
	CORS  CORSConfig
	Style *visualization.StyleConfig
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg        Config
	logger     *zap.Logger
	builder    *visualization.Builder
	httpServer *http.Server

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New creates a server. The NLQ credential is validated per upload, not
// here, so a server can start before any credential exists.
func New(cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		builder:  visualization.NewBuilder(cfg.Style, logger.Named("charts")),
		sessions: make(map[string]*Session),
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Handler builds the route table wrapped in the CORS middleware. Exposed
// so tests can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/datasets", s.handleUpload)
	mux.HandleFunc("/v1/query", s.withSession(s.handleQuery))
	mux.HandleFunc("/v1/summary", s.withSession(s.handleSummary))
	mux.HandleFunc("/v1/columns", s.withSession(s.handleColumns))
	mux.HandleFunc("/v1/charts", s.withSession(s.handleChart))
	mux.HandleFunc("/v1/export", s.withSession(s.handleExport))

	var handler http.Handler = mux
	if s.cfg.CORS.Enabled {
		handler = s.corsMiddleware(mux)
	}
	return handler
}

// Start runs the server until it fails or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer.Handler = s.Handler()

	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) session(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) addSession(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}
