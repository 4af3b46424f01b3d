// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/teradata-labs/glance/pkg/dataset"
	"github.com/teradata-labs/glance/pkg/query"
	"github.com/teradata-labs/glance/pkg/visualization"
)

// uploadResponse is returned from a successful dataset upload.
type uploadResponse struct {
	SessionID string          `json:"session_id"`
	Mode      query.Mode      `json:"mode"`
	Summary   dataset.Summary `json:"summary"`
	Columns   columnsResponse `json:"columns"`
}

type columnsResponse struct {
	All         []string `json:"all"`
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
}

type queryRequest struct {
	Question string `json:"question"`
}

type queryResponse struct {
	Mode   query.Mode    `json:"mode"`
	Result *query.Result `json:"result"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// withSession resolves the session header and serializes handler execution
// per session; the engine underneath is single-threaded.
func (s *Server) withSession(fn func(http.ResponseWriter, *http.Request, *Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerSession)
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing "+headerSession+" header")
			return
		}
		sess, ok := s.session(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown session")
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()
		fn(w, r, sess)
	}
}

// handleUpload parses a spreadsheet and opens a new session around it. The
// file arrives either as a multipart "file" field or as the raw request
// body with the name in the "name" query parameter.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name, reader, err := uploadContent(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine, err := query.New(s.cfg.NLQ, s.logger.Named("engine"))
	if err != nil {
		// Missing credential. Nothing the uploader can do about it.
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := engine.Load(name, reader); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := newSession(engine)
	s.addSession(sess)
	s.logger.Info("session opened",
		zap.String("session", sess.ID),
		zap.String("file", name),
		zap.String("mode", string(engine.Mode())))

	writeJSON(w, http.StatusCreated, uploadResponse{
		SessionID: sess.ID,
		Mode:      engine.Mode(),
		Summary:   engine.Summary(),
		Columns:   columnsOf(engine.Dataset()),
	})
}

func uploadContent(r *http.Request) (string, io.Reader, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, errors.New("multipart upload requires a \"file\" field")
		}
		return header.Filename, file, nil
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload.xlsx"
	}
	return name, r.Body, nil
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request, sess *Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := sess.Engine.Query(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, query.ErrNoData) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if res.Kind == query.KindTable {
		sess.RememberTable(res.Table)
	}
	writeJSON(w, http.StatusOK, queryResponse{Mode: sess.Engine.Mode(), Result: res})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, sess *Session) {
	writeJSON(w, http.StatusOK, sess.Engine.Summary())
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request, sess *Session) {
	writeJSON(w, http.StatusOK, columnsOf(sess.Engine.Dataset()))
}

// handleChart builds a figure from the posted spec. Absence of a figure is
// the only failure signal the builder emits, surfaced as 422 here.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request, sess *Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var spec visualization.ChartSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fig := s.builder.Create(sess.Engine.Dataset(), spec)
	if fig == nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, sess *Session) {
	tbl := sess.LastTable()
	if tbl == nil {
		writeError(w, http.StatusNotFound, "no tabular result to export")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="results.xlsx"`)
	if err := dataset.ExportXLSX(tbl, "Results", w); err != nil {
		s.logger.Error("export failed", zap.Error(err))
	}
}

func columnsOf(ds *dataset.Dataset) columnsResponse {
	if ds == nil {
		return columnsResponse{}
	}
	return columnsResponse{
		All:         ds.Columns,
		Numeric:     ds.NumericColumns(),
		Categorical: ds.CategoricalColumns(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
