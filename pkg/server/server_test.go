// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/teradata-labs/glance/pkg/nlq"
	"github.com/teradata-labs/glance/pkg/nlq/anthropic"
	"github.com/teradata-labs/glance/pkg/query"
)

// workbookBytes builds a small in-memory spreadsheet.
func workbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"region", "amount", "qty"},
		{"east", 10, 1},
		{"west", 20, 2},
		{"east", 30, 3},
		{"north", 40, 4},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// mockAnthropic answers every question with the scripted reply text.
func mockAnthropic(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "upstream unavailable", status)
			return
		}
		resp := anthropic.MessagesResponse{
			Content: []anthropic.ContentBlock{{Type: "text", Text: reply}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestServer(t *testing.T, nlqCfg nlq.Config) *httptest.Server {
	t.Helper()
	srv := New(Config{NLQ: nlqCfg, CORS: DefaultCORSConfig()}, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func uploadDataset(t *testing.T, ts *httptest.Server) uploadResponse {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/datasets?name=sales.xlsx",
		"application/octet-stream", bytes.NewReader(workbookBytes(t)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sessionRequest(t *testing.T, method, url, session string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(headerSession, session)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nlq.Config{APIKey: "test-key"})
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadSummaryAndColumns(t *testing.T) {
	mock := mockAnthropic(t, `{"type":"text","text":"ok"}`, http.StatusOK)
	defer mock.Close()
	ts := newTestServer(t, nlq.Config{APIKey: "test-key", Endpoint: mock.URL})

	up := uploadDataset(t, ts)
	assert.NotEmpty(t, up.SessionID)
	assert.Equal(t, query.ModeLive, up.Mode)
	assert.Equal(t, 4, up.Summary.Rows)
	assert.Equal(t, 3, up.Summary.Columns)
	assert.Equal(t, []string{"amount", "qty"}, up.Columns.Numeric)
	assert.Equal(t, []string{"region"}, up.Columns.Categorical)

	resp := sessionRequest(t, http.MethodGet, ts.URL+"/v1/summary", up.SessionID, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = sessionRequest(t, http.MethodGet, ts.URL+"/v1/columns", up.SessionID, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cols columnsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cols))
	assert.Equal(t, []string{"region", "amount", "qty"}, cols.All)
}

func TestUploadUnparseableFile(t *testing.T) {
	ts := newTestServer(t, nlq.Config{APIKey: "test-key"})
	resp, err := http.Post(ts.URL+"/v1/datasets", "application/octet-stream",
		bytes.NewReader([]byte("not a spreadsheet")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadMissingCredential(t *testing.T) {
	ts := newTestServer(t, nlq.Config{})
	resp, err := http.Post(ts.URL+"/v1/datasets", "application/octet-stream",
		bytes.NewReader(workbookBytes(t)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestQueryLive(t *testing.T) {
	mock := mockAnthropic(t, `{"type":"scalar","scalar":25}`, http.StatusOK)
	defer mock.Close()
	ts := newTestServer(t, nlq.Config{APIKey: "test-key", Endpoint: mock.URL})
	up := uploadDataset(t, ts)

	body, _ := json.Marshal(queryRequest{Question: "what is the average amount?"})
	resp := sessionRequest(t, http.MethodPost, ts.URL+"/v1/query", up.SessionID, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out queryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, query.ModeLive, out.Mode)
	assert.Equal(t, query.KindScalar, out.Result.Kind)
	assert.Equal(t, 25.0, out.Result.Scalar)
}

func TestQueryFallsBackOnProviderFailure(t *testing.T) {
	mock := mockAnthropic(t, "", http.StatusInternalServerError)
	defer mock.Close()
	ts := newTestServer(t, nlq.Config{APIKey: "test-key", Endpoint: mock.URL})
	up := uploadDataset(t, ts)

	body, _ := json.Marshal(queryRequest{Question: "average amount"})
	resp := sessionRequest(t, http.MethodPost, ts.URL+"/v1/query", up.SessionID, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out queryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, query.ModeFallback, out.Mode)
	assert.Equal(t, query.KindSeries, out.Result.Kind)
}

func TestQuerySessionErrors(t *testing.T) {
	ts := newTestServer(t, nlq.Config{APIKey: "test-key"})

	body, _ := json.Marshal(queryRequest{Question: "count"})
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/query", bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = sessionRequest(t, http.MethodPost, ts.URL+"/v1/query", "no-such-session", body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChartEndpoint(t *testing.T) {
	mock := mockAnthropic(t, `{"type":"text","text":"ok"}`, http.StatusOK)
	defer mock.Close()
	ts := newTestServer(t, nlq.Config{APIKey: "test-key", Endpoint: mock.URL})
	up := uploadDataset(t, ts)

	spec := []byte(`{"type":"histogram","x_column":"amount"}`)
	resp := sessionRequest(t, http.MethodPost, ts.URL+"/v1/charts", up.SessionID, spec)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fig map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fig))
	assert.Contains(t, fig, "series")

	// Missing values column collapses to no figure.
	spec = []byte(`{"type":"pie","x_column":"region"}`)
	resp = sessionRequest(t, http.MethodPost, ts.URL+"/v1/charts", up.SessionID, spec)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestExportRoundTrip(t *testing.T) {
	mock := mockAnthropic(t, "", http.StatusInternalServerError)
	defer mock.Close()
	ts := newTestServer(t, nlq.Config{APIKey: "test-key", Endpoint: mock.URL})
	up := uploadDataset(t, ts)

	// No tabular result yet.
	resp := sessionRequest(t, http.MethodGet, ts.URL+"/v1/export", up.SessionID, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A head query produces a table the session remembers.
	body, _ := json.Marshal(queryRequest{Question: "top 3 rows"})
	resp = sessionRequest(t, http.MethodPost, ts.URL+"/v1/query", up.SessionID, body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = sessionRequest(t, http.MethodGet, ts.URL+"/v1/export", up.SessionID, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))

	exported, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer exported.Close()
	rows, err := exported.GetRows("Results")
	require.NoError(t, err)
	assert.Len(t, rows, 4) // header + 3 data rows
}

func TestCORSMiddleware(t *testing.T) {
	ts := newTestServer(t, nlq.Config{APIKey: "test-key"})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/v1/query", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, fmt.Sprintf("%d", 86400), resp.Header.Get("Access-Control-Max-Age"))
}
