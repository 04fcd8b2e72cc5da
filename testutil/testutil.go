// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/db"
	"github.com/danielhkuo/council-ballot/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every new connection would get its own empty in-memory database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration pointing at apiURL
func GetTestConfig(apiURL string) cliparse.Config {
	return cliparse.Config{
		Port:         3319,
		APIBaseURL:   apiURL,
		DatabaseURL:  "file::memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		SessionSalt:  "test-session-salt",
		SessionTTL:   time.Hour,
	}
}

// SeedCandidates writes candidates straight into the cache table
func SeedCandidates(t *testing.T, conn *sql.DB, electionID string, candidates []models.Candidate) {
	t.Helper()

	for _, c := range candidates {
		_, err := conn.Exec(`
			INSERT INTO candidate (election_id, id, name, activity, field_of_activity, fetched_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, electionID, c.ID, c.Name, c.Activity, c.FieldOfActivity, time.Now())
		if err != nil {
			t.Fatalf("Failed to seed candidate: %v", err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
