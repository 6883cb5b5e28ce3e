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

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/roomsync/cliparse"
	dbschema "github.com/danielhkuo/roomsync/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection only: each new in-memory connection would see an
	// empty database.
	db.SetMaxOpenConns(1)

	if err := dbschema.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3001,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
	}
}

// CreateTestRoom inserts one room reference row and returns its ID
func CreateTestRoom(t *testing.T, db *sql.DB, hostel, roomNo string, capacity int, password string) string {
	t.Helper()

	id := uuid.NewString()
	var position int
	if err := db.QueryRow(`SELECT COUNT(*) FROM rooms`).Scan(&position); err != nil {
		t.Fatalf("Failed to count rooms: %v", err)
	}

	_, err := db.Exec(`
		INSERT INTO rooms (id, hostel, room_no, capacity, password, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, hostel, roomNo, capacity, password, position)
	if err != nil {
		t.Fatalf("Failed to create test room: %v", err)
	}

	return id
}

// CreateTestAllocation inserts one confirmed allocation row
func CreateTestAllocation(t *testing.T, db *sql.DB, miNo, name, hostel, roomNo string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO allocations (mi_no, name, email, hostel, room_no, room_password, allocated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, miNo, name, name+"@example.com", hostel, roomNo, "", time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test allocation: %v", err)
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
