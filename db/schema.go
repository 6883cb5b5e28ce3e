// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Confirmed allocations, one row per badge. mi_no as primary key makes
-- batch saves idempotent: a retried batch upserts instead of duplicating.
CREATE TABLE IF NOT EXISTS allocations (
    mi_no TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    hostel TEXT NOT NULL,
    room_no TEXT NOT NULL,
    room_password TEXT,
    allocated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_allocations_room ON allocations(hostel, room_no);

-- Room reference data. position preserves imported list order.
CREATE TABLE IF NOT EXISTS rooms (
    id TEXT PRIMARY KEY,
    hostel TEXT NOT NULL,
    room_no TEXT NOT NULL,
    capacity INTEGER NOT NULL CHECK (capacity > 0),
    password TEXT,
    position INTEGER NOT NULL,
    UNIQUE (hostel, room_no)
);

CREATE INDEX IF NOT EXISTS idx_rooms_hostel ON rooms(hostel);
`
