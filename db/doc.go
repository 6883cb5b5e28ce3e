// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - allocations: Confirmed room allocations, one row per badge
  - rooms: Hostel room reference data (capacity, display password)

allocations is keyed by mi_no, the unique badge identifier, so the save
endpoint's upsert cannot produce duplicate rows for a badge no matter
how many times a terminal retries the same batch. allocated_at is
stored as an ISO-8601 text column; both supported drivers round-trip it
unchanged.

rooms carries a position column preserving the order of the imported
reference list; dashboard reads return rows in that order. Identity is
the (hostel, room_no) pair, enforced by a unique constraint.

# Indexes

Performance indexes on:

  - allocations.(hostel, room_no)
  - rooms.hostel
*/
package db
