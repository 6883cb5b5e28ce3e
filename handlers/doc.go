// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Roomsync API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AllocationHandler: Confirmed allocation store (save, list, by-room, stats)
  - DashboardHandler: Room reference data (upload, query)

Handlers are created via constructor functions that accept *sql.DB and Config:

	allocationHandler := handlers.NewAllocationHandler(db, cfg)

# Allocation Flow

Terminals batch-save their pending ledgers and read back the confirmed
set:

	POST /api/allocation/save                    -> Save (idempotent upsert by mi_no)
	GET  /api/allocation/list                    -> List
	GET  /api/allocation/by-room/{hostel}/{roomNo} -> ByRoom
	GET  /api/allocation/stats                   -> Stats

Save is the reconciliation point: the whole batch goes into one
transaction, and each row upserts on mi_no, so a terminal that retries
after a lost response cannot create duplicates. When two terminals race
on the same badge the later batch wins (last write wins); the loser
discovers the overwrite on its next list fetch.

Request rows are checked with go-playground/validator before the
transaction starts; a batch with any invalid row is rejected whole.

# Room Reference Data

The dashboard endpoints hold the imported room list:

	POST /api/dashboard/upload -> Upload (replaces the full list)
	GET  /api/dashboard/data   -> Data (?hostel=<name|all>)

Upload validates the external column names ("hostel name", "available
room no.", "room capacity", "room password") against the first row and
rejects with the list of missing columns. Data returns rows in imported
order, with the same external key names on the wire.
*/
package handlers
