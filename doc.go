// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Roomsync API server.

Roomsync is an event-operations tool for hostel room allocation: a
backend-of-record for confirmed allocations plus an operator terminal
(cmd/terminal) that scans badges, allocates rooms against live
capacity, and reconciles its pending ledger in idempotent batches.

# Starting the Server

The server requires a database URL via environment variable or CLI flag:

	DATABASE_URL=./roomsync.db go run main.go

Or with flags:

	go run main.go -p 3001 -d ./roomsync.db

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (allocations, dashboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types, error taxonomy
  - db: Schema creation
  - cliparse: Configuration parsing

The operator-side flow lives in its own packages, shared with the
terminal binary:

  - scan: badge payload parsing, hardware-scanner keystroke state
    machine, camera frame polling
  - ledger: durable local store of pending allocations
  - capacity: per-room occupancy over confirmed plus pending
  - allocate: allocation invariants (one room per badge, capacity)
  - syncer: batch upload with retry, report, and ledger clear
  - apiclient: typed client for the endpoints above
  - report: printable per-room allocation report

See package documentation for each component.
*/
package main
