// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the
Roomsync server and the operator terminal.

# Domain Types

  - Person: scanned badge identity (name, mi_no, email)
  - Room: reference data for one hostel room (hostel, room no, capacity, password)
  - Allocation: one person placed in one room, with a locally generated id
    and creation timestamp

A Person is never persisted on its own; it lives inside an Allocation or
transiently as the operator's "last scan". An Allocation has no explicit
"pending" field: pending means "present only in the terminal's local
ledger", confirmed means "present in the server's allocation list". The
split is purely a client-side reconciliation concern.

# Request Types

  - SaveAllocationsRequest: batch of allocations for POST /api/allocation/save
  - UploadRoomsRequest: parsed room-reference rows for POST /api/dashboard/upload

# Response Types

  - SaveAllocationsResponse: success flag and saved count
  - ListAllocationsResponse: success flag and confirmed allocations
  - DashboardDataResponse: success flag, room rows, record count
  - StatsResponse: allocation totals and per-room counts
  - ErrorResponse: error, message

# Wire Naming

The room-reference rows keep the external CSV column names ("hostel
name", "available room no.", "room capacity", "room password") on the
wire; RoomRow carries those keys and Room is the typed form. Confirmed
allocations use snake_case on the wire (mi_no, room_no, allocated_at)
while the save request uses camelCase (miNo, roomNo, timestamp) — both
inherited from the deployed format and mapped explicitly in apiclient.

# Errors

The operator-facing error taxonomy lives in errors.go:

  - ErrMissingInput: allocation attempted without a scan or a room
  - ScanFormatError: unparseable scan payload
  - AlreadyAllocatedError: miNo already placed (confirmed or pending)
  - RoomFullError: room at capacity
  - StorageError: local ledger persistence failed
  - SyncTimeoutError, SyncTransportError, SyncServerError: one sync
    attempt failed; all three are retryable

Match with errors.As / errors.Is; every type carries enough context to
render an actionable operator message.
*/
package models
