// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Roomsync API.

# Route Registration

NewRouter creates a configured handler with all endpoints and CORS
applied:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Allocation store:

	POST /api/allocation/save                      - Batch upsert (idempotent by mi_no)
	GET  /api/allocation/list                      - All confirmed allocations
	GET  /api/allocation/by-room/{hostel}/{roomNo} - Allocations for one room
	GET  /api/allocation/stats                     - Totals and per-room counts

Room reference data:

	POST /api/dashboard/upload - Replace the room list
	GET  /api/dashboard/data   - Query rooms (?hostel=<name|all>)

# Handler Initialization

The router creates handler instances with dependency injection:

	allocationHandler := handlers.NewAllocationHandler(db, cfg)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
