// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/roomsync/cliparse"
	"github.com/danielhkuo/roomsync/handlers"
	"github.com/danielhkuo/roomsync/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	allocationHandler := handlers.NewAllocationHandler(db, cfg)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Allocation store
	mux.HandleFunc("POST /api/allocation/save", middleware.WithLogging(allocationHandler.Save))
	mux.HandleFunc("GET /api/allocation/list", middleware.WithLogging(allocationHandler.List))
	mux.HandleFunc("GET /api/allocation/by-room/{hostel}/{roomNo}", middleware.WithLogging(allocationHandler.ByRoom))
	mux.HandleFunc("GET /api/allocation/stats", middleware.WithLogging(allocationHandler.Stats))

	// Room reference data
	mux.HandleFunc("POST /api/dashboard/upload", middleware.WithLogging(dashboardHandler.Upload))
	mux.HandleFunc("GET /api/dashboard/data", middleware.WithLogging(dashboardHandler.Data))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("roomsync API v1"))
	})

	return middleware.CORS(mux)
}
