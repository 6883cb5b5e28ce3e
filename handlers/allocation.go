// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/roomsync/cliparse"
	"github.com/danielhkuo/roomsync/middleware"
	"github.com/danielhkuo/roomsync/models"
)

type AllocationHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	validate *validator.Validate
}

func NewAllocationHandler(db *sql.DB, cfg cliparse.Config) *AllocationHandler {
	return &AllocationHandler{db: db, cfg: cfg, validate: validator.New()}
}

// Save handles POST /api/allocation/save
//
// The whole batch is written in one transaction with upsert-by-mi_no,
// so retried batches are idempotent and a partial write is impossible.
func (h *AllocationHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.SaveAllocationsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Allocations) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid allocations data")
		return
	}

	// Reject the batch whole if any row is missing required fields;
	// the terminal never clears its ledger on a 4xx, so nothing is lost.
	for i, alloc := range req.Allocations {
		if err := h.validate.Struct(alloc); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("allocation %d is missing required fields", i))
			return
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save allocations to database")
		return
	}
	defer tx.Rollback()

	for _, alloc := range req.Allocations {
		allocatedAt := alloc.Timestamp
		if allocatedAt == "" {
			allocatedAt = time.Now().UTC().Format(time.RFC3339)
		}

		_, err = tx.Exec(`
			INSERT INTO allocations (mi_no, name, email, hostel, room_no, room_password, allocated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (mi_no) DO UPDATE SET
				name = EXCLUDED.name,
				email = EXCLUDED.email,
				hostel = EXCLUDED.hostel,
				room_no = EXCLUDED.room_no,
				room_password = EXCLUDED.room_password,
				allocated_at = EXCLUDED.allocated_at
		`, alloc.MiNo, alloc.Name, alloc.Email, alloc.Hostel, alloc.RoomNo, alloc.RoomPassword, allocatedAt)

		if err != nil {
			slog.Error("failed to upsert allocation", "error", err, "mi_no", alloc.MiNo)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save allocations to database")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit allocation batch", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save allocations to database")
		return
	}

	slog.Info("allocation batch saved", "count", len(req.Allocations))

	middleware.JSONResponse(w, http.StatusOK, models.SaveAllocationsResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully saved %d allocations", len(req.Allocations)),
		Count:   len(req.Allocations),
	})
}

// List handles GET /api/allocation/list
func (h *AllocationHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT name, mi_no, email, hostel, room_no, room_password, allocated_at
		FROM allocations ORDER BY allocated_at DESC
	`)
	if err != nil {
		slog.Error("failed to query allocations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch allocations")
		return
	}
	defer rows.Close()

	allocations := []models.AllocationRecord{}
	for rows.Next() {
		var rec models.AllocationRecord
		var password sql.NullString
		if err := rows.Scan(&rec.Name, &rec.MiNo, &rec.Email, &rec.Hostel, &rec.RoomNo, &password, &rec.AllocatedAt); err != nil {
			slog.Error("failed to scan allocation", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch allocations")
			return
		}
		rec.RoomPassword = password.String
		allocations = append(allocations, rec)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListAllocationsResponse{
		Success:     true,
		Allocations: allocations,
		Count:       len(allocations),
	})
}

// ByRoom handles GET /api/allocation/by-room/{hostel}/{roomNo}
func (h *AllocationHandler) ByRoom(w http.ResponseWriter, r *http.Request) {
	hostel := r.PathValue("hostel")
	roomNo := r.PathValue("roomNo")
	if hostel == "" || roomNo == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "hostel and roomNo are required")
		return
	}

	rows, err := h.db.Query(`
		SELECT name, mi_no, email, hostel, room_no, room_password, allocated_at
		FROM allocations WHERE hostel = $1 AND room_no = $2
		ORDER BY allocated_at DESC
	`, hostel, roomNo)
	if err != nil {
		slog.Error("failed to query room allocations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch room allocations")
		return
	}
	defer rows.Close()

	allocations := []models.AllocationRecord{}
	for rows.Next() {
		var rec models.AllocationRecord
		var password sql.NullString
		if err := rows.Scan(&rec.Name, &rec.MiNo, &rec.Email, &rec.Hostel, &rec.RoomNo, &password, &rec.AllocatedAt); err != nil {
			slog.Error("failed to scan allocation", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch room allocations")
			return
		}
		rec.RoomPassword = password.String
		allocations = append(allocations, rec)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListAllocationsResponse{
		Success:     true,
		Allocations: allocations,
		Count:       len(allocations),
	})
}

// Stats handles GET /api/allocation/stats
func (h *AllocationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var total int
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM allocations`).Scan(&total); err != nil {
		slog.Error("failed to count allocations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	rows, err := h.db.Query(`
		SELECT hostel, room_no, COUNT(*) FROM allocations
		GROUP BY hostel, room_no ORDER BY hostel, room_no
	`)
	if err != nil {
		slog.Error("failed to query room stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	defer rows.Close()

	roomCounts := []models.RoomCount{}
	for rows.Next() {
		var rc models.RoomCount
		if err := rows.Scan(&rc.Hostel, &rc.RoomNo, &rc.Count); err != nil {
			slog.Error("failed to scan room stats", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch statistics")
			return
		}
		roomCounts = append(roomCounts, rc)
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		Success: true,
		Stats: models.Stats{
			TotalAllocations: total,
			RoomsUsed:        len(roomCounts),
			Rooms:            roomCounts,
		},
	})
}
