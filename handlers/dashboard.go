// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/roomsync/cliparse"
	"github.com/danielhkuo/roomsync/middleware"
	"github.com/danielhkuo/roomsync/models"
)

// Column names the imported reference list must carry. The password
// column is required even though values may repeat across rows;
// uniqueness is by hostel+room, not by password.
var requiredColumns = []string{"hostel name", "available room no.", "room capacity", "room password"}

type DashboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDashboardHandler(db *sql.DB, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{db: db, cfg: cfg}
}

// Upload handles POST /api/dashboard/upload
//
// Replaces the entire room reference list with the already-parsed rows
// in the request. Column validation happens against the first row's
// keys; a missing column rejects the whole upload.
func (h *DashboardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req models.UploadRoomsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Rows) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid CSV data format or empty file")
		return
	}

	// Key case and padding vary between CSV exports; normalize once so
	// validation and the value reads below agree on the same keys.
	rows := make([]map[string]string, len(req.Rows))
	for i, row := range req.Rows {
		rows[i] = normalizeRow(row)
	}

	if missing := missingColumns(rows[0]); len(missing) > 0 {
		middleware.JSONResponse(w, http.StatusBadRequest, models.ErrorResponse{
			Success:        false,
			Error:          "Missing required columns",
			MissingColumns: missing,
			RequiredCols:   requiredColumns,
		})
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store room data")
		return
	}
	defer tx.Rollback()

	// Full replace: the upload is the new list of record.
	if _, err := tx.Exec(`DELETE FROM rooms`); err != nil {
		slog.Error("failed to clear rooms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store room data")
		return
	}

	for i, row := range rows {
		hostel := strings.TrimSpace(row["hostel name"])
		roomNo := strings.TrimSpace(row["available room no."])
		if hostel == "" || roomNo == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				"Missing hostel name or room number in row "+strconv.Itoa(i+1))
			return
		}

		capacity, err := strconv.Atoi(strings.TrimSpace(row["room capacity"]))
		if err != nil || capacity <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				"Invalid room capacity in row "+strconv.Itoa(i+1))
			return
		}

		_, err = tx.Exec(`
			INSERT INTO rooms (id, hostel, room_no, capacity, password, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.NewString(), hostel, roomNo, capacity,
			row["room password"], i)

		if err != nil {
			slog.Error("failed to insert room", "error", err, "row", i)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store room data")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit room upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store room data")
		return
	}

	slog.Info("room reference data replaced", "rows", len(req.Rows))

	middleware.JSONResponse(w, http.StatusOK, models.UploadRoomsResponse{
		Success:     true,
		Message:     "Room data uploaded",
		RecordCount: len(req.Rows),
	})
}

// Data handles GET /api/dashboard/data?hostel=<name|all>
func (h *DashboardHandler) Data(w http.ResponseWriter, r *http.Request) {
	hostel := r.URL.Query().Get("hostel")

	query := `SELECT hostel, room_no, capacity, password FROM rooms ORDER BY position`
	var args []interface{}
	if hostel != "" && hostel != "all" {
		query = `SELECT hostel, room_no, capacity, password FROM rooms WHERE hostel = $1 ORDER BY position`
		args = append(args, hostel)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query rooms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch room data")
		return
	}
	defer rows.Close()

	data := []models.RoomRow{}
	for rows.Next() {
		var row models.RoomRow
		var capacity int
		var password sql.NullString
		if err := rows.Scan(&row.Hostel, &row.RoomNo, &capacity, &password); err != nil {
			slog.Error("failed to scan room", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch room data")
			return
		}
		row.Capacity = strconv.Itoa(capacity)
		row.Password = password.String
		data = append(data, row)
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardDataResponse{
		Success:     true,
		Data:        data,
		RecordCount: len(data),
	})
}

// normalizeRow lowercases and trims the row's keys so "Hostel Name"
// and "hostel name " address the same column. Later duplicates win,
// matching JSON object semantics.
func normalizeRow(row map[string]string) map[string]string {
	normalized := make(map[string]string, len(row))
	for key, value := range row {
		normalized[strings.ToLower(strings.TrimSpace(key))] = value
	}
	return normalized
}

// missingColumns expects a normalized row.
func missingColumns(row map[string]string) []string {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := row[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
