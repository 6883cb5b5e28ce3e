// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Domain types

// Person is a scanned badge identity. It is immutable once scanned and
// never persisted on its own.
type Person struct {
	Name  string `json:"name" validate:"required"`
	MiNo  string `json:"miNo" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// Room is one row of the hostel room reference list. Identity is the
// (Hostel, RoomNo) pair; Password is a display-only secret.
type Room struct {
	Hostel   string `json:"hostel"`
	RoomNo   string `json:"room_no"`
	Capacity int    `json:"capacity"`
	Password string `json:"password,omitempty"`
}

// Allocation places one person in one room. ID is generated locally by
// the ledger; Timestamp is the creation time, not the sync time.
type Allocation struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MiNo         string    `json:"miNo"`
	Email        string    `json:"email"`
	Hostel       string    `json:"hostel"`
	RoomNo       string    `json:"roomNo"`
	RoomPassword string    `json:"roomPassword,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Wire types

// RoomRow is the external representation of a room reference row. The
// key names come from the CSV column headers the deployment imports.
type RoomRow struct {
	Hostel   string `json:"hostel name" validate:"required"`
	RoomNo   string `json:"available room no." validate:"required"`
	Capacity string `json:"room capacity" validate:"required"`
	Password string `json:"room password"`
}

// AllocationRecord is the snake_case wire form of a confirmed
// allocation as returned by GET /api/allocation/list.
type AllocationRecord struct {
	Name         string `json:"name"`
	MiNo         string `json:"mi_no"`
	Email        string `json:"email"`
	Hostel       string `json:"hostel"`
	RoomNo       string `json:"room_no"`
	RoomPassword string `json:"room_password,omitempty"`
	AllocatedAt  string `json:"allocated_at"`
}

// SaveAllocation is the camelCase wire form of one pending allocation
// in a POST /api/allocation/save batch.
type SaveAllocation struct {
	Name         string `json:"name" validate:"required"`
	MiNo         string `json:"miNo" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Hostel       string `json:"hostel" validate:"required"`
	RoomNo       string `json:"roomNo" validate:"required"`
	RoomPassword string `json:"roomPassword"`
	Timestamp    string `json:"timestamp"`
}

// Request types

type SaveAllocationsRequest struct {
	Allocations []SaveAllocation `json:"allocations"`
}

type UploadRoomsRequest struct {
	Rows []map[string]string `json:"csvData"`
}

// Response types

type SaveAllocationsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
}

type ListAllocationsResponse struct {
	Success     bool               `json:"success"`
	Allocations []AllocationRecord `json:"allocations"`
	Count       int                `json:"count"`
}

type DashboardDataResponse struct {
	Success     bool      `json:"success"`
	Data        []RoomRow `json:"data"`
	RecordCount int       `json:"recordCount"`
}

type UploadRoomsResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	RecordCount int    `json:"recordCount"`
}

// RoomCount is one row of the per-room allocation statistics.
type RoomCount struct {
	Hostel string `json:"hostel"`
	RoomNo string `json:"room_no"`
	Count  int    `json:"count"`
}

type Stats struct {
	TotalAllocations int         `json:"totalAllocations"`
	RoomsUsed        int         `json:"roomsUsed"`
	Rooms            []RoomCount `json:"rooms"`
}

type StatsResponse struct {
	Success bool  `json:"success"`
	Stats   Stats `json:"stats"`
}

// Error response. Error carries the human-readable message; terminals
// surface it verbatim when no more specific local message applies.

type ErrorResponse struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error"`
	MissingColumns []string `json:"missingColumns,omitempty"`
	RequiredCols   []string `json:"requiredColumns,omitempty"`
}
