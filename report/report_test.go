// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/roomsync/models"
)

func sampleBatch() []models.Allocation {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return []models.Allocation{
		{Name: "Asha", MiNo: "MI-abc-0001", Email: "a@example.com",
			Hostel: "H1", RoomNo: "101", RoomPassword: "pw1", Timestamp: ts},
		{Name: "Bo", MiNo: "MI-abc-0002", Email: "b@example.com",
			Hostel: "H2", RoomNo: "205", Timestamp: ts},
		{Name: "Caro", MiNo: "MI-abc-0003", Email: "c@example.com",
			Hostel: "H1", RoomNo: "101", RoomPassword: "pw1", Timestamp: ts},
	}
}

func TestRenderGroupsByRoom(t *testing.T) {
	got := Render(sampleBatch())

	if !strings.Contains(got, "Total Allocations: 3") {
		t.Error("Missing total count header")
	}
	if !strings.Contains(got, "H1 - Room 101") {
		t.Error("Missing H1/101 section")
	}
	if !strings.Contains(got, "H2 - Room 205") {
		t.Error("Missing H2/205 section")
	}
	if !strings.Contains(got, "Occupancy: 2 person(s)") {
		t.Error("H1/101 should show both occupants")
	}

	// Rooms render in sorted order.
	if strings.Index(got, "H1 - Room 101") > strings.Index(got, "H2 - Room 205") {
		t.Error("Rooms out of order")
	}
}

func TestRenderMissingPassword(t *testing.T) {
	got := Render(sampleBatch())

	if !strings.Contains(got, "Password: pw1") {
		t.Error("Room password missing")
	}
	if !strings.Contains(got, "Password: N/A") {
		t.Error("Empty password should render as N/A")
	}
}

func TestRenderListsPeople(t *testing.T) {
	got := Render(sampleBatch())

	for _, name := range []string{"Asha", "Bo", "Caro"} {
		if !strings.Contains(got, name) {
			t.Errorf("Person %s missing from report", name)
		}
	}
	if !strings.Contains(got, "MI-abc-0001") {
		t.Error("Mi numbers missing from report")
	}
}

func TestWriteCreatesFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	path, err := w.Write(sampleBatch())
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("Report written outside %s: %s", dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report back: %v", err)
	}
	if !strings.Contains(string(data), "Room Allocations") {
		t.Error("Report file missing header")
	}
}

func TestWriteEmptyBatchFails(t *testing.T) {
	w := NewWriter(t.TempDir())
	if _, err := w.Write(nil); err == nil {
		t.Error("Expected error for empty batch")
	}
}
