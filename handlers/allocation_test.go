// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/roomsync/models"
	"github.com/danielhkuo/roomsync/testutil"
)

func saveRow(miNo, name, hostel, roomNo string) models.SaveAllocation {
	return models.SaveAllocation{
		Name:      name,
		MiNo:      miNo,
		Email:     name + "@example.com",
		Hostel:    hostel,
		RoomNo:    roomNo,
		Timestamp: "2026-08-30T10:00:00Z",
	}
}

func TestSaveAllocations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest(http.MethodPost, "/api/allocation/save", models.SaveAllocationsRequest{
		Allocations: []models.SaveAllocation{
			saveRow("MI-abc-0001", "Asha", "H1", "101"),
			saveRow("MI-abc-0002", "Bo", "H1", "102"),
		},
	}, nil)
	w := httptest.NewRecorder()
	h.Save(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SaveAllocationsResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.Count != 2 {
		t.Errorf("Expected success with count 2, got %+v", resp)
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM allocations`).Scan(&total); err != nil {
		t.Fatalf("Failed to count allocations: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 rows, got %d", total)
	}
}

func TestSaveAllocationsUpsertIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	batch := models.SaveAllocationsRequest{
		Allocations: []models.SaveAllocation{saveRow("MI-abc-0001", "Asha", "H1", "101")},
	}

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.Save(w, testutil.MakeRequest(http.MethodPost, "/api/allocation/save", batch, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM allocations`).Scan(&total); err != nil {
		t.Fatalf("Failed to count allocations: %v", err)
	}
	if total != 1 {
		t.Errorf("Replayed batch must not duplicate rows, got %d", total)
	}
}

func TestSaveAllocationsUpsertTakesLatestWrite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	first := models.SaveAllocationsRequest{
		Allocations: []models.SaveAllocation{saveRow("MI-abc-0001", "Asha", "H1", "101")},
	}
	w := httptest.NewRecorder()
	h.Save(w, testutil.MakeRequest(http.MethodPost, "/api/allocation/save", first, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	moved := saveRow("MI-abc-0001", "Asha", "H2", "205")
	second := models.SaveAllocationsRequest{Allocations: []models.SaveAllocation{moved}}
	w = httptest.NewRecorder()
	h.Save(w, testutil.MakeRequest(http.MethodPost, "/api/allocation/save", second, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var hostel, roomNo string
	err := db.QueryRow(`SELECT hostel, room_no FROM allocations WHERE mi_no = $1`, "MI-abc-0001").
		Scan(&hostel, &roomNo)
	if err != nil {
		t.Fatalf("Failed to read row back: %v", err)
	}
	if hostel != "H2" || roomNo != "205" {
		t.Errorf("Expected the later write to win, got %s/%s", hostel, roomNo)
	}
}

func TestSaveAllocationsRejectsEmptyBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.Save(w, testutil.MakeRequest(http.MethodPost, "/api/allocation/save",
		models.SaveAllocationsRequest{}, nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Success || resp.Error == "" {
		t.Errorf("Expected error response, got %+v", resp)
	}
}

func TestSaveAllocationsRejectsInvalidRowWholeBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	bad := saveRow("", "Asha", "H1", "101") // missing mi number
	req := models.SaveAllocationsRequest{
		Allocations: []models.SaveAllocation{saveRow("MI-abc-0002", "Bo", "H1", "102"), bad},
	}
	w := httptest.NewRecorder()
	h.Save(w, testutil.MakeRequest(http.MethodPost, "/api/allocation/save", req, nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM allocations`).Scan(&total); err != nil {
		t.Fatalf("Failed to count allocations: %v", err)
	}
	if total != 0 {
		t.Errorf("Invalid batch must write nothing, got %d rows", total)
	}
}

func TestSaveAllocationsInvalidJSON(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest(http.MethodPost, "/api/allocation/save", "not an object", nil)
	w := httptest.NewRecorder()
	h.Save(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestListAllocations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	testutil.CreateTestAllocation(t, db, "MI-abc-0001", "Asha", "H1", "101")
	testutil.CreateTestAllocation(t, db, "MI-abc-0002", "Bo", "H2", "205")

	w := httptest.NewRecorder()
	h.List(w, testutil.MakeRequest(http.MethodGet, "/api/allocation/list", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ListAllocationsResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.Count != 2 || len(resp.Allocations) != 2 {
		t.Fatalf("Expected 2 allocations, got %+v", resp)
	}
	for _, rec := range resp.Allocations {
		if rec.MiNo == "" || rec.AllocatedAt == "" {
			t.Errorf("Record missing fields: %+v", rec)
		}
	}
}

func TestListAllocationsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.List(w, testutil.MakeRequest(http.MethodGet, "/api/allocation/list", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ListAllocationsResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.Count != 0 {
		t.Errorf("Expected empty success response, got %+v", resp)
	}
	if resp.Allocations == nil {
		t.Error("Allocations must be an empty array, not null")
	}
}

func TestAllocationsByRoom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	testutil.CreateTestAllocation(t, db, "MI-abc-0001", "Asha", "H1", "101")
	testutil.CreateTestAllocation(t, db, "MI-abc-0002", "Bo", "H1", "101")
	testutil.CreateTestAllocation(t, db, "MI-abc-0003", "Caro", "H2", "205")

	req := testutil.MakeRequest(http.MethodGet, "/api/allocation/by-room/H1/101", nil, nil)
	req.SetPathValue("hostel", "H1")
	req.SetPathValue("roomNo", "101")
	w := httptest.NewRecorder()
	h.ByRoom(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ListAllocationsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 2 {
		t.Fatalf("Expected 2 occupants for H1/101, got %d", resp.Count)
	}
	for _, rec := range resp.Allocations {
		if rec.Hostel != "H1" || rec.RoomNo != "101" {
			t.Errorf("Record from wrong room: %+v", rec)
		}
	}
}

func TestAllocationStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewAllocationHandler(db, testutil.GetTestConfig())

	testutil.CreateTestAllocation(t, db, "MI-abc-0001", "Asha", "H1", "101")
	testutil.CreateTestAllocation(t, db, "MI-abc-0002", "Bo", "H1", "101")
	testutil.CreateTestAllocation(t, db, "MI-abc-0003", "Caro", "H2", "205")

	w := httptest.NewRecorder()
	h.Stats(w, testutil.MakeRequest(http.MethodGet, "/api/allocation/stats", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StatsResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success {
		t.Fatal("Expected success")
	}
	if resp.Stats.TotalAllocations != 3 {
		t.Errorf("Expected 3 total, got %d", resp.Stats.TotalAllocations)
	}
	if resp.Stats.RoomsUsed != 2 {
		t.Errorf("Expected 2 rooms used, got %d", resp.Stats.RoomsUsed)
	}

	counts := map[string]int{}
	for _, rc := range resp.Stats.Rooms {
		counts[rc.Hostel+"/"+rc.RoomNo] = rc.Count
	}
	if counts["H1/101"] != 2 || counts["H2/205"] != 1 {
		t.Errorf("Unexpected per-room counts: %v", counts)
	}
}
