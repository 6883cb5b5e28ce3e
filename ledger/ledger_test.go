// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/roomsync/models"
)

func testFields(miNo string) Fields {
	return Fields{
		Name:         "Test Person",
		MiNo:         miNo,
		Email:        "test@example.com",
		Hostel:       "H1",
		RoomNo:       "101",
		RoomPassword: "pw",
	}
}

func TestAppendThenAll_RoundTrip(t *testing.T) {
	led := New(NewMemStore())

	alloc, err := led.Append(testFields("MI-abc-0001"))
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if alloc.ID == "" {
		t.Error("append must generate an id")
	}
	if alloc.Timestamp.IsZero() {
		t.Error("append must generate a timestamp")
	}
	if alloc.MiNo != "MI-abc-0001" || alloc.Hostel != "H1" || alloc.RoomNo != "101" {
		t.Errorf("fields not preserved: %+v", alloc)
	}

	all, err := led.All()
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != alloc.ID {
		t.Errorf("expected stored record in All(), got %+v", all)
	}
}

func TestAll_InsertionOrder(t *testing.T) {
	led := New(NewMemStore())

	ids := []string{}
	for _, miNo := range []string{"MI-abc-0001", "MI-abc-0002", "MI-abc-0003"} {
		alloc, err := led.Append(testFields(miNo))
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		ids = append(ids, alloc.ID)
	}

	all, err := led.All()
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	for i, alloc := range all {
		if alloc.ID != ids[i] {
			t.Errorf("position %d: expected id %s, got %s", i, ids[i], alloc.ID)
		}
	}
}

func TestAppend_UniqueIDs(t *testing.T) {
	led := New(NewMemStore())

	a1, _ := led.Append(testFields("MI-abc-0001"))
	a2, _ := led.Append(testFields("MI-abc-0002"))
	if a1.ID == a2.ID {
		t.Error("appends must generate unique ids")
	}
}

func TestFindByMiNo(t *testing.T) {
	led := New(NewMemStore())
	led.Append(testFields("MI-abc-0001"))

	alloc, found, err := led.FindByMiNo("MI-abc-0001")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !found || alloc.MiNo != "MI-abc-0001" {
		t.Errorf("expected to find MI-abc-0001, got found=%v %+v", found, alloc)
	}

	_, found, err = led.FindByMiNo("MI-abc-9999")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found {
		t.Error("found an allocation that was never appended")
	}
}

func TestRemoveByID(t *testing.T) {
	led := New(NewMemStore())
	a1, _ := led.Append(testFields("MI-abc-0001"))
	a2, _ := led.Append(testFields("MI-abc-0002"))

	if err := led.RemoveByID(a1.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	all, _ := led.All()
	if len(all) != 1 || all[0].ID != a2.ID {
		t.Errorf("expected only %s to remain, got %+v", a2.ID, all)
	}

	// Unknown id is a no-op
	if err := led.RemoveByID("nope"); err != nil {
		t.Errorf("removing unknown id should not error: %v", err)
	}
}

func TestClear(t *testing.T) {
	led := New(NewMemStore())
	led.Append(testFields("MI-abc-0001"))

	if err := led.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	all, _ := led.All()
	if len(all) != 0 {
		t.Errorf("expected empty ledger after clear, got %d records", len(all))
	}
}

func TestCorruptDataReadsAsEmpty(t *testing.T) {
	store := NewMemStore()
	store.Save([]byte("{not json"))

	led := New(store)
	all, err := led.All()
	if err != nil {
		t.Fatalf("corrupt data must not error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("corrupt data must read as empty, got %d records", len(all))
	}
}

func TestFailedAppendLeavesPriorContents(t *testing.T) {
	store := NewMemStore()
	led := New(store)
	led.Append(testFields("MI-abc-0001"))

	store.FailSave = errors.New("quota exceeded")
	_, err := led.Append(testFields("MI-abc-0002"))

	var storageErr *models.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}

	store.FailSave = nil
	all, _ := led.All()
	if len(all) != 1 || all[0].MiNo != "MI-abc-0001" {
		t.Errorf("failed append must leave prior contents, got %+v", all)
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.json")

	led := New(NewFileStore(path))
	alloc, err := led.Append(testFields("MI-abc-0001"))
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	// A fresh ledger over the same file sees the record, like a page
	// reload over localStorage.
	reopened := New(NewFileStore(path))
	all, err := reopened.All()
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != alloc.ID {
		t.Errorf("record did not survive reopen: %+v", all)
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	led := New(NewFileStore(filepath.Join(t.TempDir(), "missing.json")))

	all, err := led.All()
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("missing file must read as empty, got %d", len(all))
	}

	if err := led.Clear(); err != nil {
		t.Errorf("clearing a missing file must not error: %v", err)
	}
}
