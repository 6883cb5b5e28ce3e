// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/roomsync/ledger"
	"github.com/danielhkuo/roomsync/models"
)

// fakeAPI scripts the outcome of each SaveAllocations call.
type fakeAPI struct {
	errs    []error // one per call; nil means success
	calls   int
	batches [][]models.Allocation
}

func (f *fakeAPI) SaveAllocations(ctx context.Context, batch []models.Allocation) (int, error) {
	cp := make([]models.Allocation, len(batch))
	copy(cp, batch)
	f.batches = append(f.batches, cp)

	var err error
	if f.calls < len(f.errs) {
		err = f.errs[f.calls]
	}
	f.calls++
	if err != nil {
		return 0, err
	}
	return len(batch), nil
}

type fakeReports struct {
	batches [][]models.Allocation
	fail    error
}

func (f *fakeReports) Write(batch []models.Allocation) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	f.batches = append(f.batches, batch)
	return "/tmp/report.txt", nil
}

func seedLedger(t *testing.T, led *ledger.Ledger, count int) {
	t.Helper()
	miNos := []string{"MI-abc-0001", "MI-abc-0002", "MI-abc-0003"}
	for i := 0; i < count; i++ {
		_, err := led.Append(ledger.Fields{
			Name: "P", MiNo: miNos[i], Email: "p@example.com",
			Hostel: "H1", RoomNo: "101",
		})
		if err != nil {
			t.Fatalf("seed append failed: %v", err)
		}
	}
}

func fastPolicy(maxAttempts int) Policy {
	return Policy{Backoff: time.Millisecond, MaxAttempts: maxAttempts}
}

func TestSyncAll_EmptyLedgerIsNoOp(t *testing.T) {
	api := &fakeAPI{}
	led := ledger.New(ledger.NewMemStore())
	svc := New(api, led, nil, fastPolicy(1))

	out, err := svc.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.NothingToSync {
		t.Error("expected NothingToSync")
	}
	if api.calls != 0 {
		t.Error("empty ledger must not hit the network")
	}
}

func TestSyncAll_SuccessClearsLedger(t *testing.T) {
	api := &fakeAPI{}
	led := ledger.New(ledger.NewMemStore())
	seedLedger(t, led, 3)
	reports := &fakeReports{}
	svc := New(api, led, reports, fastPolicy(1))

	out, err := svc.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Synced != 3 {
		t.Errorf("expected count 3, got %d", out.Synced)
	}
	if out.ReportPath == "" {
		t.Error("expected a report path on success")
	}

	all, _ := led.All()
	if len(all) != 0 {
		t.Errorf("ledger must be cleared after confirmed sync, got %d", len(all))
	}
	if len(reports.batches) != 1 || len(reports.batches[0]) != 3 {
		t.Error("report must be generated from the just-synced batch")
	}
}

func TestSyncAll_FailureClearsNothingThenRetrySucceeds(t *testing.T) {
	api := &fakeAPI{errs: []error{
		&models.SyncTransportError{Err: errors.New("connection refused")},
		nil,
	}}
	led := ledger.New(ledger.NewMemStore())
	seedLedger(t, led, 2)

	var retries []int
	svc := New(api, led, nil, fastPolicy(0))
	svc.OnRetry = func(attempt int, err error) { retries = append(retries, attempt) }

	out, err := svc.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", out.Attempts)
	}
	if out.Synced != 2 {
		t.Errorf("count must equal pre-sync ledger size, got %d", out.Synced)
	}
	if len(retries) != 1 || retries[0] != 1 {
		t.Errorf("expected one retry notification for attempt 1, got %v", retries)
	}

	// The retried batch is identical to the first.
	if len(api.batches) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(api.batches))
	}
	if api.batches[0][0].ID != api.batches[1][0].ID || len(api.batches[0]) != len(api.batches[1]) {
		t.Error("retry must resend the same batch")
	}

	all, _ := led.All()
	if len(all) != 0 {
		t.Errorf("ledger must be cleared after eventual success, got %d", len(all))
	}
}

func TestSyncAll_FailureLeavesLedgerIntact(t *testing.T) {
	api := &fakeAPI{errs: []error{
		&models.SyncServerError{Status: 500, Message: "boom"},
		&models.SyncServerError{Status: 500, Message: "boom"},
	}}
	led := ledger.New(ledger.NewMemStore())
	seedLedger(t, led, 2)
	svc := New(api, led, nil, fastPolicy(2))

	_, err := svc.SyncAll(context.Background())
	var serverErr *models.SyncServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected SyncServerError after exhausted attempts, got %v", err)
	}

	all, _ := led.All()
	if len(all) != 2 {
		t.Errorf("failed sync must clear nothing, got %d records", len(all))
	}
}

func TestSyncAll_ReportFailureDoesNotBlockClear(t *testing.T) {
	api := &fakeAPI{}
	led := ledger.New(ledger.NewMemStore())
	seedLedger(t, led, 1)
	reports := &fakeReports{fail: errors.New("printer on fire")}
	svc := New(api, led, reports, fastPolicy(1))

	out, err := svc.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("report failure must not fail the sync: %v", err)
	}
	if out.Synced != 1 {
		t.Errorf("expected count 1, got %d", out.Synced)
	}
	if out.ReportPath != "" {
		t.Error("no report path when generation failed")
	}

	all, _ := led.All()
	if len(all) != 0 {
		t.Error("ledger must still be cleared when the report fails")
	}
}

func TestSyncAll_CancellationStopsRetry(t *testing.T) {
	api := &fakeAPI{errs: []error{
		&models.SyncTimeoutError{Err: context.DeadlineExceeded},
		&models.SyncTimeoutError{Err: context.DeadlineExceeded},
		&models.SyncTimeoutError{Err: context.DeadlineExceeded},
	}}
	led := ledger.New(ledger.NewMemStore())
	seedLedger(t, led, 1)

	ctx, cancel := context.WithCancel(context.Background())
	svc := New(api, led, nil, Policy{Backoff: 50 * time.Millisecond})
	svc.OnRetry = func(attempt int, err error) {
		if attempt == 2 {
			cancel()
		}
	}

	_, err := svc.SyncAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	all, _ := led.All()
	if len(all) != 1 {
		t.Errorf("cancelled sync must drop nothing, got %d records", len(all))
	}
}

func TestSyncAll_ClearFailureSurfacesStorageError(t *testing.T) {
	api := &fakeAPI{}
	store := ledger.NewMemStore()
	led := ledger.New(store)
	seedLedger(t, led, 1)
	store.FailClear = errors.New("fs error")

	svc := New(api, led, nil, fastPolicy(1))
	out, err := svc.SyncAll(context.Background())

	var storageErr *models.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	// The batch did land on the server.
	if out.Synced != 1 {
		t.Errorf("expected synced count despite clear failure, got %d", out.Synced)
	}
}
