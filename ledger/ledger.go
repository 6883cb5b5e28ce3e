// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/roomsync/models"
)

// Fields is what the orchestrator supplies; id and timestamp are the
// ledger's to generate.
type Fields struct {
	Name         string
	MiNo         string
	Email        string
	Hostel       string
	RoomNo       string
	RoomPassword string
}

// Ledger stores pending allocations through an injected Store.
type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// All returns the pending set in insertion order, read fresh from
// storage. Absent or corrupt data is an empty ledger.
func (l *Ledger) All() ([]models.Allocation, error) {
	data, ok, err := l.store.Load()
	if err != nil {
		return nil, &models.StorageError{Op: "load", Err: err}
	}
	if !ok {
		return []models.Allocation{}, nil
	}

	var allocations []models.Allocation
	if err := json.Unmarshal(data, &allocations); err != nil {
		// A corrupt blob must not brick the terminal.
		slog.Warn("pending ledger unreadable, treating as empty", "error", err)
		return []models.Allocation{}, nil
	}
	return allocations, nil
}

// Append generates an id and timestamp, persists the full set, and
// returns the stored record. Existing entries are never overwritten;
// a failed persist leaves the prior durable contents unchanged.
func (l *Ledger) Append(fields Fields) (models.Allocation, error) {
	allocations, err := l.All()
	if err != nil {
		return models.Allocation{}, err
	}

	alloc := models.Allocation{
		ID:           uuid.NewString(),
		Name:         fields.Name,
		MiNo:         fields.MiNo,
		Email:        fields.Email,
		Hostel:       fields.Hostel,
		RoomNo:       fields.RoomNo,
		RoomPassword: fields.RoomPassword,
		Timestamp:    time.Now().UTC(),
	}

	if err := l.persist(append(allocations, alloc)); err != nil {
		return models.Allocation{}, err
	}
	return alloc, nil
}

// FindByMiNo returns the pending allocation for a badge, if any.
func (l *Ledger) FindByMiNo(miNo string) (models.Allocation, bool, error) {
	allocations, err := l.All()
	if err != nil {
		return models.Allocation{}, false, err
	}
	for _, alloc := range allocations {
		if alloc.MiNo == miNo {
			return alloc, true, nil
		}
	}
	return models.Allocation{}, false, nil
}

// RemoveByID drops one pending allocation. Removing an unknown id is a
// no-op.
func (l *Ledger) RemoveByID(id string) error {
	allocations, err := l.All()
	if err != nil {
		return err
	}

	kept := allocations[:0]
	for _, alloc := range allocations {
		if alloc.ID != id {
			kept = append(kept, alloc)
		}
	}
	return l.persist(kept)
}

// Clear empties the ledger. Only the sync service calls this, after the
// server confirms persistence of the whole batch.
func (l *Ledger) Clear() error {
	if err := l.store.Clear(); err != nil {
		return &models.StorageError{Op: "clear", Err: err}
	}
	return nil
}

func (l *Ledger) persist(allocations []models.Allocation) error {
	data, err := json.Marshal(allocations)
	if err != nil {
		return &models.StorageError{Op: "encode", Err: err}
	}
	if err := l.store.Save(data); err != nil {
		return &models.StorageError{Op: "save", Err: err}
	}
	return nil
}
