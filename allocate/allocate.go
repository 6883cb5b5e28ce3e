// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package allocate is the only place allocations are created. The
// orchestrator enforces the two core invariants before anything reaches
// the ledger: at most one allocation per badge across the confirmed and
// pending sets, and room occupancy never pushed past capacity at the
// moment of creation.
package allocate

import (
	"log/slog"
	"sync"

	"github.com/danielhkuo/roomsync/capacity"
	"github.com/danielhkuo/roomsync/ledger"
	"github.com/danielhkuo/roomsync/models"
)

// Orchestrator validates and records allocations. The terminal runs a
// single operator loop, so checks and the ledger append cannot
// interleave; the mutex keeps the check-then-act sequence atomic even
// if a caller misuses the orchestrator from multiple goroutines.
type Orchestrator struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
}

func New(led *ledger.Ledger) *Orchestrator {
	return &Orchestrator{ledger: led}
}

// Allocate places person into room, checking preconditions in a fixed
// order so error precedence is deterministic:
//
//  1. person and room present
//  2. badge not in the confirmed set
//  3. badge not in the pending ledger
//  4. room has availability over confirmed plus pending
//
// On success the allocation is appended to the ledger and returned.
func (o *Orchestrator) Allocate(person models.Person, room models.Room, confirmed []models.Allocation) (models.Allocation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if person.MiNo == "" || room.Hostel == "" || room.RoomNo == "" {
		return models.Allocation{}, models.ErrMissingInput
	}

	for _, a := range confirmed {
		if a.MiNo == person.MiNo {
			return models.Allocation{}, &models.AlreadyAllocatedError{
				MiNo:   person.MiNo,
				Hostel: a.Hostel,
				RoomNo: a.RoomNo,
			}
		}
	}

	if existing, found, err := o.ledger.FindByMiNo(person.MiNo); err != nil {
		return models.Allocation{}, err
	} else if found {
		return models.Allocation{}, &models.AlreadyAllocatedError{
			MiNo:    person.MiNo,
			Hostel:  existing.Hostel,
			RoomNo:  existing.RoomNo,
			Pending: true,
		}
	}

	pending, err := o.ledger.All()
	if err != nil {
		return models.Allocation{}, err
	}

	view := capacity.NewView(nil, confirmed, pending)
	if view.Available(room) <= 0 {
		return models.Allocation{}, &models.RoomFullError{
			Hostel:   room.Hostel,
			RoomNo:   room.RoomNo,
			Capacity: room.Capacity,
		}
	}

	alloc, err := o.ledger.Append(ledger.Fields{
		Name:         person.Name,
		MiNo:         person.MiNo,
		Email:        person.Email,
		Hostel:       room.Hostel,
		RoomNo:       room.RoomNo,
		RoomPassword: room.Password,
	})
	if err != nil {
		return models.Allocation{}, err
	}

	slog.Info("allocation recorded",
		"mi_no", alloc.MiNo,
		"hostel", alloc.Hostel,
		"room_no", alloc.RoomNo,
	)
	return alloc, nil
}
