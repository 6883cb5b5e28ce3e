// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package capacity computes live per-room occupancy from the
// server-confirmed allocation set merged with the terminal's pending
// ledger. It is pure: a View is a snapshot of its three inputs and is
// rebuilt whenever any of them changes, never mutated or cached across
// refreshes.
package capacity

import (
	"sort"

	"github.com/danielhkuo/roomsync/models"
)

// View is a point-in-time occupancy view over the room reference list,
// the confirmed set, and the pending set.
type View struct {
	rooms    []models.Room
	occupied map[roomKey]int
}

type roomKey struct {
	hostel string
	roomNo string
}

// NewView builds a view. Rooms keep their reference-list order;
// occupancy counts allocations from confirmed plus pending.
func NewView(rooms []models.Room, confirmed []models.Allocation, pending []models.Allocation) *View {
	occupied := make(map[roomKey]int)
	for _, a := range confirmed {
		occupied[roomKey{a.Hostel, a.RoomNo}]++
	}
	for _, a := range pending {
		occupied[roomKey{a.Hostel, a.RoomNo}]++
	}

	return &View{rooms: rooms, occupied: occupied}
}

// Occupied returns the number of allocations for a room across
// confirmed and pending sets.
func (v *View) Occupied(hostel, roomNo string) int {
	return v.occupied[roomKey{hostel, roomNo}]
}

// Available returns capacity minus occupancy for a room. The result can
// be zero or negative: capacity may have been lowered after allocations
// were made, and existing allocations are not retroactively invalidated.
func (v *View) Available(room models.Room) int {
	return room.Capacity - v.Occupied(room.Hostel, room.RoomNo)
}

// Hostels returns the distinct hostel names, alphabetically ordered.
func (v *View) Hostels() []string {
	seen := make(map[string]bool)
	var hostels []string
	for _, room := range v.rooms {
		if !seen[room.Hostel] {
			seen[room.Hostel] = true
			hostels = append(hostels, room.Hostel)
		}
	}
	sort.Strings(hostels)
	return hostels
}

// RoomsIn returns the rooms of one hostel in reference-list order.
func (v *View) RoomsIn(hostel string) []models.Room {
	var rooms []models.Room
	for _, room := range v.rooms {
		if room.Hostel == hostel {
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// Find returns the reference entry for a room, if it exists.
func (v *View) Find(hostel, roomNo string) (models.Room, bool) {
	for _, room := range v.rooms {
		if room.Hostel == hostel && room.RoomNo == roomNo {
			return room, true
		}
	}
	return models.Room{}, false
}
