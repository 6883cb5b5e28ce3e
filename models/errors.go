// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

// ErrMissingInput is returned when an allocation is attempted without a
// scanned person or a selected room.
var ErrMissingInput = errors.New("scan a badge and select a room first")

// ScanFormatError reports an unparseable scan payload. No state changes
// when it is returned.
type ScanFormatError struct {
	Payload string
	Reason  string
}

func (e *ScanFormatError) Error() string {
	return fmt.Sprintf("unrecognized scan payload: %s", e.Reason)
}

// AlreadyAllocatedError reports that a badge already has an allocation,
// either confirmed on the server or pending in the local ledger. It
// names the conflicting room so the operator can resolve it.
type AlreadyAllocatedError struct {
	MiNo    string
	Hostel  string
	RoomNo  string
	Pending bool
}

func (e *AlreadyAllocatedError) Error() string {
	if e.Pending {
		return fmt.Sprintf("%s already allocated to %s - Room %s (pending sync)", e.MiNo, e.Hostel, e.RoomNo)
	}
	return fmt.Sprintf("%s already allocated to %s - Room %s", e.MiNo, e.Hostel, e.RoomNo)
}

// RoomFullError reports an allocation attempt into a room whose
// occupancy has reached capacity.
type RoomFullError struct {
	Hostel   string
	RoomNo   string
	Capacity int
}

func (e *RoomFullError) Error() string {
	return fmt.Sprintf("%s - Room %s is full (capacity %d)", e.Hostel, e.RoomNo, e.Capacity)
}

// StorageError reports a failed ledger persistence operation. The
// ledger's prior durable contents are unchanged when it is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Sync attempt failures. All three are retryable; the sync service
// classifies each attempt's outcome into exactly one of them.

// SyncTimeoutError reports a sync attempt that exceeded its per-attempt
// deadline.
type SyncTimeoutError struct {
	Err error
}

func (e *SyncTimeoutError) Error() string {
	return fmt.Sprintf("sync timed out: %v", e.Err)
}

func (e *SyncTimeoutError) Unwrap() error { return e.Err }

// SyncTransportError reports a network-level sync failure (connection
// refused, DNS, reset).
type SyncTransportError struct {
	Err error
}

func (e *SyncTransportError) Error() string {
	return fmt.Sprintf("sync network error: %v", e.Err)
}

func (e *SyncTransportError) Unwrap() error { return e.Err }

// SyncServerError reports a non-2xx status or an application-level
// failure flag from the save endpoint. Message carries the server's
// human-readable error string verbatim when one was returned.
type SyncServerError struct {
	Status  int
	Message string
}

func (e *SyncServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sync rejected by server (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("sync rejected by server (status %d)", e.Status)
}
