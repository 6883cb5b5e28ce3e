// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the terminal's durable store of pending allocations.

A pending allocation exists only here until the sync service uploads it
to the server and the server confirms persistence. The ledger is
append-only from the orchestrator's point of view; Clear belongs to the
sync service alone.

# Store Abstraction

The Ledger owns a Store, the single serialized blob holding the ordered
pending set:

	led := ledger.New(ledger.NewFileStore("~/.roomsync/pending.json"))

FileStore persists atomically (write to temp file, rename). MemStore is
the test substitute. Absent or corrupt stored data reads as an empty
ledger, never an error: a half-written file must not brick the terminal.

# Semantics

  - Append generates a unique id and timestamp, persists the full set,
    and returns the stored record. A failed persist leaves the prior
    durable contents unchanged.
  - All re-reads from storage on every call; there is no in-memory
    cache that can drift from what is actually on disk.
  - Storage failures surface as *models.StorageError.
*/
package ledger
