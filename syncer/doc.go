// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package syncer reconciles the pending ledger with the backend-of-record.

SyncAll reads the whole pending set, uploads it as one batch, and only
on confirmed persistence clears the ledger. Failures never drop an
allocation: the ledger is cleared entirely or not at all, and the same
batch is retried after a fixed backoff. The server upserts by badge id,
so retrying a batch the server already persisted is harmless.

The retry loop is governed by an explicit Policy instead of recursing
forever: MaxAttempts bounds the loop (0 means retry until the context
is cancelled), and the context gives the operator a way to stop an
unreachable-server sync without losing state. Each failed attempt is
classified (timeout, network, server) and surfaced through the OnRetry
callback as status, not as a terminal failure.

On success the just-synced batch is rendered to a printable report
before the ledger is cleared; a report failure is logged and does not
block the clear, because the server's persistence is the durability
boundary.
*/
package syncer
