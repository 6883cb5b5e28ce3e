// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/roomsync/ledger"
	"github.com/danielhkuo/roomsync/models"
)

// API is the slice of the backend the sync service needs.
type API interface {
	SaveAllocations(ctx context.Context, batch []models.Allocation) (int, error)
}

// ReportWriter renders a printable report for a synced batch.
type ReportWriter interface {
	Write(batch []models.Allocation) (path string, err error)
}

// Policy controls the retry loop. Backoff is the fixed wait between
// attempts; MaxAttempts of 0 retries until the context is cancelled.
type Policy struct {
	Backoff     time.Duration
	MaxAttempts int
}

// DefaultPolicy matches the deployed behavior: retry indefinitely with
// a short fixed backoff, cancellable by the operator.
var DefaultPolicy = Policy{Backoff: 3 * time.Second}

// Service uploads the pending ledger and clears it on confirmed
// success.
type Service struct {
	api     API
	ledger  *ledger.Ledger
	reports ReportWriter // nil disables report generation
	policy  Policy

	// OnRetry, when set, receives each failed attempt's classified
	// error for the status channel. Retried errors are status, not
	// terminal failures.
	OnRetry func(attempt int, err error)
}

func New(api API, led *ledger.Ledger, reports ReportWriter, policy Policy) *Service {
	if policy.Backoff <= 0 {
		policy.Backoff = DefaultPolicy.Backoff
	}
	return &Service{api: api, ledger: led, reports: reports, policy: policy}
}

// Outcome describes a finished sync.
type Outcome struct {
	NothingToSync bool
	Synced        int    // pre-sync ledger size on success
	Attempts      int    // upload attempts made
	ReportPath    string // empty when no report was written
}

// SyncAll uploads the entire pending ledger as one batch.
//
// An empty ledger is a successful no-op. On confirmed persistence the
// report is written (best-effort) and the ledger cleared; on any
// attempt failure the same batch is retried after the backoff until
// the policy or the context stops the loop. The ledger is never
// partially cleared.
func (s *Service) SyncAll(ctx context.Context) (Outcome, error) {
	batch, err := s.ledger.All()
	if err != nil {
		return Outcome{}, err
	}
	if len(batch) == 0 {
		return Outcome{NothingToSync: true}, nil
	}

	var out Outcome
	for {
		out.Attempts++

		_, err := s.api.SaveAllocations(ctx, batch)
		if err == nil {
			out.Synced = len(batch)
			out.ReportPath = s.writeReport(batch)

			if err := s.ledger.Clear(); err != nil {
				// The server has the batch; losing the clear means a
				// duplicate upload later, which the upsert absorbs.
				slog.Error("ledger clear failed after confirmed sync", "error", err)
				return out, err
			}
			slog.Info("sync complete", "count", out.Synced, "attempts", out.Attempts)
			return out, nil
		}

		slog.Warn("sync attempt failed",
			"attempt", out.Attempts,
			"kind", classify(err),
			"error", err,
		)
		if s.OnRetry != nil {
			s.OnRetry(out.Attempts, err)
		}

		if s.policy.MaxAttempts > 0 && out.Attempts >= s.policy.MaxAttempts {
			return out, err
		}

		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case <-time.After(s.policy.Backoff):
		}
	}
}

func (s *Service) writeReport(batch []models.Allocation) string {
	if s.reports == nil {
		return ""
	}
	path, err := s.reports.Write(batch)
	if err != nil {
		// Persistence is the durability boundary, not the printout.
		slog.Error("report generation failed", "error", err)
		return ""
	}
	return path
}

func classify(err error) string {
	var timeoutErr *models.SyncTimeoutError
	var transportErr *models.SyncTransportError
	var serverErr *models.SyncServerError
	switch {
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &transportErr):
		return "network"
	case errors.As(err, &serverErr):
		return "server"
	default:
		return "unknown"
	}
}
