// Package syncer drains the local outbox into the remote mirror.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/remote"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/utils"
)

const (
	DefaultInterval    = constants.SyncDefaultTick
	DefaultMaxAttempts = constants.SyncMaxAttempts
	BaseBackoff        = constants.SyncBaseBackoff
	MaxBackoff         = constants.SyncMaxBackoff

	batchSize = constants.SyncBatchSize
)

// AdoptFunc installs a newer remote snapshot as the local state.
type AdoptFunc func(ctx context.Context, snap remote.Snapshot) error

type Options struct {
	UserID      string
	Interval    time.Duration
	MaxAttempts int
	Clock       utils.Clock
	// Adopt is called by Reconcile when the mirror is ahead. Nil disables pulling.
	Adopt AdoptFunc
}

// Syncer pushes outbox entries to a Mirror. Only the newest pending revision is pushed
// since every entry carries the full snapshot.
type Syncer struct {
	local  storage.Provider
	mirror remote.Mirror
	opts   Options

	mu      sync.Mutex // serializes Flush
	trigger chan struct{}
}

func New(local storage.Provider, mirror remote.Mirror, opts Options) *Syncer {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Syncer{
		local:   local,
		mirror:  mirror,
		opts:    opts,
		trigger: make(chan struct{}, 1),
	}
}

// Backoff returns the delay after the attempts-th failure: BaseBackoff doubled per
// earlier failure, capped at MaxBackoff.
func Backoff(attempts int) time.Duration {
	if attempts < 1 {
		return BaseBackoff
	}
	d := BaseBackoff
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= MaxBackoff {
			return MaxBackoff
		}
	}
	return d
}

// Notify asks a running syncer to flush soon. It never blocks.
func (s *Syncer) Notify() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run flushes on every tick and on Notify until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-s.trigger:
		}
		if _, err := s.Flush(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Remote sync failed", "error", err)
		}
	}
}

// Flush pushes due entries until the outbox has nothing left that is due. It returns the
// highest revision the mirror acknowledged, or 0.
func (s *Syncer) Flush(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var acked int64
	for {
		if err := ctx.Err(); err != nil {
			return acked, err
		}
		entries, err := s.local.Pending(ctx, s.opts.Clock(), batchSize)
		if err != nil {
			return acked, err
		}
		entry, ok := s.newestLive(entries)
		if !ok {
			return acked, nil
		}

		if err := s.push(ctx, entry); err != nil {
			return acked, err
		}
		acked = entry.Revision
		if len(entries) < batchSize {
			return acked, nil
		}
	}
}

func (s *Syncer) newestLive(entries []storage.OutboxEntry) (storage.OutboxEntry, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Attempts >= s.opts.MaxAttempts {
			logger.Warn("Outbox entry exceeded max attempts",
				"revision", e.Revision, "attempts", e.Attempts, "last_error", e.LastError)
			continue
		}
		return e, true
	}
	return storage.OutboxEntry{}, false
}

func (s *Syncer) push(ctx context.Context, e storage.OutboxEntry) error {
	applied, err := s.mirror.Push(ctx, s.opts.UserID, e.Revision, e.Payload)
	if err != nil {
		attempts := e.Attempts + 1
		next := s.opts.Clock().Add(Backoff(attempts))
		if markErr := s.local.MarkFailed(ctx, e.Revision, attempts, next, err.Error()); markErr != nil {
			return errors.Join(err, markErr)
		}
		logger.Debug("Push failed, backing off",
			"revision", e.Revision, "attempts", attempts, "next_attempt_at", next)
		return fmt.Errorf("failed to push revision %d: %w", e.Revision, err)
	}
	if !applied {
		// The mirror already holds this revision or a newer one.
		logger.Debug("Mirror is ahead, dropping local revision", "revision", e.Revision)
	}
	return s.local.Acknowledge(ctx, e.Revision)
}

// Reconcile pushes pending local changes and pulls the remote snapshot concurrently. When
// the remote revision is newer than the local one it is handed to Adopt.
func (s *Syncer) Reconcile(ctx context.Context) (adopted bool, err error) {
	var (
		pulled   remote.Snapshot
		havePull bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Flush(gctx)
		return err
	})
	if s.opts.Adopt != nil {
		g.Go(func() error {
			snap, err := s.mirror.Pull(gctx, s.opts.UserID)
			if errors.Is(err, remote.ErrNoRemote) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to pull remote snapshot: %w", err)
			}
			pulled, havePull = snap, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}
	if !havePull {
		return false, nil
	}

	local, err := s.local.LoadSnapshot(ctx)
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
	case err != nil:
		return false, err
	case local.Revision >= pulled.Revision:
		return false, nil
	}

	logger.Info("Adopting newer remote snapshot", "revision", pulled.Revision, "local", local.Revision)
	if err := s.opts.Adopt(ctx, pulled); err != nil {
		return false, fmt.Errorf("failed to adopt remote snapshot: %w", err)
	}
	return true, nil
}
