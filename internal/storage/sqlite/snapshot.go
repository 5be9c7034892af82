package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/lifetrack/internal/storage"
)

func (s *Store) LoadSnapshot(ctx context.Context) (storage.Snapshot, error) {
	var (
		snap      storage.Snapshot
		data      string
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT key, revision, data, updated_at FROM snapshots WHERE key = ?", s.key,
	).Scan(&snap.Key, &snap.Revision, &data, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Snapshot{}, storage.ErrNoSnapshot
		}
		return storage.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	snap.Data = []byte(data)
	if snap.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return storage.Snapshot{}, fmt.Errorf("invalid snapshot timestamp %q: %w", updatedAt, err)
	}
	return snap, nil
}

func (s *Store) Commit(ctx context.Context, snap storage.Snapshot, enqueue bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (key, revision, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			revision = excluded.revision,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		s.key, snap.Revision, string(snap.Data), formatTime(snap.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if enqueue {
		entry := storage.NewOutboxEntry(uuid.NewString(), snap)
		_, err = tx.ExecContext(ctx, `
			INSERT INTO outbox (id, revision, payload, attempts, last_error, next_attempt_at, created_at)
			VALUES (?, ?, ?, 0, '', ?, ?)`,
			entry.ID, entry.Revision, string(entry.Payload), formatTime(entry.NextAttemptAt), formatTime(entry.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to enqueue snapshot: %w", err)
		}
	}

	return tx.Commit()
}
