package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/lifetrack/internal/storage"
)

func (s *Store) Pending(ctx context.Context, now time.Time, limit int) ([]storage.OutboxEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, revision, payload, attempts, last_error, next_attempt_at, created_at
		FROM outbox
		WHERE next_attempt_at <= ?
		ORDER BY revision
		LIMIT ?`, formatTime(now), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox: %w", err)
	}
	defer rows.Close()

	var entries []storage.OutboxEntry
	for rows.Next() {
		var (
			e                 storage.OutboxEntry
			payload           string
			nextAt, createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Revision, &payload, &e.Attempts, &e.LastError, &nextAt, &createdAt); err != nil {
			return nil, err
		}
		e.Payload = []byte(payload)
		if e.NextAttemptAt, err = parseTime(nextAt); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Acknowledge(ctx context.Context, revision int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM outbox WHERE revision <= ?", revision); err != nil {
		return fmt.Errorf("failed to acknowledge outbox through revision %d: %w", revision, err)
	}
	return nil
}

func (s *Store) MarkFailed(ctx context.Context, revision int64, attempts int, next time.Time, reason string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE outbox SET attempts = ?, next_attempt_at = ?, last_error = ?
		WHERE revision <= ?`, attempts, formatTime(next), reason, revision)
	if err != nil {
		return fmt.Errorf("failed to record outbox failure: %w", err)
	}
	return nil
}

func (s *Store) PendingCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM outbox").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count outbox: %w", err)
	}
	return n, nil
}
