package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoSnapshot is returned by LoadSnapshot before the first commit.
	ErrNoSnapshot = errors.New("no snapshot stored")
	// ErrNotInitialized is returned when the backing store was never created.
	ErrNotInitialized = errors.New("storage not initialized, run 'lifetrack init' first")
)

// Snapshot is the serialized state document under one storage key.
type Snapshot struct {
	Key       string
	Revision  int64
	Data      []byte
	UpdatedAt time.Time
}

// OutboxEntry is a snapshot revision waiting to be pushed to the remote mirror.
type OutboxEntry struct {
	ID            string    `json:"id"`
	Revision      int64     `json:"revision"`
	Payload       []byte    `json:"payload"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"lastError,omitempty"`
	NextAttemptAt time.Time `json:"nextAttemptAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Provider is the local persistence backend. The local snapshot is the source of truth;
// the outbox feeds the remote mirror.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Snapshot
	LoadSnapshot(ctx context.Context) (Snapshot, error)
	// Commit writes the snapshot and, when enqueue is set, an outbox entry for the same
	// revision. Either both are stored or neither is.
	Commit(ctx context.Context, snap Snapshot, enqueue bool) error

	// Outbox
	// Pending returns entries due at or before now, oldest revision first.
	Pending(ctx context.Context, now time.Time, limit int) ([]OutboxEntry, error)
	// Acknowledge removes every entry up to revision once the mirror holds it.
	Acknowledge(ctx context.Context, revision int64) error
	// MarkFailed records a failed push for every entry up to revision.
	MarkFailed(ctx context.Context, revision int64, attempts int, next time.Time, reason string) error
	PendingCount(ctx context.Context) (int, error)

	// Utils
	GetConfigPath() string
}

// NewOutboxEntry builds a due-now outbox entry for a snapshot.
func NewOutboxEntry(id string, snap Snapshot) OutboxEntry {
	return OutboxEntry{
		ID:            id,
		Revision:      snap.Revision,
		Payload:       snap.Data,
		NextAttemptAt: snap.UpdatedAt,
		CreatedAt:     snap.UpdatedAt,
	}
}

// header is the part of a state document the storage layer reads.
type header struct {
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReadHeader extracts the revision and update time embedded in a state document.
func ReadHeader(data []byte) (int64, time.Time, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	return h.Revision, h.UpdatedAt, nil
}
