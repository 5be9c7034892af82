package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// OutboxFile is the JSON backend's outbox, kept next to the snapshot.
const OutboxFile = "outbox.json"

// JSONStore keeps the snapshot as <dir>/<key>.json and the outbox as <dir>/outbox.json.
type JSONStore struct {
	mu  sync.Mutex
	dir string
	key string
}

var _ Provider = (*JSONStore)(nil)

func NewJSONStore(dir, key string) *JSONStore {
	return &JSONStore{
		dir: dir,
		key: key,
	}
}

func (s *JSONStore) snapshotPath() string {
	return filepath.Join(s.dir, s.key+".json")
}

func (s *JSONStore) outboxPath() string {
	return filepath.Join(s.dir, OutboxFile)
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

func (s *JSONStore) Load() error {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return ErrNotInitialized
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.snapshotPath()
}

func (s *JSONStore) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	rev, updatedAt, err := ReadHeader(data)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Key: s.key, Revision: rev, Data: data, UpdatedAt: updatedAt}, nil
}

func (s *JSONStore) Commit(ctx context.Context, snap Snapshot, enqueue bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		previous []OutboxEntry
		err      error
	)
	if enqueue {
		if previous, err = s.readOutbox(); err != nil {
			return err
		}
		next := append(append([]OutboxEntry(nil), previous...), NewOutboxEntry(uuid.NewString(), snap))
		if err := s.writeOutbox(next); err != nil {
			return err
		}
	}

	if err := writeFileAtomic(s.snapshotPath(), snap.Data); err != nil {
		if enqueue {
			// Keep outbox and snapshot consistent.
			_ = s.writeOutbox(previous)
		}
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (s *JSONStore) Pending(ctx context.Context, now time.Time, limit int) ([]OutboxEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readOutbox()
	if err != nil {
		return nil, err
	}
	var due []OutboxEntry
	for _, e := range entries {
		if !e.NextAttemptAt.After(now) {
			due = append(due, e)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].Revision < due[j].Revision })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *JSONStore) Acknowledge(ctx context.Context, revision int64) error {
	return s.updateOutbox(func(entries []OutboxEntry) []OutboxEntry {
		kept := entries[:0]
		for _, e := range entries {
			if e.Revision > revision {
				kept = append(kept, e)
			}
		}
		return kept
	})
}

func (s *JSONStore) MarkFailed(ctx context.Context, revision int64, attempts int, next time.Time, reason string) error {
	return s.updateOutbox(func(entries []OutboxEntry) []OutboxEntry {
		for i := range entries {
			if entries[i].Revision <= revision {
				entries[i].Attempts = attempts
				entries[i].NextAttemptAt = next
				entries[i].LastError = reason
			}
		}
		return entries
	})
}

func (s *JSONStore) PendingCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readOutbox()
	return len(entries), err
}

func (s *JSONStore) updateOutbox(fn func([]OutboxEntry) []OutboxEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readOutbox()
	if err != nil {
		return err
	}
	return s.writeOutbox(fn(entries))
}

func (s *JSONStore) readOutbox() ([]OutboxEntry, error) {
	data, err := os.ReadFile(s.outboxPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read outbox: %w", err)
	}
	var entries []OutboxEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse outbox: %w", err)
	}
	return entries, nil
}

func (s *JSONStore) writeOutbox(entries []OutboxEntry) error {
	if entries == nil {
		entries = []OutboxEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize outbox: %w", err)
	}
	if err := writeFileAtomic(s.outboxPath(), data); err != nil {
		return fmt.Errorf("failed to write outbox: %w", err)
	}
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
