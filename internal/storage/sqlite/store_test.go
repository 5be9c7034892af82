package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/lifetrack/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"), "lifetracker_data")
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func snapshotAt(rev int64, at time.Time) storage.Snapshot {
	return storage.Snapshot{
		Key:       "lifetracker_data",
		Revision:  rev,
		Data:      []byte(fmt.Sprintf(`{"revision":%d}`, rev)),
		UpdatedAt: at,
	}
}

func TestLoadBeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"), "k")
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestLoadSnapshotEmpty(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.LoadSnapshot(context.Background()); !errors.Is(err, storage.ErrNoSnapshot) {
		t.Errorf("LoadSnapshot() error = %v, want ErrNoSnapshot", err)
	}
}

func TestCommitAndLoad(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	now := time.Date(2026, 3, 18, 9, 30, 0, 123, time.UTC)

	if err := store.Commit(ctx, snapshotAt(1, now), false); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if err := store.Commit(ctx, snapshotAt(2, now.Add(time.Second)), true); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap.Revision != 2 || string(snap.Data) != `{"revision":2}` {
		t.Errorf("snapshot = rev %d data %s, want rev 2", snap.Revision, snap.Data)
	}
	if !snap.UpdatedAt.Equal(now.Add(time.Second)) {
		t.Errorf("UpdatedAt = %v", snap.UpdatedAt)
	}

	count, err := store.PendingCount(ctx)
	if err != nil {
		t.Fatalf("PendingCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("PendingCount() = %d, want 1 (first commit was not enqueued)", count)
	}
}

func TestReopenKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(path, "k")
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Commit(ctx, snapshotAt(3, time.Now()), false); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	store.Close()

	reopened := NewStore(path, "k")
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()
	snap, err := reopened.LoadSnapshot(ctx)
	if err != nil || snap.Revision != 3 {
		t.Errorf("LoadSnapshot() = rev %d, err %v; want rev 3", snap.Revision, err)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	base := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)

	for rev := int64(1); rev <= 3; rev++ {
		if err := store.Commit(ctx, snapshotAt(rev, base.Add(time.Duration(rev)*time.Second)), true); err != nil {
			t.Fatalf("Commit(%d) error = %v", rev, err)
		}
	}

	pending, err := store.Pending(ctx, base.Add(time.Minute), 10)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("Pending() returned %d entries, want 3", len(pending))
	}
	for i, e := range pending {
		if e.Revision != int64(i+1) {
			t.Errorf("entry %d revision = %d, want %d", i, e.Revision, i+1)
		}
	}

	// Entries are not due before they were created.
	early, err := store.Pending(ctx, base, 10)
	if err != nil || len(early) != 0 {
		t.Errorf("Pending(before) = %d entries, err %v; want 0", len(early), err)
	}

	retryAt := base.Add(time.Hour)
	if err := store.MarkFailed(ctx, 3, 1, retryAt, "connection refused"); err != nil {
		t.Fatalf("MarkFailed() error = %v", err)
	}
	if got, _ := store.Pending(ctx, base.Add(time.Minute), 10); len(got) != 0 {
		t.Errorf("failed entries should wait for their retry time, got %d", len(got))
	}
	later, err := store.Pending(ctx, retryAt, 10)
	if err != nil || len(later) != 3 {
		t.Fatalf("Pending(retryAt) = %d entries, err %v; want 3", len(later), err)
	}
	if later[2].Attempts != 1 || later[2].LastError != "connection refused" {
		t.Errorf("failure not recorded: %+v", later[2])
	}

	if err := store.Acknowledge(ctx, 2); err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}
	remaining, _ := store.Pending(ctx, retryAt, 10)
	if len(remaining) != 1 || remaining[0].Revision != 3 {
		t.Errorf("after Acknowledge(2) got %+v, want only revision 3", remaining)
	}
}

func TestMigrationStatus(t *testing.T) {
	store := setupTestStore(t)
	st, err := store.MigrationStatus(context.Background())
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if st.Current != st.Latest || len(st.Pending) != 0 {
		t.Errorf("fresh store should be fully migrated, got %+v", st)
	}
}
