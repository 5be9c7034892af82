package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "data"), "lifetracker_data")
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return store
}

func snapshot(rev int64, at time.Time) Snapshot {
	data := []byte(`{"revision":` + strconv.FormatInt(rev, 10) + `,"updatedAt":"` + at.UTC().Format(time.RFC3339Nano) + `"}`)
	return Snapshot{Key: "lifetracker_data", Revision: rev, Data: data, UpdatedAt: at}
}

func TestJSONStoreLoadSnapshotMissing(t *testing.T) {
	store := setupJSONStore(t)
	if _, err := store.LoadSnapshot(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("LoadSnapshot() error = %v, want ErrNoSnapshot", err)
	}
}

func TestJSONStoreLoadUninitialized(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "nope"), "k")
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestJSONStoreCommit(t *testing.T) {
	ctx := context.Background()
	store := setupJSONStore(t)
	now := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)

	if err := store.Commit(ctx, snapshot(1, now), true); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if err := store.Commit(ctx, snapshot(2, now.Add(time.Second)), true); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap.Revision != 2 {
		t.Errorf("Revision = %d, want 2", snap.Revision)
	}
	if !snap.UpdatedAt.Equal(now.Add(time.Second)) {
		t.Errorf("UpdatedAt = %v", snap.UpdatedAt)
	}

	info, err := os.Stat(store.GetConfigPath())
	if err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("snapshot mode = %v, want 0600", info.Mode().Perm())
	}

	pending, err := store.Pending(ctx, now.Add(time.Minute), 10)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 2 || pending[0].Revision != 1 || pending[1].Revision != 2 {
		t.Errorf("Pending() = %+v, want revisions 1,2", pending)
	}
}

func TestJSONStoreOutbox(t *testing.T) {
	ctx := context.Background()
	store := setupJSONStore(t)
	now := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)

	for rev := int64(1); rev <= 3; rev++ {
		if err := store.Commit(ctx, snapshot(rev, now), true); err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
	}

	retry := now.Add(10 * time.Minute)
	if err := store.MarkFailed(ctx, 2, 1, retry, "timeout"); err != nil {
		t.Fatalf("MarkFailed() error = %v", err)
	}
	due, _ := store.Pending(ctx, now, 10)
	if len(due) != 1 || due[0].Revision != 3 {
		t.Errorf("only revision 3 should be due, got %+v", due)
	}

	if err := store.Acknowledge(ctx, 3); err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}
	if n, _ := store.PendingCount(ctx); n != 0 {
		t.Errorf("PendingCount() = %d, want 0", n)
	}
}

func TestJSONStoreCommitWithoutOutbox(t *testing.T) {
	ctx := context.Background()
	store := setupJSONStore(t)
	if err := store.Commit(ctx, snapshot(1, time.Now()), false); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if n, _ := store.PendingCount(ctx); n != 0 {
		t.Errorf("PendingCount() = %d, want 0", n)
	}
}

func TestReadHeader(t *testing.T) {
	rev, at, err := ReadHeader([]byte(`{"revision":42,"updatedAt":"2026-03-18T09:00:00Z","books":[]}`))
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	if rev != 42 || at.Year() != 2026 {
		t.Errorf("ReadHeader() = %d, %v", rev, at)
	}
	if _, _, err := ReadHeader([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestWatcherDebouncesExternalWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lifetracker_data.json")
	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	fired := make(chan struct{}, 10)
	w, err := NewWatcher(path, 50*time.Millisecond, func(context.Context) {
		calls.Add(1)
		fired <- struct{}{}
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`{"revision":1}`), 0600); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire")
	}
	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("onChange called %d times, want 1", got)
	}
}
