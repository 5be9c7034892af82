package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestMigrations(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func TestNewRunnerRejectsUnknownDriver(t *testing.T) {
	db := setupTestDB(t)
	if _, err := NewRunner(db, fstest.MapFS{}, Driver("oracle")); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestApplyMigrations(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	fsys := setupTestMigrations(map[string]string{
		"001_init.sql": `-- first table
CREATE TABLE users (id TEXT PRIMARY KEY);
CREATE INDEX idx_users_id ON users(id);`,
		"002_posts.sql": "CREATE TABLE posts (id TEXT PRIMARY KEY, user_id TEXT);",
		"README.md":     "ignored",
	})

	runner, err := NewRunner(db, fsys, DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	var logs []string
	applied, err := runner.ApplyMigrations(ctx, func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	applied, err = runner.ApplyMigrations(ctx, nil)
	if err != nil || applied != 0 {
		t.Errorf("second run applied %d, err %v; want 0, nil", applied, err)
	}
}

func TestApplyMigrationsRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	fsys := setupTestMigrations(map[string]string{
		"001_init.sql":   "CREATE TABLE users (id TEXT PRIMARY KEY);",
		"002_broken.sql": "CREATE TABLE posts (id TEXT PRIMARY KEY); CREATE TABLE oops (;",
	})

	runner, err := NewRunner(db, fsys, DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	applied, err := runner.ApplyMigrations(ctx, nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}

	version, _ := runner.GetCurrentVersion(ctx)
	if version != 1 {
		t.Errorf("version = %d, want 1 after rollback", version)
	}
	var n int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE name = 'posts'").Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if n != 0 {
		t.Error("posts table should have been rolled back")
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	runner, err := NewRunner(db, setupTestMigrations(map[string]string{
		"001_init.sql": "CREATE TABLE users (id TEXT PRIMARY KEY);",
	}), DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	if err := runner.SetVersion(ctx, 5); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	err = runner.ValidateVersion(ctx)
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() error = %v, want newer-schema error", err)
	}
}

func TestReadMigrationFilesInvalidNames(t *testing.T) {
	db := setupTestDB(t)
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"no underscore", map[string]string{"001.sql": ""}},
		{"non numeric", map[string]string{"abc_init.sql": ""}},
		{"zero version", map[string]string{"000_init.sql": ""}},
		{"duplicate", map[string]string{"001_a.sql": "", "1_b.sql": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, err := NewRunner(db, setupTestMigrations(tt.files), DriverSQLite)
			if err != nil {
				t.Fatalf("NewRunner() error = %v", err)
			}
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	script := `-- header
CREATE TABLE a (id INT);

  -- inline comment line
CREATE TABLE b (id INT);
`
	got := SplitStatements(script)
	if len(got) != 2 {
		t.Fatalf("got %d statements, want 2: %q", len(got), got)
	}
	if got[0] != "CREATE TABLE a (id INT)" || got[1] != "CREATE TABLE b (id INT)" {
		t.Errorf("unexpected statements: %q", got)
	}
}
