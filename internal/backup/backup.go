// Package backup keeps rotating copies of the local snapshot store.
//
// SQLite databases are copied with VACUUM INTO; the JSON backend's snapshot file is
// copied as is. Each backup is checked to hold a readable state document.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/utils"
)

const timestampLayout = "20060102-150405"

var ErrNoSource = errors.New("nothing to back up")

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
	// Revision is the state revision held by the backup, or -1 when it could not be read.
	Revision int64
}

type Manager struct {
	source    string
	backupDir string
	suffix    string
	clock     utils.Clock
}

// NewManager manages backups of source, which is either the SQLite database or the JSON
// backend's snapshot file. Backups go to a "backups" directory next to it.
func NewManager(source string) *Manager {
	suffix := constants.BackupFileSuffix
	if filepath.Ext(source) == ".json" {
		suffix = ".json"
	}
	return &Manager{
		source:    source,
		backupDir: filepath.Join(filepath.Dir(source), constants.BackupDirName),
		suffix:    suffix,
		clock:     time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.backupDir
}

func (m *Manager) isJSON() bool {
	return m.suffix == ".json"
}

// Create writes a new backup and drops the oldest beyond constants.MaxBackups.
func (m *Manager) Create() (Info, error) {
	info, err := m.create()
	if err != nil {
		return Info{}, err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return info, nil
}

func (m *Manager) create() (Info, error) {
	if _, err := os.Stat(m.source); errors.Is(err, os.ErrNotExist) {
		return Info{}, fmt.Errorf("%w: %s does not exist", ErrNoSource, m.source)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return Info{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.clock()
	path, err := m.uniquePath(now)
	if err != nil {
		return Info{}, err
	}

	if m.isJSON() {
		err = copyFile(m.source, path)
	} else {
		err = vacuumInto(m.source, path)
	}
	if err != nil {
		return Info{}, fmt.Errorf("failed to back up %s: %w", m.source, err)
	}

	logger.Info("Created backup", "path", path)
	return m.describe(path, now)
}

func (m *Manager) uniquePath(now time.Time) (string, error) {
	base := constants.BackupFilePrefix + now.Format(timestampLayout)
	path := filepath.Join(m.backupDir, base+m.suffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d%s", base, n, m.suffix))
	}
}

func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		return fmt.Errorf("VACUUM INTO failed: %w", err)
	}
	return nil
}

func (m *Manager) describe(path string, ts time.Time) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	info := Info{Path: path, Timestamp: ts, Size: st.Size(), Revision: -1}
	if rev, err := m.revision(path); err == nil {
		info.Revision = rev
	}
	return info, nil
}

// parseName extracts the timestamp from a backup file name, ignoring a "-N" counter.
func (m *Manager) parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.suffix)
	if i := strings.LastIndex(stamp, "-"); i > 0 && len(stamp[i+1:]) != 6 {
		if _, err := strconv.Atoi(stamp[i+1:]); err == nil {
			stamp = stamp[:i]
		}
	}
	ts, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// List returns the backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := m.parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := m.describe(filepath.Join(m.backupDir, entry.Name()), ts)
		if err != nil {
			continue
		}
		backups = append(backups, info)
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the source with backupPath after saving the current source as a backup.
// It returns the path of that pre-restore backup, or "" when there was no source.
func (m *Manager) Restore(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if _, err := m.revision(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var saved string
	if _, err := os.Stat(m.source); err == nil {
		// Not rotated, so the backup being restored cannot be removed.
		info, err := m.create()
		if err != nil {
			return "", fmt.Errorf("failed to back up current data before restore: %w", err)
		}
		saved = info.Path
	}

	tempPath := m.source + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.source); err != nil {
		if rmErr := os.Remove(tempPath); rmErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", rmErr)
		}
		return "", fmt.Errorf("failed to restore: %w", err)
	}
	// A stale WAL would be replayed over the restored database.
	if !m.isJSON() {
		for _, ext := range []string{"-wal", "-shm"} {
			_ = os.Remove(m.source + ext)
		}
	}

	logger.Info("Restored backup", "backup", backupPath, "saved", saved)
	return saved, nil
}

// revision reads the state revision held by a backup file.
func (m *Manager) revision(path string) (int64, error) {
	var data []byte
	if m.isJSON() {
		raw, err := os.ReadFile(path)
		if err != nil {
			return 0, err
		}
		data = raw
	} else {
		db, err := sql.Open("sqlite", path+"?mode=ro")
		if err != nil {
			return 0, err
		}
		defer db.Close()
		var raw string
		err = db.QueryRow("SELECT data FROM snapshots WHERE key = ?", constants.StorageKey).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		data = []byte(raw)
	}
	rev, _, err := storage.ReadHeader(data)
	return rev, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
