package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	driver "github.com/go-sql-driver/mysql"

	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/migration"
	"github.com/julianstephens/lifetrack/internal/remote"
	"github.com/julianstephens/lifetrack/migrations"
)

var (
	ErrInvalidDSN          = errors.New("invalid MySQL DSN")
	ErrEmbeddedCredentials = errors.New("DSN must not contain a password")
)

type Store struct {
	cfg *driver.Config
	db  *sql.DB
}

var _ remote.Mirror = (*Store)(nil)

// New parses dsn and forces the options the mirror relies on.
func New(dsn string) (*Store, error) {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDSN, err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return &Store{cfg: cfg}, nil
}

// ValidateDSN checks the DSN format and rejects embedded passwords, which belong in the OS keyring.
func ValidateDSN(dsn string) error {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDSN, err)
	}
	if cfg.DBName == "" {
		return fmt.Errorf("%w: database name is required", ErrInvalidDSN)
	}
	if cfg.Passwd != "" {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *Store) Init() error {
	connector, err := driver.NewConnector(s.cfg)
	if err != nil {
		return fmt.Errorf("failed to configure database: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db

	subFS, err := fs.Sub(migrations.FS, "mysql")
	if err != nil {
		return fmt.Errorf("failed to access mysql migrations: %w", err)
	}
	runner, err := migration.NewRunner(s.db, subFS, migration.DriverMySQL)
	if err != nil {
		return err
	}
	if _, err := runner.ApplyMigrations(context.Background(), func(msg string) {
		logger.Debug(msg, "mirror", "mysql")
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Push(ctx context.Context, userID string, revision int64, payload []byte) (bool, error) {
	// Assignments run left to right, so revision is compared before it is overwritten.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_snapshots (user_id, revision, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			data = IF(VALUES(revision) > revision, VALUES(data), data),
			updated_at = IF(VALUES(revision) > revision, VALUES(updated_at), updated_at),
			revision = IF(VALUES(revision) > revision, VALUES(revision), revision)`,
		userID, revision, string(payload), time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to push snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	// 1 inserted, 2 updated, 0 unchanged.
	return n > 0, nil
}

func (s *Store) Pull(ctx context.Context, userID string) (remote.Snapshot, error) {
	snap := remote.Snapshot{UserID: userID}
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT revision, data, updated_at FROM user_snapshots WHERE user_id = ?", userID,
	).Scan(&snap.Revision, &data, &snap.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return remote.Snapshot{}, remote.ErrNoRemote
		}
		return remote.Snapshot{}, fmt.Errorf("failed to pull snapshot: %w", err)
	}
	snap.Data = []byte(data)
	return snap, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return "mysql://" + s.cfg.Addr + "/" + s.cfg.DBName
}
