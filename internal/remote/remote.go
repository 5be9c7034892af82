// Package remote defines the mirror that receives the full state snapshot for a user.
package remote

import (
	"context"
	"errors"
	"time"
)

// ErrNoRemote is returned by Pull when the mirror holds nothing for the user.
var ErrNoRemote = errors.New("no remote snapshot for user")

// Snapshot is the mirrored state of one user.
type Snapshot struct {
	UserID    string
	Revision  int64
	Data      []byte
	UpdatedAt time.Time
}

// Mirror is a remote store keyed by user id. Push only replaces a snapshot with a
// strictly newer revision and reports whether it did.
type Mirror interface {
	Init() error
	Push(ctx context.Context, userID string, revision int64, payload []byte) (bool, error)
	Pull(ctx context.Context, userID string) (Snapshot, error)
	Close() error
	GetConfigPath() string
}
