// Package store is the facade every consumer reads and mutates life-tracker state through.
//
// A Store owns one in-memory State. Each mutation runs against a copy, is validated,
// persisted through the storage provider (snapshot plus outbox entry) and only then
// replaces the live state. Subscribers are notified after the lock is released.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/protection"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/utils"
)

// ErrNotFound is returned by update and delete operations for an unknown id.
var ErrNotFound = errors.New("not found")

// IgnoreNotFound returns nil for ErrNotFound and err otherwise.
func IgnoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// errUnchanged aborts a mutation that has nothing to commit.
var errUnchanged = errors.New("unchanged")

func ignoreUnchanged(err error) error {
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return err
}

type Option func(*Store)

// WithClock sets the source of "now". Dates are taken in the clock's location.
func WithClock(c utils.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithOutbox controls whether commits enqueue an entry for the remote mirror.
func WithOutbox(enabled bool) Option {
	return func(s *Store) { s.enqueue = enabled }
}

// WithFilter turns the content filter on free text fields on or off.
func WithFilter(enabled bool) Option {
	return func(s *Store) { s.filter = enabled }
}

// WithNotifier sets the accountability partner hook for blocked content.
func WithNotifier(fn protection.NotifyFunc) Option {
	return func(s *Store) { s.notifier = fn }
}

// WithCommitHook registers fn to run after every commit that enqueued an outbox entry.
func WithCommitHook(fn func()) Option {
	return func(s *Store) { s.onCommit = fn }
}

type alert struct {
	partner models.AccountabilityPartner
	attempt models.BlockedAttempt
}

type Store struct {
	mu       sync.RWMutex
	provider storage.Provider
	state    models.State

	clock    utils.Clock
	enqueue  bool
	filter   bool
	notifier protection.NotifyFunc
	onCommit func()
	// alerts collects partner notifications raised by the mutation in progress.
	alerts []alert

	subMu   sync.Mutex
	subs    map[int]func(models.State)
	nextSub int
}

func New(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		clock:    time.Now,
		enqueue:  true,
		filter:   true,
		notifier: protection.LogNotifier,
		subs:     make(map[int]func(models.State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = models.DefaultState(s.clock())
	return s
}

// Open creates a Store and loads the persisted snapshot.
func Open(ctx context.Context, provider storage.Provider, opts ...Option) (*Store, error) {
	s := New(provider, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory state with the persisted snapshot. A missing snapshot
// yields the default state. A snapshot that cannot be parsed is logged and also
// replaced by the default state.
func (s *Store) Load(ctx context.Context) error {
	st, err := s.readSnapshot(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

func (s *Store) readSnapshot(ctx context.Context) (models.State, error) {
	snap, err := s.provider.LoadSnapshot(ctx)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return models.DefaultState(s.clock()), nil
	}
	if err != nil {
		return models.State{}, err
	}
	st, err := models.Unmarshal(snap.Data)
	if err != nil {
		logger.Warn("Discarding unreadable snapshot", "revision", snap.Revision, "error", err)
		st = models.DefaultState(s.clock())
		// Keep revisions monotonic so the next commit supersedes the bad one.
		st.Revision = snap.Revision
	}
	return st, nil
}

// Reload re-reads the snapshot after an external change and notifies subscribers when
// the revision moved.
func (s *Store) Reload(ctx context.Context) error {
	st, err := s.readSnapshot(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if st.Revision == s.state.Revision {
		s.mu.Unlock()
		return nil
	}
	s.state = st
	published := st.Clone()
	s.mu.Unlock()

	logger.Debug("Reloaded state", "revision", st.Revision)
	s.publish(published)
	return nil
}

// Replace installs a complete state document, keeping its revision. It is used to adopt
// a newer remote snapshot and is not mirrored back.
func (s *Store) Replace(ctx context.Context, data []byte) error {
	st, err := models.Unmarshal(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if err := s.commitLocked(ctx, st, false); err != nil {
		s.mu.Unlock()
		return err
	}
	published := st.Clone()
	s.mu.Unlock()

	s.publish(published)
	return nil
}

// Seed persists the current state when nothing has been committed yet, so a freshly
// initialized backend holds a snapshot. It never enqueues.
func (s *Store) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Revision != 0 {
		return nil
	}
	st := s.state
	st.UpdatedAt = s.clock().UTC()
	return s.commitLocked(ctx, st, false)
}

// Reset replaces everything with the default state at a revision above floor and the
// current revision, so the wipe supersedes older local and mirrored snapshots.
func (s *Store) Reset(ctx context.Context, floor int64) error {
	s.mu.Lock()
	s.alerts = nil
	now := s.clock()
	st := models.DefaultState(now)
	st.Revision = max(floor, s.state.Revision) + 1
	st.UpdatedAt = now.UTC()
	if err := s.commitLocked(ctx, st, s.enqueue); err != nil {
		s.mu.Unlock()
		return err
	}
	s.unlockAndPublish()
	return nil
}

// State returns a deep copy of the current state.
func (s *Store) State() models.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Revision() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Revision
}

// Now is the store clock.
func (s *Store) Now() time.Time {
	return s.clock()
}

// view runs fn against the live state under the read lock. fn must not retain st.
func (s *Store) view(fn func(st *models.State, now time.Time)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state, s.clock())
}

// Subscribe registers fn to receive a copy of the state after every change.
func (s *Store) Subscribe(fn func(models.State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(st models.State) {
	s.subMu.Lock()
	fns := make([]func(models.State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// mutate applies fn to a copy of the state and commits it. If fn fails the live state is
// untouched, except that blocked content is still recorded in the block history.
// Partner alerts raised by fn are delivered after the lock is released, and only when
// the attempt they describe was committed.
func (s *Store) mutate(ctx context.Context, fn func(st *models.State, now time.Time) error) error {
	s.mu.Lock()
	s.alerts = nil

	now := s.clock()
	next := s.state.Clone()
	if err := fn(&next, now); err != nil {
		var blocked *protection.BlockedError
		if !errors.As(err, &blocked) || !s.filter {
			s.alerts = nil
			s.mu.Unlock()
			return err
		}
		withHistory := s.state.Clone()
		withHistory.Protection = next.Protection
		if cerr := s.commitNext(ctx, withHistory, now); cerr != nil {
			logger.Error("Failed to record blocked attempt", "error", cerr)
			s.alerts = nil
			s.mu.Unlock()
			return err
		}
		s.unlockAndPublish()
		return err
	}

	if err := s.commitNext(ctx, next, now); err != nil {
		s.alerts = nil
		s.mu.Unlock()
		return err
	}
	s.unlockAndPublish()
	return nil
}

// unlockAndPublish releases s.mu after a commit, then notifies subscribers and delivers
// pending partner alerts. The caller holds s.mu.
func (s *Store) unlockAndPublish() {
	published := s.state.Clone()
	alerts := s.alerts
	s.alerts = nil
	s.mu.Unlock()

	s.publish(published)
	if s.notifier == nil {
		return
	}
	for _, a := range alerts {
		s.notifier(a.partner, a.attempt)
	}
}

// queueAlert is the guard's notification callback. It runs inside mutate with s.mu held.
func (s *Store) queueAlert(partner models.AccountabilityPartner, attempt models.BlockedAttempt) {
	s.alerts = append(s.alerts, alert{partner: partner, attempt: attempt})
}

func (s *Store) commitNext(ctx context.Context, next models.State, now time.Time) error {
	next.Revision = s.state.Revision + 1
	next.UpdatedAt = now.UTC()
	return s.commitLocked(ctx, next, s.enqueue)
}

// commitLocked persists st and makes it live. The caller holds s.mu.
func (s *Store) commitLocked(ctx context.Context, st models.State, enqueue bool) error {
	data, err := st.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	snap := storage.Snapshot{
		Key:       constants.StorageKey,
		Revision:  st.Revision,
		Data:      data,
		UpdatedAt: st.UpdatedAt,
	}
	if err := s.provider.Commit(ctx, snap, enqueue); err != nil {
		logger.Error("Failed to persist state", "revision", st.Revision, "error", err)
		return fmt.Errorf("failed to persist state: %w", err)
	}
	s.state = st
	if enqueue && s.onCommit != nil {
		s.onCommit()
	}
	return nil
}

// guard returns a filter bound to st's protection settings, or nil when filtering is off.
func (s *Store) guard(st *models.State, now time.Time) *protection.Guard {
	if !s.filter {
		return nil
	}
	g := protection.NewGuard(&st.Protection, now)
	g.Notify = s.queueAlert
	return g
}

// screen runs inputs through the content filter.
func (s *Store) screen(st *models.State, now time.Time, inputs ...string) error {
	g := s.guard(st, now)
	if g == nil {
		return nil
	}
	return g.Err(inputs...)
}

func today(now time.Time) string {
	return utils.DateOf(now)
}

// Repair runs fn as one mutation. It is used by integrity fixes that cut across
// collections; fn returning an error leaves the state untouched.
func (s *Store) Repair(ctx context.Context, fn func(st *models.State) error) error {
	return s.mutate(ctx, func(st *models.State, _ time.Time) error {
		return fn(st)
	})
}
