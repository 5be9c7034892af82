// Package app wires configuration, storage, the remote mirror and the store together for
// every front end.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/julianstephens/lifetrack/internal/analysis"
	"github.com/julianstephens/lifetrack/internal/backup"
	"github.com/julianstephens/lifetrack/internal/config"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/llm"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/notifier"
	"github.com/julianstephens/lifetrack/internal/remote"
	"github.com/julianstephens/lifetrack/internal/remote/mysql"
	"github.com/julianstephens/lifetrack/internal/remote/postgres"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/storage/sqlite"
	"github.com/julianstephens/lifetrack/internal/store"
	"github.com/julianstephens/lifetrack/internal/syncer"
	"github.com/julianstephens/lifetrack/internal/utils"
)

const closeFlushTimeout = 5 * time.Second

type Options struct {
	// Create initializes local storage instead of requiring it to exist.
	Create bool
	// Offline skips connecting to the remote mirror.
	Offline bool
	// Clock overrides the configured timezone clock.
	Clock utils.Clock
}

type App struct {
	Config *config.Config
	Store  *store.Store
	Local  storage.Provider
	// Mirror and Syncer are nil when no remote is configured or it could not be reached.
	Mirror remote.Mirror
	Syncer *syncer.Syncer

	mu      sync.Mutex
	watcher *storage.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewProvider returns the local snapshot backend selected by cfg.
func NewProvider(cfg *config.Config) storage.Provider {
	if cfg.Backend == constants.BackendJSON {
		return storage.NewJSONStore(filepath.Dir(cfg.Database), constants.StorageKey)
	}
	return sqlite.NewStore(cfg.Database, constants.StorageKey)
}

// SourcePath is the file holding the local snapshot: the SQLite database or the JSON
// snapshot file.
func SourcePath(cfg *config.Config) string {
	if cfg.Backend == constants.BackendJSON {
		return filepath.Join(filepath.Dir(cfg.Database), constants.StorageKey+".json")
	}
	return cfg.Database
}

// NewMirror returns the mirror for cfg.RemoteDriver, or nil when none is configured.
func NewMirror(cfg *config.Config) (remote.Mirror, error) {
	switch cfg.RemoteDriver {
	case "":
		return nil, nil
	case constants.RemotePostgres:
		return postgres.New(cfg.RemoteDSN), nil
	case constants.RemoteMySQL:
		return mysql.New(cfg.RemoteDSN)
	default:
		return nil, fmt.Errorf("unknown remote driver %q", cfg.RemoteDriver)
	}
}

// Open builds the application. A configured mirror that cannot be reached is logged and
// skipped; commits still queue in the outbox for a later run.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	a := &App{Config: cfg, Local: NewProvider(cfg)}

	if opts.Create {
		if err := a.Local.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	} else if err := a.Local.Load(); err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		loc, err := cfg.Location()
		if err != nil {
			a.Local.Close()
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
		clock = utils.ClockIn(loc)
	}

	if !opts.Offline {
		a.connectMirror(clock)
	}

	storeOpts := []store.Option{
		store.WithClock(clock),
		store.WithOutbox(cfg.RemoteDriver != ""),
	}
	if a.Syncer != nil {
		storeOpts = append(storeOpts, store.WithCommitHook(a.Syncer.Notify))
	}
	if cfg.PartnerHook != "" {
		storeOpts = append(storeOpts, store.WithNotifier(notifier.New(cfg.PartnerHook, cfg.WebhookSecret).Hook()))
	}
	st, err := store.Open(ctx, a.Local, storeOpts...)
	if err != nil {
		a.closeStorage()
		return nil, err
	}
	a.Store = st
	return a, nil
}

func (a *App) connectMirror(clock utils.Clock) {
	mirror, err := NewMirror(a.Config)
	if err != nil {
		logger.Warn("Remote mirror disabled", "error", err)
		return
	}
	if mirror == nil {
		return
	}
	if err := mirror.Init(); err != nil {
		logger.Warn("Remote mirror unreachable, working offline", "driver", a.Config.RemoteDriver, "error", err)
		_ = mirror.Close()
		return
	}
	a.Mirror = mirror
	a.Syncer = syncer.New(a.Local, mirror, syncer.Options{
		UserID:      a.Config.UserID,
		Interval:    a.Config.SyncInterval,
		MaxAttempts: a.Config.SyncAttempts,
		Clock:       clock,
		Adopt: func(ctx context.Context, snap remote.Snapshot) error {
			return a.Store.Replace(ctx, snap.Data)
		},
	})
}

// Start reconciles with the mirror and runs the sync worker and the snapshot watcher
// until Close. Short-lived commands do not need it.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return nil
	}

	if a.Syncer != nil {
		if adopted, err := a.Syncer.Reconcile(ctx); err != nil {
			logger.Warn("Initial remote sync failed", "error", err)
		} else if adopted {
			logger.Info("Adopted remote snapshot", "revision", a.Store.Revision())
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})

	w, err := storage.NewWatcher(SourcePath(a.Config), constants.WatchDebounce, func(ctx context.Context) {
		if err := a.Store.Reload(ctx); err != nil {
			logger.Warn("Failed to reload changed snapshot", "error", err)
		}
	})
	if err != nil {
		logger.Warn("Snapshot watcher disabled", "error", err)
	} else if err := w.Start(runCtx); err != nil {
		logger.Warn("Snapshot watcher disabled", "error", err)
		w.Stop()
	} else {
		a.watcher = w
	}

	go func() {
		defer close(a.done)
		if a.Syncer != nil {
			_ = a.Syncer.Run(runCtx)
			return
		}
		<-runCtx.Done()
	}()
	return nil
}

// Sync pushes the outbox and adopts a newer remote snapshot.
func (a *App) Sync(ctx context.Context) (adopted bool, err error) {
	if a.Syncer == nil {
		return false, errors.New("no remote mirror is configured or reachable")
	}
	return a.Syncer.Reconcile(ctx)
}

// Close stops background work, makes a last attempt to push pending changes and closes
// storage.
func (a *App) Close() error {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		<-a.done
		a.cancel = nil
	}
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	a.mu.Unlock()

	if a.Syncer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeFlushTimeout)
		if _, err := a.Syncer.Flush(ctx); err != nil {
			logger.Warn("Pending changes left in outbox", "error", err)
		}
		cancel()
	}
	return a.closeStorage()
}

func (a *App) closeStorage() error {
	var errs []error
	if a.Mirror != nil {
		errs = append(errs, a.Mirror.Close())
	}
	errs = append(errs, a.Local.Close())
	return errors.Join(errs...)
}

func (a *App) Backups() *backup.Manager {
	return backup.NewManager(SourcePath(a.Config))
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (a *App) PerformAutomaticBackup() {
	if _, err := a.Backups().Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// NewLLM returns a client for the configured provider. When the other provider also has a
// key it is tried as a fallback.
func NewLLM(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	keys := map[string]string{
		constants.ProviderOpenAI: cfg.OpenAIKey,
		constants.ProviderGemini: cfg.GeminiKey,
	}
	order := []string{constants.ProviderOpenAI, constants.ProviderGemini}
	if cfg.LLMProvider == constants.ProviderGemini {
		order = []string{constants.ProviderGemini, constants.ProviderOpenAI}
	}

	var clients llm.Fallback
	for i, provider := range order {
		if keys[provider] == "" {
			continue
		}
		lc := llm.Config{
			Provider:    provider,
			APIKey:      keys[provider],
			Temperature: cfg.Temperature,
		}
		if i == 0 {
			lc.Model = cfg.LLMModel
			lc.BaseURL = cfg.LLMBaseURL
		}
		client, err := llm.New(ctx, lc)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	switch len(clients) {
	case 0:
		return nil, fmt.Errorf("%w: set %s or %s, or store a key with 'lifetrack config keyring'",
			llm.ErrNoAPIKey, constants.EnvOpenAIKey, constants.EnvGeminiKey)
	case 1:
		return clients[0], nil
	default:
		return clients, nil
	}
}

func (a *App) Analyzer(ctx context.Context) (*analysis.Analyzer, error) {
	client, err := NewLLM(ctx, a.Config)
	if err != nil {
		return nil, err
	}
	return analysis.NewAnalyzer(client, a.Store), nil
}
