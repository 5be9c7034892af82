// Package clitest builds command contexts over throwaway storage for command tests.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/config"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/store"
)

// New returns an initialized offline context using backend, with output captured in the
// returned buffer.
func New(t *testing.T, backend string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx, out := Uninitialized(t, backend)
	if _, err := ctx.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return ctx, out
}

// Uninitialized is New without creating storage.
func Uninitialized(t *testing.T, backend string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Backend = backend
	cfg.Database = filepath.Join(t.TempDir(), "lifetrack.db")

	var out bytes.Buffer
	ctx := cli.New(context.Background(), cfg)
	ctx.Offline = true
	ctx.Out = &out
	ctx.In = strings.NewReader("")
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, &out
}

// Store returns the context's store or fails the test.
func Store(t *testing.T, ctx *cli.Context) *store.Store {
	t.Helper()
	st, err := ctx.Store()
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	return st
}

// SQLite is the default backend for command tests.
const SQLite = constants.BackendSQLite
