// Package cli holds the state shared by every lifetrack subcommand.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetrack/internal/app"
	"github.com/julianstephens/lifetrack/internal/config"
	"github.com/julianstephens/lifetrack/internal/store"
	"github.com/julianstephens/lifetrack/internal/utils"
)

type Context struct {
	Ctx    context.Context
	Config *config.Config
	// Offline skips the remote mirror for this run.
	Offline bool
	// Clock overrides the configured timezone, for tests.
	Clock utils.Clock
	Out   io.Writer
	In    io.Reader

	app *app.App
}

func New(ctx context.Context, cfg *config.Config) *Context {
	return &Context{Ctx: ctx, Config: cfg, Out: os.Stdout, In: os.Stdin}
}

// App opens local storage on first use. It fails when storage has not been initialized.
func (c *Context) App() (*app.App, error) {
	return c.open(false)
}

// Init creates local storage if needed and opens it.
func (c *Context) Init() (*app.App, error) {
	return c.open(true)
}

func (c *Context) open(create bool) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	a, err := app.Open(c.Ctx, c.Config, app.Options{Create: create, Offline: c.Offline, Clock: c.Clock})
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *Context) Store() (*store.Store, error) {
	a, err := c.App()
	if err != nil {
		return nil, err
	}
	return a.Store, nil
}

// Opened reports whether a command has opened storage during this run.
func (c *Context) Opened() bool {
	return c.app != nil
}

// Close flushes pending changes to the mirror and closes storage.
func (c *Context) Close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on In, defaulting to no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// PIN returns flag when set, otherwise prompts for the protection PIN without echo.
// No prompt is shown when no PIN has been set.
func (c *Context) PIN(st *store.Store, flag string) (string, error) {
	if flag != "" || !st.HasPIN() {
		return flag, nil
	}
	var pin string
	err := huh.NewInput().
		Title("Protection PIN").
		EchoMode(huh.EchoModePassword).
		Value(&pin).
		Run()
	return pin, err
}

// ParseDate accepts YYYY-MM-DD, "today" or "yesterday", and returns "" for empty input.
func ParseDate(s string, st *store.Store) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "today":
		return utils.DateOf(st.Now()), nil
	case "yesterday":
		return utils.Yesterday(st.Now()), nil
	}
	if !utils.ValidateDateFormat(s) {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD, today or yesterday", s)
	}
	return s, nil
}

// ShortID trims a UUID for table output. Commands accept any unique prefix.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Resolve expands a unique id prefix against ids.
func Resolve(prefix string, ids []string) (string, error) {
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
			}
			match = id
		}
	}
	if match == "" {
		return prefix, nil
	}
	return match, nil
}

// IDs collects the ids of items for Resolve.
func IDs[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}
