// Package errors formats command failures for the terminal and maps them to exit codes.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/lifetrack/internal/config"
	"github.com/julianstephens/lifetrack/internal/llm"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/protection"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/store"
)

const (
	ExitFailure     = 1
	ExitInvalid     = 2
	ExitNotFound    = 3
	ExitBlocked     = 4
	ExitWrongPIN    = 5
	ExitInterrupted = 130
)

// ExitCode classifies err. Unknown errors exit with ExitFailure.
func ExitCode(err error) int {
	var (
		verr *models.ValidationError
		berr *protection.BlockedError
	)
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case stderrors.As(err, &verr), stderrors.Is(err, config.ErrUnknownSetting):
		return ExitInvalid
	case stderrors.Is(err, store.ErrNotFound):
		return ExitNotFound
	case stderrors.As(err, &berr):
		return ExitBlocked
	case stderrors.Is(err, protection.ErrWrongPIN):
		return ExitWrongPIN
	default:
		return ExitFailure
	}
}

// Hint suggests a next step for errors the user can fix, or returns "".
func Hint(err error) string {
	switch {
	case stderrors.Is(err, storage.ErrNotInitialized):
		return "run 'lifetrack init' to create local storage"
	case stderrors.Is(err, llm.ErrNoAPIKey):
		return "store a key with 'lifetrack config keyring set openai'"
	case stderrors.Is(err, store.ErrNotFound):
		return "list the items to see their IDs; any unique prefix works"
	case stderrors.Is(err, protection.ErrWrongPIN):
		return "weakening protection needs the PIN set with 'lifetrack protect pin'"
	case stderrors.Is(err, config.ErrUnknownSetting):
		return "run 'lifetrack config list' to see the settings"
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix and, when one
// applies, a hint on the following line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if h := Hint(err); h != "" {
		msg += "\nHint: " + h
	}
	return msg
}

// Fatal logs err, prints it to stderr and exits with its ExitCode. It does nothing for nil.
func Fatal(err error) {
	if err == nil {
		return
	}
	code := ExitCode(err)
	if code == ExitInterrupted {
		logger.Info("Interrupted")
	} else {
		logger.Error("Command execution failed", "error", err, "exit", code)
	}
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(code)
}
