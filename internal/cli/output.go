package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cnsrgl/stock-gestion-codeon/internal/engine"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // operation failure (denied, not found, write failed)
	ExitCommandError = 2 // command error (bad flags, unknown field, bad config)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// newFormatter builds a formatter bound to the command's stdout.
func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

// CLIResponse is the standard JSON response envelope.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for JSON responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format. The
// text argument is the human-readable rendering; data is the JSON
// payload.
func (f *OutputFormatter) Success(data any, text string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	fmt.Fprintln(f.Writer, text)
	return nil
}

// Fail renders err in the configured format and converts it into an
// ExitError carrying the matching exit code.
func (f *OutputFormatter) Fail(err error) error {
	code, exitCode := classifyError(err)

	if f.Format == "json" {
		json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: err.Error()},
		})
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, err.Error())
	}

	return WrapExitError(exitCode, code, err)
}

// FailUsage renders an operator input mistake the error taxonomy does
// not cover (unparsable ids, unknown operations) and exits 2.
func (f *OutputFormatter) FailUsage(err error) error {
	if f.Format == "json" {
		json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: "invalid_argument", Message: err.Error()},
		})
	} else {
		fmt.Fprintf(f.Writer, "Error [invalid_argument]: %s\n", err.Error())
	}
	return WrapExitError(ExitCommandError, "invalid_argument", err)
}

// classifyError maps engine errors to symbolic codes and exit codes.
// Input mistakes the operator can correct (unknown fields, bad enum
// values, empty selections) exit 2; runtime failures exit 1.
func classifyError(err error) (string, int) {
	switch {
	case engine.IsDenied(err):
		return "denied", ExitFailure
	case engine.IsNotFound(err):
		return "not_found", ExitFailure
	case engine.IsPersistence(err):
		return "persistence", ExitFailure
	case engine.IsUnsupportedField(err):
		return "unsupported_field", ExitCommandError
	case engine.IsInvalidEnumValue(err):
		return "invalid_value", ExitCommandError
	case errors.Is(err, engine.ErrNoSelection):
		return "no_selection", ExitCommandError
	}
	return "internal", ExitFailure
}
