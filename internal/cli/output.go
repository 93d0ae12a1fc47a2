package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/roach88/numtower/internal/coerce"
	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/numerr"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Arithmetic failure (domain, type or convergence error)
	ExitCommandError = 2 // Command error (bad operand, unreadable config, etc.)
)

// Error code constants shared by all commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeBadOperand  = "E002" // Operand could not be parsed
	ErrCodeNotFound    = "E005" // Config file not found
	ErrCodeBadConfig   = "E008" // Config file failed validation
	ErrCodeStack       = "E009" // RPN stack underflow or leftovers
	ErrCodeDomain      = "E201" // numerr.CodeDomain
	ErrCodeType        = "E202" // numerr.CodeType
	ErrCodeConvergence = "E203" // numerr.CodeConvergence
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// ErrorCode maps an error to its CLI error code.
func ErrorCode(err error) string {
	switch numerr.CodeOf(err) {
	case numerr.CodeDomain:
		return ErrCodeDomain
	case numerr.CodeType:
		return ErrCodeType
	case numerr.CodeConvergence:
		return ErrCodeConvergence
	}
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return ErrCodeBadConfig
	}
	if errors.Is(err, os.ErrNotExist) {
		return ErrCodeNotFound
	}
	return ErrCodeGeneric
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool

	// Tags prefixes text values with their one-letter kind code.
	Tags bool
}

// newFormatter builds the formatter for a command's streams.
func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   opts.Verbose,
		Tags:      isTerminal(out),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E201", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// ValueJSON is the JSON form of a numeric value.
type ValueJSON struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

func valueJSON(v coerce.Value) ValueJSON {
	return ValueJSON{Tag: v.Tag().String(), Value: v.String()}
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Value writes one value per line in text format, preceded by its kind
// code when Tags is set.
func (f *OutputFormatter) Value(v coerce.Value) {
	if f.Tags {
		fmt.Fprintf(f.Writer, "%s  %s\n", v.Tag().Code(), v)
		return
	}
	fmt.Fprintln(f.Writer, v)
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns the ExitError the command should return.
// Arithmetic errors exit with ExitFailure, everything else with
// ExitCommandError.
func (f *OutputFormatter) Fail(message string, err error) error {
	code := ErrorCode(err)
	var details any
	var nerr *numerr.Error
	if errors.As(err, &nerr) && len(nerr.Details) > 0 {
		details = nerr.Details
	}
	if outErr := f.Error(code, err.Error(), details); outErr != nil {
		return outErr
	}
	exit := ExitCommandError
	if numerr.CodeOf(err) != "" {
		exit = ExitFailure
	}
	return WrapExitError(exit, message, err)
}

// BadOperand reports a command-line operand that could not be read.
func (f *OutputFormatter) BadOperand(arg string, err error) error {
	msg := fmt.Sprintf("can't read operand %q", arg)
	if outErr := f.Error(ErrCodeBadOperand, msg, err.Error()); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, msg, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
