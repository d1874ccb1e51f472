package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/projector/internal/config"
)

// Exit codes for the projector command.
const (
	ExitSuccess      = 0 // Successful execution, including an unresolved key
	ExitFailure      = 1 // Store could not be saved or output could not be written
	ExitCommandError = 2 // Malformed arguments or invalid configuration
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter prints resolved values.
type OutputFormatter struct {
	Format string // "json" | "yaml" | "text"
	Writer io.Writer
}

// Values prints a resolved map. JSON (the default) is a single line.
func (f *OutputFormatter) Values(values map[string]string) error {
	var buf bytes.Buffer

	switch f.Format {
	case config.FormatYAML:
		out, err := yaml.Marshal(values)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		buf.Write(out)
	case config.FormatText:
		for _, k := range slices.Sorted(maps.Keys(values)) {
			fmt.Fprintf(&buf, "%s=%s\n", k, values[k])
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(values); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	}

	if _, err := f.Writer.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Value prints a single raw value followed by a newline.
func (f *OutputFormatter) Value(value string) error {
	if _, err := fmt.Fprintln(f.Writer, value); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
