// Package cerrors defines the error taxonomy of spec §7 and the
// diagnostics-collaborator contract of spec §6: a structured
// {location, kind, message, ranges} record plus a Sink the lexer and
// file manager report to instead of writing to stderr directly.
package cerrors

import (
	"fmt"
	"time"

	"github.com/standardbeagle/cptoyc/internal/types"
)

// Category classifies the error taxonomy of spec §7.
type Category string

const (
	CategorySource Category = "source" // file-not-found, stat-failed, read/mmap failure
	CategoryLex    Category = "lex"    // unclosed literal/comment, unknown byte
	CategoryConfig Category = "config"
)

// SourceError reports a failure resolving or loading a file, spec §7
// "File-not-found / stat-failed" and "Read/mmap failure".
type SourceError struct {
	Path       string
	Operation  string // "stat", "open", "read", "mmap"
	Underlying error
	Timestamp  time.Time
}

// NewSourceError creates a source error with the current time stamped.
func NewSourceError(op, path string, err error) *SourceError {
	return &SourceError{Operation: op, Path: path, Underlying: err, Timestamp: time.Now()}
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Operation, e.Path, e.Underlying)
}

func (e *SourceError) Unwrap() error { return e.Underlying }

// LexError reports a recoverable lexical diagnostic: unclosed literal,
// unclosed comment, unknown byte. The lexer always recovers and keeps
// producing tokens after reporting one of these (spec §7).
type LexError struct {
	FileID    types.FileID
	Line      int
	Column    int
	Message   string
	Timestamp time.Time
}

// NewLexError creates a lex error positioned at (line, column) in fid.
func NewLexError(fid types.FileID, line, column int, message string) *LexError {
	return &LexError{FileID: fid, Line: line, Column: column, Message: message, Timestamp: time.Now()}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a config error for the named field.
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Underlying: err, Timestamp: time.Now()}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: field %s (value %q): %v", e.Field, e.Value, e.Underlying)
}

func (e *ConfigError) Unwrap() error { return e.Underlying }

// MultiError aggregates independent errors, e.g. all the diagnostics
// collected during one CLI run.
type MultiError struct {
	Errors []error
}

// NewMultiError filters out nils and wraps the rest.
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

func (e *MultiError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	default:
		return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
	}
}

func (e *MultiError) Unwrap() []error { return e.Errors }

// Kind classifies a Diagnostic the way spec §6 enumerates it. The order
// matters: Kind values compare numerically, so "is this at least a
// warning" is a single comparison against KindWarning.
type Kind int

const (
	KindIgnored Kind = iota
	KindNote
	KindWarning
	KindExtension
	KindError
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindIgnored:
		return "ignored"
	case KindNote:
		return "note"
	case KindWarning:
		return "warning"
	case KindExtension:
		return "extension"
	case KindError:
		return "error"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Range marks a half-open span of a diagnostic, given as raw byte
// offsets into the file named by Diagnostic.File. Kept offset-based
// rather than typed on a srcmgr.SourceLocation so this package never
// needs to import the source manager (which itself imports this
// package for SourceError, and would otherwise form an import cycle).
type Range struct {
	Begin int
	End   int
}

// Diagnostic is one reportable event: a misplaced character, an
// unclosed literal, a poisoned identifier used anyway. Location is
// expressed as (File, Offset) rather than a richer type for the same
// import-cycle reason as Range.
type Diagnostic struct {
	File    types.FileID
	Offset  int
	Kind    Kind
	Message string
	Ranges  []Range
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Sink is where a Lexer, Preprocessor, or FileManager reports
// diagnostics instead of writing to stderr directly. Formatting and
// exit-code policy are a collaborator's concern (spec §6); the core
// only needs something concrete to call.
type Sink interface {
	Report(Diagnostic)
}

// CollectingSink buffers every reported Diagnostic in order. It is the
// default Sink used by tests and by the CLI driver, which renders the
// collected diagnostics and derives its exit code from HasErrors.
type CollectingSink struct {
	Diagnostics []Diagnostic
}

// NewCollectingSink returns an empty CollectingSink.
func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

// Report appends d to the sink.
func (s *CollectingSink) Report(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// HasErrors reports whether any collected diagnostic is KindError or
// KindFatal.
func (s *CollectingSink) HasErrors() bool {
	for _, d := range s.Diagnostics {
		if d.Kind >= KindError {
			return true
		}
	}
	return false
}

// Count returns how many collected diagnostics are at least kind.
func (s *CollectingSink) Count(kind Kind) int {
	n := 0
	for _, d := range s.Diagnostics {
		if d.Kind >= kind {
			n++
		}
	}
	return n
}

// NopSink discards every diagnostic. Useful in tests that only care
// about the token stream.
type NopSink struct{}

// Report does nothing.
func (NopSink) Report(Diagnostic) {}
