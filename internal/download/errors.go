package download

import (
	"errors"
	"fmt"
)

// ErrEmptyURL is returned by Controller.Start for a blank URL
var ErrEmptyURL = errors.New("please enter a URL")

// ErrorKind classifies why a download did not succeed
type ErrorKind int

const (
	// ErrorSpawn means yt-dlp could not be started
	ErrorSpawn ErrorKind = iota
	// ErrorRuntime means yt-dlp exited with a non-zero status
	ErrorRuntime
	// ErrorReader means reading the output or waiting for the process failed
	ErrorReader
	// ErrorCancelled means the download was cancelled
	ErrorCancelled
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrorSpawn:
		return "spawn"
	case ErrorRuntime:
		return "runtime"
	case ErrorReader:
		return "reader"
	case ErrorCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// RunError is a structured failure of one yt-dlp run. Error() is the message
// shown to the user.
type RunError struct {
	Kind     ErrorKind
	Message  string
	ExitCode int // set for ErrorRuntime
	Cause    error
}

// Error implements the error interface
func (e *RunError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *RunError) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is a RunError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var re *RunError
	return errors.As(err, &re) && re.Kind == kind
}

func newSpawnError(cause error) *RunError {
	return &RunError{Kind: ErrorSpawn, Message: "Failed to start yt-dlp", Cause: cause}
}

func newExitError(code int, errorLines []string) *RunError {
	msg := fmt.Sprintf("yt-dlp exited with code: %d", code)
	if len(errorLines) > 0 {
		msg = joinLines(errorLines)
	}
	return &RunError{Kind: ErrorRuntime, Message: msg, ExitCode: code}
}

func newReaderError(message string, cause error) *RunError {
	return &RunError{Kind: ErrorReader, Message: message, Cause: cause}
}

func newCancelledError(cause error) *RunError {
	return &RunError{Kind: ErrorCancelled, Message: "download cancelled", Cause: cause}
}
