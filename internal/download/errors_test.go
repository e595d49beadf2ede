package download

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewExitError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		lines    []string
		expected string
	}{
		{"no lines", 7, nil, "yt-dlp exited with code: 7"},
		{"one line", 1, []string{"ERROR: Video unavailable"}, "ERROR: Video unavailable"},
		{"many lines", 1, []string{"ERROR: a", "ERROR: b"}, "ERROR: a\nERROR: b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newExitError(tt.code, tt.lines)
			if err.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, err.Error())
			}
			if err.ExitCode != tt.code {
				t.Errorf("Expected exit code %d, got %d", tt.code, err.ExitCode)
			}
			if !IsKind(err, ErrorRuntime) {
				t.Error("Expected runtime kind")
			}
		})
	}
}

func TestSpawnErrorWrapsCause(t *testing.T) {
	cause := errors.New("executable file not found in $PATH")
	err := newSpawnError(cause)

	if !strings.HasPrefix(err.Error(), "Failed to start yt-dlp: ") {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
	if IsKind(err, ErrorRuntime) {
		t.Error("Spawn error must not report runtime kind")
	}
}

func TestCancelledError(t *testing.T) {
	err := newCancelledError(context.Canceled)
	if !IsKind(err, ErrorCancelled) {
		t.Error("Expected cancelled kind")
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("Expected context.Canceled in chain")
	}
	if IsKind(errors.New("plain"), ErrorCancelled) {
		t.Error("Plain error must not match any kind")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{ErrorSpawn, "spawn"},
		{ErrorRuntime, "runtime"},
		{ErrorReader, "reader"},
		{ErrorCancelled, "cancelled"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}
