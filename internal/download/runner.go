package download

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/yt-dlgui/internal/model"
	"github.com/ytget/yt-dlgui/internal/platform"
)

// Reader buffer sizes
const (
	initialLineBuffer = 64 * 1024
	maxLineBuffer     = 1024 * 1024
)

// DefaultWaitDelay bounds how long Wait keeps draining pipes after the
// process has been killed.
const DefaultWaitDelay = 5 * time.Second

// commandFactory builds the child process; tests swap it for a helper binary
type commandFactory func(ctx context.Context, name string, args ...string) *exec.Cmd

// Runner runs yt-dlp once per call and reports what it prints
type Runner struct {
	command   commandFactory
	waitDelay time.Duration
	logger    *zap.Logger
}

// NewRunner creates a runner that starts the real yt-dlp executable
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		command:   exec.CommandContext,
		waitDelay: DefaultWaitDelay,
		logger:    logger,
	}
}

// Run starts yt-dlp for req, forwards every parsed progress event to
// progress, and returns once the process has exited and both output streams
// are drained. Cancelling ctx kills the process tree. progress is not closed.
func (r *Runner) Run(ctx context.Context, req Request, progress chan<- model.ProgressEvent) model.Outcome {
	outputPath, err := r.run(ctx, req, progress)
	switch {
	case err == nil:
		return model.Success(outputPath)
	case IsKind(err, ErrorCancelled):
		return model.Cancelled()
	default:
		return model.Failure(err.Error())
	}
}

func (r *Runner) run(ctx context.Context, req Request, progress chan<- model.ProgressEvent) (string, error) {
	procCtx, kill := context.WithCancel(ctx)
	defer kill()

	args := BuildArgs(req)
	cmd := r.command(procCtx, req.Executable(), args...)
	configureProcess(cmd)
	cmd.WaitDelay = r.waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", newSpawnError(err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", newSpawnError(err)
	}

	r.logger.Debug("starting yt-dlp",
		zap.String("executable", req.Executable()),
		zap.Strings("args", args))

	if err := cmd.Start(); err != nil {
		return "", newSpawnError(err)
	}

	var (
		lastFilename string
		errorLines   []string
	)

	var g errgroup.Group
	g.Go(func() error {
		name, err := r.readStdout(ctx, stdout, progress)
		lastFilename = name
		if err != nil {
			kill()
		}
		return err
	})
	g.Go(func() error {
		lines, err := r.readStderr(ctx, stderr, progress)
		errorLines = lines
		if err != nil {
			kill()
		}
		return err
	})

	readErr := g.Wait()
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		return "", newCancelledError(ctx.Err())
	}
	if readErr != nil {
		return "", newReaderError("Failed to read yt-dlp output", readErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(waitErr, &exitErr):
			return "", newExitError(exitErr.ExitCode(), errorLines)
		case errors.Is(waitErr, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success():
			// A grandchild kept the pipes open after a clean exit
		default:
			return "", newReaderError("Failed to wait for yt-dlp", waitErr)
		}
	}

	return lastFilename, nil
}

// readStdout forwards progress and remembers the last downloading filename
func (r *Runner) readStdout(ctx context.Context, stdout io.Reader, progress chan<- model.ProgressEvent) (string, error) {
	var lastFilename string
	err := scanLines(stdout, func(line string) error {
		ev, ok := platform.ParseProgressLine(line)
		if !ok {
			return nil
		}
		if d, isDownloading := ev.(model.Downloading); isDownloading {
			lastFilename = d.Filename
		}
		return send(ctx, progress, ev)
	})
	return lastFilename, err
}

// readStderr forwards progress and collects lines that mention an error
func (r *Runner) readStderr(ctx context.Context, stderr io.Reader, progress chan<- model.ProgressEvent) ([]string, error) {
	var errorLines []string
	err := scanLines(stderr, func(line string) error {
		if platform.IsErrorLine(line) {
			errorLines = append(errorLines, strings.TrimSuffix(line, "\r"))
		}
		if ev, ok := platform.ParseProgressLine(line); ok {
			return send(ctx, progress, ev)
		}
		return nil
	})
	return errorLines, err
}

func scanLines(r io.Reader, handle func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, initialLineBuffer), maxLineBuffer)
	for scanner.Scan() {
		if err := handle(scanner.Text()); err != nil {
			return err
		}
	}
	err := scanner.Err()
	// The pipe is closed under us when the process is killed
	if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

func send(ctx context.Context, progress chan<- model.ProgressEvent, ev model.ProgressEvent) error {
	select {
	case progress <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
