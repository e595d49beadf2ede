package download

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/model"
)

// fakeRun is one invocation of fakeRunner that the test drives by hand
type fakeRun struct {
	ctx      context.Context
	req      Request
	progress chan<- model.ProgressEvent
	finish   chan model.Outcome
}

func (r *fakeRun) send(t *testing.T, ev model.ProgressEvent) {
	t.Helper()
	select {
	case r.progress <- ev:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out sending progress")
	}
}

type fakeRunner struct {
	runs chan *fakeRun
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{runs: make(chan *fakeRun, 4)}
}

func (f *fakeRunner) Run(ctx context.Context, req Request, progress chan<- model.ProgressEvent) model.Outcome {
	run := &fakeRun{ctx: ctx, req: req, progress: progress, finish: make(chan model.Outcome, 1)}
	f.runs <- run
	select {
	case o := <-run.finish:
		return o
	case <-ctx.Done():
		return model.Cancelled()
	}
}

func (f *fakeRunner) next(t *testing.T) *fakeRun {
	t.Helper()
	select {
	case run := <-f.runs:
		return run
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for runner to start")
		return nil
	}
}

type fakeHistory struct {
	mu       sync.Mutex
	nextID   int64
	started  []model.HistoryEntry
	finished map[int64]model.HistoryStatus
	messages map[int64]string
	fail     bool
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{finished: make(map[int64]model.HistoryStatus), messages: make(map[int64]string)}
}

func (h *fakeHistory) RecordStart(_ context.Context, entry *model.HistoryEntry) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fail {
		return 0, errors.New("database is locked")
	}
	h.nextID++
	h.started = append(h.started, *entry)
	return h.nextID, nil
}

func (h *fakeHistory) RecordFinish(_ context.Context, id int64, status model.HistoryStatus, outputPath, errMsg string, _ time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished[id] = status
	if errMsg != "" {
		h.messages[id] = errMsg
	} else {
		h.messages[id] = outputPath
	}
	return nil
}

func (h *fakeHistory) status(id int64) (model.HistoryStatus, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.finished[id]
	return s, ok
}

// stateRecorder collects every state the controller reports
type stateRecorder struct {
	states chan model.DownloadState
}

func newStateRecorder(c *Controller) *stateRecorder {
	r := &stateRecorder{states: make(chan model.DownloadState, 128)}
	c.SetUpdateCallback(func(s model.DownloadState) { r.states <- s })
	return r
}

func (r *stateRecorder) waitFor(t *testing.T, match func(model.DownloadState) bool) model.DownloadState {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-r.states:
			if match(s) {
				return s
			}
		case <-timeout:
			t.Fatal("Timed out waiting for state")
			return model.DownloadState{}
		}
	}
}

func phaseIs(p model.Phase) func(model.DownloadState) bool {
	return func(s model.DownloadState) bool { return s.Phase == p }
}

func newTestController(t *testing.T, runner ProcessRunner, history HistoryRecorder) *Controller {
	t.Helper()
	c := NewController(runner, zap.NewNop(), history)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	})
	return c
}

func TestControllerRejectsEmptyURL(t *testing.T) {
	c := newTestController(t, newFakeRunner(), nil)

	for _, url := range []string{"", "   ", "\t\n"} {
		if err := c.Start(url, model.FormatDefault, config.Default()); !errors.Is(err, ErrEmptyURL) {
			t.Errorf("Expected ErrEmptyURL for %q, got %v", url, err)
		}
	}
	if c.State().Phase != model.PhaseIdle {
		t.Errorf("Expected Idle, got %s", c.State().Phase)
	}
}

func TestControllerDownloadLifecycle(t *testing.T) {
	runner := newFakeRunner()
	history := newFakeHistory()
	c := newTestController(t, runner, history)
	states := newStateRecorder(c)

	if err := c.Start("  https://youtube.com/watch?v=abc  ", model.FormatMP3, config.Default()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	starting := states.waitFor(t, phaseIs(model.PhaseDownloading))
	if starting != model.Starting() {
		t.Errorf("Expected starting state, got %+v", starting)
	}

	run := runner.next(t)
	if run.req.URL != "https://youtube.com/watch?v=abc" || run.req.Format != model.FormatMP3 {
		t.Errorf("Unexpected request %+v", run.req)
	}

	run.send(t, model.Downloading{Fraction: 0.5, Speed: "2MiB/s", ETA: "00:03", Filename: "song.webm"})
	s := states.waitFor(t, func(s model.DownloadState) bool { return s.Fraction == 0.5 })
	if s.Speed != "2MiB/s" || s.ETA != "00:03" || s.Filename != "song.webm" {
		t.Errorf("Unexpected downloading state %+v", s)
	}

	run.send(t, model.PostProcessing{Status: "Merging formats..."})
	s = states.waitFor(t, phaseIs(model.PhasePostProcessing))
	if s.Status != "Merging formats..." {
		t.Errorf("Unexpected status %q", s.Status)
	}

	run.finish <- model.Success("song.mp3")
	s = states.waitFor(t, phaseIs(model.PhaseCompleted))
	if s.OutputPath != "song.mp3" {
		t.Errorf("Expected output song.mp3, got %q", s.OutputPath)
	}

	waitHistory(t, history, 1, model.HistoryStatusCompleted)
	if len(history.started) != 1 || history.started[0].Format != model.FormatMP3 {
		t.Errorf("Unexpected history start %+v", history.started)
	}
}

func TestControllerFailure(t *testing.T) {
	tests := []struct {
		name    string
		drive   func(t *testing.T, run *fakeRun)
		message string
	}{
		{
			name: "failure outcome",
			drive: func(t *testing.T, run *fakeRun) {
				run.finish <- model.Failure("yt-dlp exited with code: 1")
			},
			message: "yt-dlp exited with code: 1",
		},
		{
			name: "failed progress",
			drive: func(t *testing.T, run *fakeRun) {
				run.send(t, model.Failed{Message: "Download failed"})
			},
			message: "Download failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			c := newTestController(t, runner, nil)
			states := newStateRecorder(c)

			if err := c.Start(testURL, model.FormatDefault, config.Default()); err != nil {
				t.Fatal(err)
			}
			tt.drive(t, runner.next(t))

			s := states.waitFor(t, phaseIs(model.PhaseError))
			if s.Message != tt.message {
				t.Errorf("Expected %q, got %q", tt.message, s.Message)
			}
		})
	}
}

func TestControllerCancelReturnsToIdle(t *testing.T) {
	runner := newFakeRunner()
	history := newFakeHistory()
	c := newTestController(t, runner, history)
	states := newStateRecorder(c)

	if err := c.Start(testURL, model.FormatDefault, config.Default()); err != nil {
		t.Fatal(err)
	}
	run := runner.next(t)
	run.send(t, model.Downloading{Fraction: 0.3, Filename: "video.mp4"})
	states.waitFor(t, func(s model.DownloadState) bool { return s.Fraction == 0.3 })

	c.Cancel()
	c.Cancel()
	states.waitFor(t, phaseIs(model.PhaseIdle))

	if run.ctx.Err() == nil {
		t.Error("Expected runner context to be cancelled")
	}
	waitHistory(t, history, 1, model.HistoryStatusCancelled)
}

func TestControllerCancelWhileIdle(t *testing.T) {
	c := newTestController(t, newFakeRunner(), nil)
	c.Cancel()
	if c.State().Phase != model.PhaseIdle {
		t.Errorf("Expected Idle, got %s", c.State().Phase)
	}
}

func TestControllerReplaceCancelsPrevious(t *testing.T) {
	runner := newFakeRunner()
	history := newFakeHistory()
	c := newTestController(t, runner, history)
	states := newStateRecorder(c)

	if err := c.Start("https://youtube.com/watch?v=first", model.FormatDefault, config.Default()); err != nil {
		t.Fatal(err)
	}
	first := runner.next(t)
	first.send(t, model.Downloading{Fraction: 0.9, Filename: "first.mp4"})
	states.waitFor(t, func(s model.DownloadState) bool { return s.Fraction == 0.9 })

	if err := c.Start("https://youtube.com/watch?v=second", model.FormatDefault, config.Default()); err != nil {
		t.Fatal(err)
	}
	if first.ctx.Err() == nil {
		t.Fatal("Expected the first download to be cancelled before the second starts")
	}

	second := runner.next(t)
	if second.req.URL != "https://youtube.com/watch?v=second" {
		t.Fatalf("Unexpected second request %+v", second.req)
	}

	s := states.waitFor(t, phaseIs(model.PhaseDownloading))
	if s.Speed != model.StartingSpeedLabel {
		t.Errorf("Expected fresh starting state, got %+v", s)
	}

	second.send(t, model.Downloading{Fraction: 0.1, Filename: "second.mp4"})
	s = states.waitFor(t, func(s model.DownloadState) bool { return s.Filename != "" })
	if s.Filename != "second.mp4" {
		t.Errorf("Expected second.mp4, got %q", s.Filename)
	}

	// The first session's Cancelled outcome must not reset the new download
	if c.State().Phase != model.PhaseDownloading {
		t.Errorf("Expected Downloading, got %s", c.State().Phase)
	}
	waitHistory(t, history, 1, model.HistoryStatusCancelled)
}

func TestControllerHistoryErrorsDoNotBlock(t *testing.T) {
	runner := newFakeRunner()
	history := newFakeHistory()
	history.fail = true
	c := newTestController(t, runner, history)
	states := newStateRecorder(c)

	if err := c.Start(testURL, model.FormatDefault, config.Default()); err != nil {
		t.Fatal(err)
	}
	runner.next(t).finish <- model.Success("video.mp4")
	states.waitFor(t, phaseIs(model.PhaseCompleted))
}

func TestControllerShutdown(t *testing.T) {
	runner := newFakeRunner()
	c := NewController(runner, nil, nil)

	if err := c.Start(testURL, model.FormatDefault, config.Default()); err != nil {
		t.Fatal(err)
	}
	run := runner.next(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if run.ctx.Err() == nil {
		t.Error("Expected active download to be cancelled")
	}
	if err := c.Start(testURL, model.FormatDefault, config.Default()); !errors.Is(err, ErrShutdown) {
		t.Errorf("Expected ErrShutdown, got %v", err)
	}
}

func TestControllerRunningOutlivesFailedProgress(t *testing.T) {
	runner := newFakeRunner()
	c := newTestController(t, runner, nil)
	states := newStateRecorder(c)

	if c.Running() {
		t.Fatal("Expected no running session before Start")
	}
	if err := c.Start(testURL, model.FormatDefault, config.Default()); err != nil {
		t.Fatal(err)
	}
	run := runner.next(t)
	run.send(t, model.Failed{Message: "[download] Destination: The Terror Files.mp4"})
	states.waitFor(t, phaseIs(model.PhaseError))
	if !c.Running() {
		t.Fatal("Expected session to keep running after a Failed progress event")
	}

	run.send(t, model.Downloading{Fraction: 1, Filename: "The Terror Files.mp4"})
	run.finish <- model.Success("The Terror Files.mp4")
	states.waitFor(t, phaseIs(model.PhaseCompleted))
	if c.Running() {
		t.Error("Expected no running session after the outcome")
	}
}

func TestControllerCancelAfterFailedProgress(t *testing.T) {
	runner := newFakeRunner()
	c := newTestController(t, runner, nil)
	states := newStateRecorder(c)

	if err := c.Start(testURL, model.FormatDefault, config.Default()); err != nil {
		t.Fatal(err)
	}
	run := runner.next(t)
	run.send(t, model.Failed{Message: "Got error: timed out, retrying"})
	states.waitFor(t, phaseIs(model.PhaseError))

	c.Cancel()
	states.waitFor(t, phaseIs(model.PhaseIdle))
	if run.ctx.Err() == nil {
		t.Error("Expected runner context to be cancelled")
	}
}

// slowCancelRunner holds its first run open after cancellation until release
// is closed, so Start stays blocked reaping it.
type slowCancelRunner struct {
	mu        sync.Mutex
	runs      int
	cancelled chan struct{}
	release   chan struct{}
}

func (r *slowCancelRunner) Run(ctx context.Context, _ Request, _ chan<- model.ProgressEvent) model.Outcome {
	r.mu.Lock()
	r.runs++
	first := r.runs == 1
	r.mu.Unlock()

	<-ctx.Done()
	if first {
		close(r.cancelled)
		<-r.release
	}
	return model.Cancelled()
}

func (r *slowCancelRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

func TestControllerShutdownDuringReplace(t *testing.T) {
	runner := &slowCancelRunner{cancelled: make(chan struct{}), release: make(chan struct{})}
	c := NewController(runner, nil, nil)

	if err := c.Start("https://youtube.com/watch?v=first", model.FormatDefault, config.Default()); err != nil {
		t.Fatal(err)
	}

	startErr := make(chan error, 1)
	go func() {
		startErr <- c.Start("https://youtube.com/watch?v=second", model.FormatDefault, config.Default())
	}()

	select {
	case <-runner.cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for the first download to be cancelled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdownErr := make(chan error, 1)
	go func() { shutdownErr <- c.Shutdown(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for Shutdown to begin")
		}
		time.Sleep(5 * time.Millisecond)
	}
	close(runner.release)

	if err := <-startErr; !errors.Is(err, ErrShutdown) {
		t.Errorf("Expected ErrShutdown from the replacing Start, got %v", err)
	}
	if err := <-shutdownErr; err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
	if n := runner.count(); n != 1 {
		t.Errorf("Expected only the first download to run, got %d runs", n)
	}
}

func waitHistory(t *testing.T, h *fakeHistory, id int64, expected model.HistoryStatus) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if status, ok := h.status(id); ok {
			if status != expected {
				t.Errorf("Expected history status %s, got %s", expected, status)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for history entry %d", id)
}
