package download

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/model"
)

// ErrShutdown is returned by Start after Shutdown
var ErrShutdown = errors.New("downloader is shut down")

// historyTimeout bounds each history write
const historyTimeout = 5 * time.Second

// Controller drives the download state machine. It owns at most one active
// session and turns its events into DownloadState snapshots.
type Controller struct {
	runner  ProcessRunner
	history HistoryRecorder
	logger  *zap.Logger

	ctx    context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	closed bool

	// startMu serializes session replacement
	startMu sync.Mutex

	mu      sync.Mutex
	active  *Session
	state   model.DownloadState
	version uint64

	notifyMu sync.Mutex
	notified uint64
	onUpdate func(model.DownloadState)

	progressLog *rate.Limiter
}

var _ Downloader = (*Controller)(nil)

// NewController creates an idle controller. history may be nil.
func NewController(runner ProcessRunner, logger *zap.Logger, history HistoryRecorder) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Controller{
		runner:      runner,
		history:     history,
		logger:      logger,
		ctx:         ctx,
		stop:        stop,
		state:       model.IdleState(),
		progressLog: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// SetUpdateCallback sets the function that receives every state change. It
// is called from background goroutines and must not call back into the
// controller synchronously.
func (c *Controller) SetUpdateCallback(callback func(model.DownloadState)) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.onUpdate = callback
}

// State returns the current state snapshot
func (c *Controller) State() model.DownloadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins a new download, replacing any running one. The previous
// session is cancelled and reaped before the new one starts.
func (c *Controller) Start(url string, format model.Format, settings config.Settings) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrEmptyURL
	}

	c.startMu.Lock()
	defer c.startMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrShutdown
	}
	old := c.active
	c.active = nil
	c.mu.Unlock()

	if old != nil {
		c.logger.Info("replacing active download", zap.String("session", old.ID()))
		old.Cancel()
		<-old.Done()
	}

	sess := NewSession(c.runner, Request{URL: url, Format: format, Settings: settings})

	// Shutdown may have run while the old session was being reaped
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrShutdown
	}
	c.active = sess
	c.state = model.Starting()
	c.version++
	state, version := c.state, c.version
	c.wg.Add(1)
	c.mu.Unlock()

	historyID := c.recordStart(sess)

	c.logger.Info("download started",
		zap.String("session", sess.ID()),
		zap.String("url", url),
		zap.Stringer("format", format))

	c.notify(state, version)

	go c.pump(sess, historyID)
	sess.Start(c.ctx)
	return nil
}

// Running reports whether a session is alive. A Failed progress event moves
// the state to Error while yt-dlp keeps going, so only Running turning false
// marks the end of a download.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

// Cancel stops the running download, including one whose state shows an
// Error from a progress line. The state changes only when the session
// reports its Cancelled outcome.
func (c *Controller) Cancel() {
	c.mu.Lock()
	sess := c.active
	c.mu.Unlock()

	if sess == nil {
		return
	}
	c.logger.Info("cancelling download", zap.String("session", sess.ID()))
	sess.Cancel()
}

// Shutdown cancels the active download and waits for every session to be
// reaped or for ctx to expire.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	sess := c.active
	c.mu.Unlock()

	if sess != nil {
		sess.Cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.stop()
		return nil
	case <-ctx.Done():
		c.stop()
		return ctx.Err()
	}
}

// pump consumes one session's events until its channel is closed
func (c *Controller) pump(sess *Session, historyID int64) {
	defer c.wg.Done()

	for ev := range sess.Events() {
		if ev.Outcome != nil {
			c.recordFinish(sess, historyID, *ev.Outcome)
		}
		c.apply(sess, ev)
	}
}

func (c *Controller) apply(sess *Session, ev Event) {
	c.mu.Lock()
	if c.active != sess {
		c.mu.Unlock()
		c.logger.Debug("dropping event from replaced session", zap.String("session", sess.ID()))
		return
	}

	next := c.state
	if ev.Outcome != nil {
		next = next.ApplyOutcome(*ev.Outcome)
		c.active = nil
	} else {
		next = next.ApplyProgress(ev.Progress)
	}
	c.state = next
	c.version++
	version := c.version
	c.mu.Unlock()

	switch {
	case ev.Outcome != nil:
		c.logger.Info("download finished",
			zap.String("session", sess.ID()),
			zap.Stringer("outcome", ev.Outcome.Kind),
			zap.String("path", ev.Outcome.OutputPath),
			zap.String("message", ev.Outcome.Message))
	case c.progressLog.Allow():
		c.logger.Debug("download progress",
			zap.String("session", sess.ID()),
			zap.Stringer("phase", next.Phase),
			zap.Float64("fraction", next.Fraction),
			zap.String("speed", next.Speed))
	}

	c.notify(next, version)
}

// notify delivers state to the callback unless a newer state was already sent
func (c *Controller) notify(state model.DownloadState, version uint64) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	if version <= c.notified {
		return
	}
	c.notified = version
	if c.onUpdate != nil {
		c.onUpdate(state)
	}
}

func (c *Controller) recordStart(sess *Session) int64 {
	if c.history == nil {
		return 0
	}
	req := sess.Request()
	entry := &model.HistoryEntry{
		SessionID: sess.ID(),
		URL:       req.URL,
		Format:    req.Format,
		Status:    model.HistoryStatusDownloading,
		StartedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.ctx, historyTimeout)
	defer cancel()
	id, err := c.history.RecordStart(ctx, entry)
	if err != nil {
		c.logger.Warn("failed to record download start", zap.String("session", sess.ID()), zap.Error(err))
		return 0
	}
	return id
}

func (c *Controller) recordFinish(sess *Session, id int64, o model.Outcome) {
	if c.history == nil || id == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()
	err := c.history.RecordFinish(ctx, id, model.StatusForOutcome(o), o.OutputPath, o.Message, time.Now())
	if err != nil {
		c.logger.Warn("failed to record download finish", zap.String("session", sess.ID()), zap.Error(err))
	}
}
