package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-dlgui/internal/model"
)

// SessionEventBuffer is the capacity of a session's event channel
const SessionEventBuffer = 16

// Session is one yt-dlp invocation plus its cancellation signal. Its events
// are progress values in the order the runner produced them, followed by
// exactly one outcome.
type Session struct {
	id     string
	runner ProcessRunner
	req    Request

	events chan Event
	done   chan struct{}

	cancelCh   chan struct{}
	cancelOnce sync.Once
	startOnce  sync.Once

	mu         sync.Mutex
	terminated bool
}

// NewSession creates a session for req. Nothing runs until Start is called.
func NewSession(runner ProcessRunner, req Request) *Session {
	return &Session{
		id:       generateSessionID(),
		runner:   runner,
		req:      req,
		events:   make(chan Event, SessionEventBuffer),
		done:     make(chan struct{}),
		cancelCh: make(chan struct{}),
	}
}

// generateSessionID returns a time-ordered unique session ID
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("session-%d", time.Now().UnixNano())
	}
	return "session-" + id.String()
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Request returns the request the session was created with
func (s *Session) Request() Request { return s.req }

// Events returns the ordered event stream. It is closed after the outcome.
func (s *Session) Events() <-chan Event { return s.events }

// Done is closed once the runner has returned and Events is closed
func (s *Session) Done() <-chan struct{} { return s.done }

// Start launches the runner. Cancelling ctx has the same effect as Cancel.
// Calling Start more than once does nothing.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.loop(ctx)
	})
}

// Cancel asks the session to stop. It is a no-op once an outcome has been
// accepted and safe to call any number of times.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return
	}
	s.cancelOnce.Do(func() { close(s.cancelCh) })
}

func (s *Session) cancelRequested() bool {
	select {
	case <-s.cancelCh:
		return true
	default:
		return false
	}
}

func (s *Session) loop(parent context.Context) {
	defer close(s.done)
	defer close(s.events)

	ctx, kill := context.WithCancel(parent)
	defer kill()

	progress := make(chan model.ProgressEvent)
	result := make(chan model.Outcome, 1)
	go func() {
		o := s.runner.Run(ctx, s.req, progress)
		close(progress)
		result <- o
	}()

	abort := func() {
		kill()
		s.deliver(parent, model.Cancelled())
		for range progress {
		}
		<-result
	}

	for progress != nil {
		select {
		case <-s.cancelCh:
			abort()
			return
		case ev, ok := <-progress:
			if !ok {
				progress = nil
				continue
			}
			if s.cancelRequested() || !s.emit(parent, ev) {
				abort()
				return
			}
		}
	}

	var outcome model.Outcome
	select {
	case <-s.cancelCh:
		kill()
		s.deliver(parent, model.Cancelled())
		<-result
		return
	case outcome = <-result:
	}

	s.mu.Lock()
	if s.cancelRequested() {
		s.mu.Unlock()
		s.deliver(parent, model.Cancelled())
		return
	}
	s.terminated = true
	s.mu.Unlock()

	s.deliver(parent, outcome)
}

// emit forwards one progress event. It gives up when the session is
// cancelled while the consumer is not reading.
func (s *Session) emit(parent context.Context, ev model.ProgressEvent) bool {
	select {
	case s.events <- Event{SessionID: s.id, Progress: ev}:
		return true
	case <-s.cancelCh:
		return false
	case <-parent.Done():
		return false
	}
}

func (s *Session) deliver(parent context.Context, o model.Outcome) {
	select {
	case s.events <- Event{SessionID: s.id, Outcome: &o}:
	case <-parent.Done():
	}
}
