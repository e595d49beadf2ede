package download

import (
	"context"
	"time"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/model"
)

// ProcessRunner runs a single download to completion. It must return once
// ctx is cancelled and must not close progress.
type ProcessRunner interface {
	Run(ctx context.Context, req Request, progress chan<- model.ProgressEvent) model.Outcome
}

// HistoryRecorder persists the lifecycle of each download
type HistoryRecorder interface {
	RecordStart(ctx context.Context, entry *model.HistoryEntry) (int64, error)
	RecordFinish(ctx context.Context, id int64, status model.HistoryStatus, outputPath, errMsg string, finishedAt time.Time) error
}

// Downloader is what the presentation layers drive
type Downloader interface {
	SetUpdateCallback(func(model.DownloadState))
	Start(url string, format model.Format, settings config.Settings) error
	Cancel()
	State() model.DownloadState
	Running() bool
}

// Event is one message from a session: a progress event, or the final
// outcome when Outcome is non-nil.
type Event struct {
	SessionID string
	Progress  model.ProgressEvent
	Outcome   *model.Outcome
}

// IsFinal reports whether the event carries the outcome
func (e Event) IsFinal() bool {
	return e.Outcome != nil
}
