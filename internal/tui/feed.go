package tui

import "github.com/ytget/yt-dlgui/internal/model"

// StateFeed hands controller states to the TUI. It keeps only the newest
// undelivered state so a slow terminal never blocks the controller.
type StateFeed struct {
	ch chan model.DownloadState
}

// NewStateFeed creates an empty feed
func NewStateFeed() *StateFeed {
	return &StateFeed{ch: make(chan model.DownloadState, 1)}
}

// Publish replaces any pending state with s. Use it as the controller's
// update callback.
func (f *StateFeed) Publish(s model.DownloadState) {
	for {
		select {
		case f.ch <- s:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// C returns the receive side of the feed
func (f *StateFeed) C() <-chan model.DownloadState {
	return f.ch
}
