// Package tui is a Bubble Tea front end that runs one download in the
// terminal and renders the controller's state.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/download"
	"github.com/ytget/yt-dlgui/internal/model"
)

const (
	padding  = 2
	maxWidth = 80
)

// Model is the Bubble Tea model for a single download
type Model struct {
	// Dependencies
	downloader download.Downloader
	feed       *StateFeed
	url        string
	format     model.Format
	settings   config.Settings

	// Components
	progress progress.Model
	spinner  spinner.Model

	// State
	state           model.DownloadState
	started         bool
	cancelRequested bool
	done            bool
	quitting        bool
	err             error
	width           int
}

// NewModel creates a model that starts url when the program runs. feed must
// be registered as the downloader's update callback.
func NewModel(d download.Downloader, feed *StateFeed, url string, format model.Format, settings config.Settings) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		downloader: d,
		feed:       feed,
		url:        url,
		format:     format,
		settings:   settings,
		progress:   progress.New(progress.WithDefaultGradient()),
		spinner:    s,
		state:      model.IdleState(),
	}
}

// Init starts the download and begins listening for state changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		startDownload(m.downloader, m.url, m.format, m.settings),
		waitForState(m.feed.C()),
		m.spinner.Tick,
	)
}

// State returns the last state the model rendered
func (m Model) State() model.DownloadState {
	return m.state
}

// Err returns the error that prevented the download from starting
func (m Model) Err() error {
	return m.err
}

// Cancelled reports whether the download ended because the user cancelled it
func (m Model) Cancelled() bool {
	return m.started && m.state.Phase == model.PhaseIdle
}
