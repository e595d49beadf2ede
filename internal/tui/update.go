package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/yt-dlgui/internal/model"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)
		return m, nil

	case startedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case stateMsg:
		// States are only published once Start has installed a session
		m.state = msg.state
		m.started = true
		// An Error from a progress line is not final; wait for the outcome
		if !msg.state.IsActive() && !m.downloader.Running() {
			m.state = m.downloader.State()
			m.done = true
			return m, tea.Quit
		}
		return m, waitForState(m.feed.C())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if (m.state.IsActive() || m.downloader.Running()) && !m.cancelRequested {
			m.cancelRequested = true
			m.downloader.Cancel()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// phaseLabel returns the one-line status for the current phase
func phaseLabel(s model.DownloadState) string {
	switch s.Phase {
	case model.PhaseDownloading:
		return "Downloading"
	case model.PhasePostProcessing:
		return s.Status
	case model.PhaseCompleted:
		return "Completed"
	case model.PhaseError:
		return "Error"
	default:
		return "Idle"
	}
}
