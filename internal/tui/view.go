package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/yt-dlgui/internal/model"
)

// Styles with adaptive colors for light/dark backgrounds
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "9"}).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "34", Dark: "10"}).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "136", Dark: "220"})

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
)

// View renders the model
func (m Model) View() string {
	pad := strings.Repeat(" ", padding)
	var b strings.Builder

	b.WriteString("\n" + pad + titleStyle.Render("yt-dlgui") + " " + helpStyle.Render(m.url) + "\n\n")

	if m.err != nil {
		b.WriteString(pad + errorStyle.Render("✗ "+m.err.Error()) + "\n")
		return b.String()
	}

	s := m.state
	switch s.Phase {
	case model.PhaseIdle:
		if m.started {
			b.WriteString(pad + warningStyle.Render("Cancelled") + "\n")
		} else {
			b.WriteString(pad + m.spinner.View() + " Starting yt-dlp...\n")
		}
	case model.PhaseDownloading:
		if s.Filename != "" {
			b.WriteString(pad + s.Filename + "\n")
		}
		b.WriteString(pad + m.progress.ViewAs(s.Fraction) + "\n")
		b.WriteString(pad + helpStyle.Render(fmt.Sprintf("%s · ETA %s", s.Speed, s.ETA)) + "\n")
	case model.PhasePostProcessing:
		b.WriteString(pad + m.progress.ViewAs(1) + "\n")
		b.WriteString(pad + m.spinner.View() + " " + phaseLabel(s) + "\n")
	case model.PhaseCompleted:
		b.WriteString(pad + successStyle.Render("✓ "+phaseLabel(s)) + "\n")
		if s.OutputPath != "" {
			b.WriteString(pad + s.OutputPath + "\n")
		}
	case model.PhaseError:
		b.WriteString(pad + errorStyle.Render("✗ "+phaseLabel(s)) + "\n")
		for _, line := range strings.Split(s.Message, "\n") {
			b.WriteString(pad + line + "\n")
		}
	}

	if !m.done && !m.quitting {
		help := "ctrl+c: cancel"
		if m.cancelRequested || !s.IsActive() {
			help = "ctrl+c: quit"
		}
		if m.cancelRequested && s.IsActive() {
			b.WriteString(pad + warningStyle.Render("Cancelling...") + "\n")
		}
		b.WriteString("\n" + pad + helpStyle.Render(help) + "\n")
	}
	return b.String()
}
