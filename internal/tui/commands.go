package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/download"
	"github.com/ytget/yt-dlgui/internal/model"
)

func startDownload(d download.Downloader, url string, format model.Format, settings config.Settings) tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: d.Start(url, format, settings)}
	}
}

func waitForState(feed <-chan model.DownloadState) tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: <-feed}
	}
}
