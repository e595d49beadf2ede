package tui

import "github.com/ytget/yt-dlgui/internal/model"

type startedMsg struct {
	err error
}

type stateMsg struct {
	state model.DownloadState
}
