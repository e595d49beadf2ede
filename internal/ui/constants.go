package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Text fragments
const (
	MiddleDotSeparator = "·"
)

// User-visible strings
const (
	TextURLPlaceholder     = "Paste a video or playlist URL"
	TextDownload           = "Download"
	TextCancel             = "Cancel"
	TextSettings           = "Settings"
	TextHistory            = "History"
	TextFile               = "File"
	TextShowInFolder       = "Show in folder"
	TextReady              = "Ready"
	TextDownloading        = "Downloading..."
	TextCompleted          = "Download complete"
	TextErrorPrefix        = "Error: "
	TextSpeed              = "Speed: "
	TextETA                = "ETA: "
	TextPleaseEnterURL     = "Please enter a URL"
	TextErrorOpeningFile   = "Error opening file"
	TextReadingPlaylist    = "Reading playlist..."
	TextPlaylistFormat     = "%s (%d videos)"
	TextHistoryUnavailable = "Download history is not available."
	TextHistoryEmpty       = "No downloads yet."
)

// Layout sizing
const (
	LogoSize float32 = 32

	SettingsDialogWidth  float32 = 560
	SettingsDialogHeight float32 = 520
	HistoryDialogWidth   float32 = 640
	HistoryDialogHeight  float32 = 420
)

// Limits
const (
	HistoryDialogLimit    = 50
	PlaylistLookupTimeout = 30 * time.Second
)
