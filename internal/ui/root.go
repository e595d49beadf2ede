package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/download"
	"github.com/ytget/yt-dlgui/internal/model"
	"github.com/ytget/yt-dlgui/internal/platform"
	"github.com/ytget/yt-dlgui/internal/repository"
)

// RootUI is the single-window home view
type RootUI struct {
	window     fyne.Window
	downloader download.Downloader
	settings   *config.Manager
	prefs      *config.Preferences
	history    repository.HistoryRepository
	playlists  *platform.PlaylistParserService
	logger     *zap.Logger

	urlEntry      *widget.Entry
	formatSelect  *widget.Select
	actionBtn     *widget.Button
	progressBar   *widget.ProgressBar
	filenameLabel *widget.Label
	speedLabel    *widget.Label
	etaLabel      *widget.Label
	statusLabel   *canvas.Text
	revealBtn     *widget.Button

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	state model.DownloadState
}

// NewRootUI builds the home view and sets it as the window content. history
// may be nil.
func NewRootUI(window fyne.Window, app fyne.App, downloader download.Downloader, settings *config.Manager, history repository.HistoryRepository, logger *zap.Logger) *RootUI {
	if logger == nil {
		logger = zap.NewNop()
	}
	ui := &RootUI{
		window:     window,
		downloader: downloader,
		settings:   settings,
		prefs:      config.NewPreferences(app),
		history:    history,
		playlists:  platform.NewPlaylistParserService(),
		logger:     logger,
		state:      model.IdleState(),
	}

	ui.downloader.SetUpdateCallback(ui.onStateUpdate)
	ui.setupUI()
	ui.render(ui.downloader.State())
	return ui
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(TextURLPlaceholder)
	ui.urlEntry.OnSubmitted = func(string) {
		if !ui.state.IsActive() {
			ui.onDownloadClick()
		}
	}
	ui.urlEntry.SetText(ui.prefs.LastURL())

	labels := make([]string, 0, len(model.AllFormats()))
	for _, f := range model.AllFormats() {
		labels = append(labels, f.Label())
	}
	ui.formatSelect = widget.NewSelect(labels, func(label string) {
		if f, err := model.ParseFormat(label); err == nil {
			ui.prefs.SetLastFormat(f)
		}
	})
	ui.formatSelect.SetSelected(ui.prefs.LastFormat().Label())

	ui.actionBtn = widget.NewButton(TextDownload, ui.onActionClick)
	ui.actionBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	logo := canvas.NewImageFromResource(AppIconResource)
	logo.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
	logo.FillMode = canvas.ImageFillContain

	topPanel := container.NewBorder(nil, nil,
		container.NewHBox(logo, settingsBtn),
		container.NewHBox(ui.formatSelect, ui.actionBtn),
		ui.urlEntry)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	ui.progressBar = widget.NewProgressBar()
	ui.filenameLabel = widget.NewLabel("")
	ui.filenameLabel.Truncation = fyne.TextTruncateEllipsis
	ui.speedLabel = widget.NewLabel("")
	ui.etaLabel = widget.NewLabel("")
	ui.statusLabel = canvas.NewText("", nil)
	ui.statusLabel.TextStyle = fyne.TextStyle{Bold: true}

	ui.revealBtn = widget.NewButton(IconFolder+" "+TextShowInFolder, ui.onRevealClick)
	ui.revealBtn.Hide()

	progressPanel := container.NewVBox(
		ui.filenameLabel,
		ui.progressBar,
		container.NewHBox(ui.speedLabel, widget.NewLabel(MiddleDotSeparator), ui.etaLabel),
		container.NewHBox(ui.statusLabel, ui.revealBtn),
	)

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.notificationContainer),
		nil,
		nil,
		nil,
		container.NewPadded(progressPanel),
	)
	ui.window.SetContent(content)
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(TextSettings, ui.onShowSettings)
	historyItem := fyne.NewMenuItem(TextHistory, ui.onShowHistory)
	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(TextFile, settingsItem, historyItem),
	))
}

func (ui *RootUI) selectedFormat() model.Format {
	f, err := model.ParseFormat(ui.formatSelect.Selected)
	if err != nil {
		return model.FormatDefault
	}
	return f
}

func (ui *RootUI) onActionClick() {
	if ui.state.IsActive() {
		ui.logger.Info("cancel requested from UI")
		ui.downloader.Cancel()
		return
	}
	ui.onDownloadClick()
}

func (ui *RootUI) onDownloadClick() {
	// Anything yt-dlp accepts goes through; Start rejects blank input
	urlText := strings.TrimSpace(ui.urlEntry.Text)

	settings := ui.settings.Effective()
	if settings.OutputDirectory != "" {
		if err := platform.CreateDirectoryIfNotExists(settings.OutputDirectory); err != nil {
			ui.logger.Warn("failed to create output directory", zap.String("dir", settings.OutputDirectory), zap.Error(err))
		}
	}

	format := ui.selectedFormat()
	if err := ui.downloader.Start(urlText, format, settings); err != nil {
		if errors.Is(err, download.ErrEmptyURL) {
			ui.showNotification(TextPleaseEnterURL, false)
		} else {
			ui.showNotification(err.Error(), false)
		}
		return
	}

	ui.hideNotification()
	ui.prefs.SetLastURL(urlText)
	ui.prefs.SetLastFormat(format)

	if platform.IsPlaylistURL(urlText) {
		go ui.describePlaylist(urlText)
	}
}

// describePlaylist shows how many videos a playlist download covers
func (ui *RootUI) describePlaylist(rawURL string) {
	ui.showNotification(TextReadingPlaylist, true)
	ctx, cancel := context.WithTimeout(context.Background(), PlaylistLookupTimeout)
	defer cancel()

	playlist, err := ui.playlists.ParsePlaylist(ctx, rawURL)
	if err != nil {
		ui.logger.Warn("failed to read playlist", zap.String("url", rawURL), zap.Error(err))
		ui.hideNotification()
		return
	}
	ui.showNotification(fmt.Sprintf(TextPlaylistFormat, playlist.Title, len(playlist.Entries)), false)
}

// onStateUpdate is the controller callback; it runs off the UI goroutine
func (ui *RootUI) onStateUpdate(state model.DownloadState) {
	fyne.Do(func() {
		ui.render(state)
	})
}

// render updates every widget from state. Must run on the UI goroutine.
func (ui *RootUI) render(state model.DownloadState) {
	ui.state = state

	if state.IsActive() {
		ui.actionBtn.SetText(TextCancel)
		ui.actionBtn.Importance = widget.DangerImportance
		ui.formatSelect.Disable()
	} else {
		ui.actionBtn.SetText(TextDownload)
		ui.actionBtn.Importance = widget.HighImportance
		ui.formatSelect.Enable()
	}
	ui.actionBtn.Refresh()

	switch state.Phase {
	case model.PhaseIdle:
		ui.progressBar.SetValue(0)
		ui.filenameLabel.SetText("")
		ui.speedLabel.SetText("")
		ui.etaLabel.SetText("")
		ui.setStatus(TextReady, ColorText)
		ui.revealBtn.Hide()
	case model.PhaseDownloading:
		ui.progressBar.SetValue(state.Fraction)
		ui.filenameLabel.SetText(state.Filename)
		ui.speedLabel.SetText(TextSpeed + state.Speed)
		ui.etaLabel.SetText(TextETA + state.ETA)
		ui.setStatus(TextDownloading, ColorPrimary)
		ui.revealBtn.Hide()
	case model.PhasePostProcessing:
		ui.progressBar.SetValue(1)
		ui.speedLabel.SetText("")
		ui.etaLabel.SetText("")
		ui.setStatus(state.Status, ColorWarning)
		ui.revealBtn.Hide()
	case model.PhaseCompleted:
		ui.progressBar.SetValue(1)
		ui.speedLabel.SetText("")
		ui.etaLabel.SetText("")
		ui.filenameLabel.SetText(state.OutputPath)
		ui.setStatus(TextCompleted, ColorSuccess)
		if state.OutputPath != "" {
			ui.revealBtn.Show()
		}
	case model.PhaseError:
		ui.speedLabel.SetText("")
		ui.etaLabel.SetText("")
		ui.setStatus(TextErrorPrefix+state.Message, ColorDanger)
		ui.revealBtn.Hide()
	}
}

func (ui *RootUI) setStatus(text string, c fyne.ThemeColorName) {
	ui.statusLabel.Text = firstLine(text)
	ui.statusLabel.Color = CurrentColor(c)
	ui.statusLabel.Refresh()
}

// firstLine keeps multi-line yt-dlp errors to one status line
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func (ui *RootUI) onRevealClick() {
	path := ui.state.OutputPath
	if path == "" {
		return
	}
	if err := platform.OpenFileInManager(path); err != nil {
		ui.logger.Warn("failed to reveal file", zap.String("path", path), zap.Error(err))
		dialog.ShowError(fmt.Errorf("%s: %w", TextErrorOpeningFile, err), ui.window)
	}
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.logger).Show()
}

func (ui *RootUI) onShowHistory() {
	if ui.history == nil {
		dialog.ShowInformation(TextHistory, TextHistoryUnavailable, ui.window)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := ui.history.List(ctx, HistoryDialogLimit)
	if err != nil {
		ui.logger.Warn("failed to list history", zap.Error(err))
		dialog.ShowError(err, ui.window)
		return
	}
	showHistoryDialog(ui.window, entries)
}

// showNotification displays a message in the panel under the URL row.
// When spinning is true, a spinner indicates background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

func (ui *RootUI) hideNotification() {
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}
