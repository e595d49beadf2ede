package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-dlgui/internal/config"
)

// SettingsDialog edits every yt-dlp option of config.Settings
type SettingsDialog struct {
	manager *config.Manager
	window  fyne.Window
	logger  *zap.Logger
	dialog  *dialog.ConfirmDialog

	// Output
	outputDirEntry *widget.Entry
	templateEntry  *widget.Entry

	// Quality
	qualityEntry *widget.Entry
	codecEntry   *widget.Entry

	// Subtitles
	subtitlesCheck  *widget.Check
	subLangsEntry   *widget.Entry
	embedSubsCheck  *widget.Check
	thumbnailCheck  *widget.Check
	metadataCheck   *widget.Check
	sponsorCheck    *widget.Check
	sponsorCatEntry *widget.Entry

	// Network
	proxyEntry     *widget.Entry
	rateLimitEntry *widget.Entry
	fragmentsEntry *widget.Entry
	cookiesEntry   *widget.Entry

	// Advanced
	ytDlpPathEntry  *widget.Entry
	jsRuntimesEntry *widget.Entry
	extraArgsEntry  *widget.Entry

	persistCheck *widget.Check
}

// NewSettingsDialog creates a settings dialog bound to manager
func NewSettingsDialog(manager *config.Manager, window fyne.Window, logger *zap.Logger) *SettingsDialog {
	if logger == nil {
		logger = zap.NewNop()
	}
	sd := &SettingsDialog{
		manager: manager,
		window:  window,
		logger:  logger,
	}
	sd.createUI()
	return sd
}

// Show displays the dialog filled with the live settings
func (sd *SettingsDialog) Show() {
	sd.load(sd.manager.Current())
	sd.persistCheck.SetChecked(sd.manager.Persist())
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.outputDirEntry = widget.NewEntry()
	sd.outputDirEntry.SetPlaceHolder("Current directory")
	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	sd.templateEntry = widget.NewEntry()
	sd.templateEntry.SetPlaceHolder(config.DefaultFilenameTemplate)

	sd.qualityEntry = widget.NewEntry()
	sd.qualityEntry.SetPlaceHolder("bestvideo[height<=1080]+bestaudio/best")
	sd.codecEntry = widget.NewEntry()
	sd.codecEntry.SetPlaceHolder("av01, vp9, h264")

	sd.subLangsEntry = widget.NewEntry()
	sd.subLangsEntry.SetPlaceHolder(config.DefaultSubtitleLanguages)
	sd.embedSubsCheck = widget.NewCheck("Embed subtitles", nil)
	sd.subtitlesCheck = widget.NewCheck("Download subtitles", sd.onSubtitlesToggled)

	sd.thumbnailCheck = widget.NewCheck("Embed thumbnail", nil)
	sd.metadataCheck = widget.NewCheck("Embed metadata", nil)

	sd.sponsorCatEntry = widget.NewEntry()
	sd.sponsorCatEntry.SetPlaceHolder(config.DefaultSponsorBlockCategories)
	sd.sponsorCheck = widget.NewCheck("Remove SponsorBlock segments", sd.onSponsorToggled)

	sd.proxyEntry = widget.NewEntry()
	sd.proxyEntry.SetPlaceHolder("socks5://127.0.0.1:1080")
	sd.rateLimitEntry = widget.NewEntry()
	sd.rateLimitEntry.SetPlaceHolder("e.g. 2M")
	sd.fragmentsEntry = widget.NewEntry()
	sd.fragmentsEntry.SetPlaceHolder(config.DefaultConcurrentFragments)

	sd.cookiesEntry = widget.NewEntry()
	sd.cookiesEntry.SetPlaceHolder("cookies.txt")
	browseCookiesBtn := widget.NewButton("Browse", sd.onBrowseCookies)
	cookiesRow := container.NewBorder(nil, nil, nil, browseCookiesBtn, sd.cookiesEntry)

	sd.ytDlpPathEntry = widget.NewEntry()
	sd.ytDlpPathEntry.SetPlaceHolder(config.DefaultYtDlpPath)
	sd.jsRuntimesEntry = widget.NewEntry()
	sd.jsRuntimesEntry.SetPlaceHolder("deno, node")
	sd.extraArgsEntry = widget.NewMultiLineEntry()
	sd.extraArgsEntry.SetPlaceHolder("--no-mtime --restrict-filenames")
	sd.extraArgsEntry.SetMinRowsVisible(2)

	sd.persistCheck = widget.NewCheck("Save settings to "+sd.manager.StorePath(), nil)
	resetBtn := widget.NewButton("Reset defaults", sd.onReset)
	resetBtn.Importance = widget.LowImportance

	form := container.NewVBox(
		widget.NewLabel("Output"),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Directory", outputDirRow),
			widget.NewFormItem("Filename template", sd.templateEntry),
		),

		widget.NewLabel("Quality"),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Format (-f)", sd.qualityEntry),
			widget.NewFormItem("Preferred codec", sd.codecEntry),
		),

		widget.NewLabel("Subtitles & metadata"),
		widget.NewSeparator(),
		sd.subtitlesCheck,
		widget.NewForm(widget.NewFormItem("Languages", sd.subLangsEntry)),
		sd.embedSubsCheck,
		sd.thumbnailCheck,
		sd.metadataCheck,
		sd.sponsorCheck,
		widget.NewForm(widget.NewFormItem("Categories", sd.sponsorCatEntry)),

		widget.NewLabel("Network"),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Proxy", sd.proxyEntry),
			widget.NewFormItem("Rate limit", sd.rateLimitEntry),
			widget.NewFormItem("Concurrent fragments", sd.fragmentsEntry),
			widget.NewFormItem("Cookies file", cookiesRow),
		),

		widget.NewLabel("Advanced"),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("yt-dlp path", sd.ytDlpPathEntry),
			widget.NewFormItem("JS runtimes", sd.jsRuntimesEntry),
			widget.NewFormItem("Extra arguments", sd.extraArgsEntry),
		),

		widget.NewSeparator(),
		sd.persistCheck,
		resetBtn,
	)

	sd.dialog = dialog.NewCustomConfirm(
		TextSettings,
		"Save",
		"Cancel",
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// load copies s into the widgets
func (sd *SettingsDialog) load(s config.Settings) {
	sd.outputDirEntry.SetText(s.OutputDirectory)
	sd.templateEntry.SetText(s.FilenameTemplate)
	sd.qualityEntry.SetText(s.PreferredQuality)
	sd.codecEntry.SetText(s.PreferredCodec)
	sd.subtitlesCheck.SetChecked(s.DownloadSubtitles)
	sd.subLangsEntry.SetText(s.SubtitleLanguages)
	sd.embedSubsCheck.SetChecked(s.EmbedSubtitles)
	sd.thumbnailCheck.SetChecked(s.EmbedThumbnail)
	sd.metadataCheck.SetChecked(s.EmbedMetadata)
	sd.sponsorCheck.SetChecked(s.EnableSponsorBlock)
	sd.sponsorCatEntry.SetText(s.SponsorBlockCategories)
	sd.proxyEntry.SetText(s.Proxy)
	sd.rateLimitEntry.SetText(s.RateLimit)
	sd.fragmentsEntry.SetText(s.ConcurrentFragments)
	sd.cookiesEntry.SetText(s.CookiesFile)
	sd.ytDlpPathEntry.SetText(s.YtDlpPath)
	sd.jsRuntimesEntry.SetText(s.JSRuntimes)
	sd.extraArgsEntry.SetText(s.ExtraArguments)

	sd.onSubtitlesToggled(s.DownloadSubtitles)
	sd.onSponsorToggled(s.EnableSponsorBlock)
}

// collect reads the widgets back into Settings
func (sd *SettingsDialog) collect() config.Settings {
	return config.Settings{
		OutputDirectory:        strings.TrimSpace(sd.outputDirEntry.Text),
		FilenameTemplate:       strings.TrimSpace(sd.templateEntry.Text),
		PreferredQuality:       strings.TrimSpace(sd.qualityEntry.Text),
		PreferredCodec:         strings.TrimSpace(sd.codecEntry.Text),
		DownloadSubtitles:      sd.subtitlesCheck.Checked,
		SubtitleLanguages:      strings.TrimSpace(sd.subLangsEntry.Text),
		EmbedSubtitles:         sd.embedSubsCheck.Checked,
		EmbedThumbnail:         sd.thumbnailCheck.Checked,
		EmbedMetadata:          sd.metadataCheck.Checked,
		EnableSponsorBlock:     sd.sponsorCheck.Checked,
		SponsorBlockCategories: strings.TrimSpace(sd.sponsorCatEntry.Text),
		Proxy:                  strings.TrimSpace(sd.proxyEntry.Text),
		RateLimit:              strings.TrimSpace(sd.rateLimitEntry.Text),
		ConcurrentFragments:    strings.TrimSpace(sd.fragmentsEntry.Text),
		CookiesFile:            strings.TrimSpace(sd.cookiesEntry.Text),
		YtDlpPath:              strings.TrimSpace(sd.ytDlpPathEntry.Text),
		JSRuntimes:             strings.TrimSpace(sd.jsRuntimesEntry.Text),
		ExtraArguments:         strings.TrimSpace(sd.extraArgsEntry.Text),
	}
}

func (sd *SettingsDialog) onSubtitlesToggled(on bool) {
	if on {
		sd.subLangsEntry.Enable()
		sd.embedSubsCheck.Enable()
	} else {
		sd.subLangsEntry.Disable()
		sd.embedSubsCheck.Disable()
	}
}

func (sd *SettingsDialog) onSponsorToggled(on bool) {
	if on {
		sd.sponsorCatEntry.Enable()
	} else {
		sd.sponsorCatEntry.Disable()
	}
}

func (sd *SettingsDialog) onReset() {
	sd.load(config.Default())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onBrowseCookies() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		sd.cookiesEntry.SetText(reader.URI().Path())
	}, sd.window)
}

// apply stores the edited settings and the persistence choice
func (sd *SettingsDialog) apply() error {
	if err := sd.manager.SetPersist(sd.persistCheck.Checked); err != nil {
		return err
	}
	return sd.manager.Save(sd.collect())
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	if err := sd.apply(); err != nil {
		sd.logger.Error("failed to save settings", zap.Error(err))
		dialog.ShowError(err, sd.window)
		return
	}
	sd.logger.Info("settings saved", zap.Bool("persist", sd.manager.Persist()))
}
