package ui

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/yt-dlgui/internal/config"
)

func newTestSettingsDialog(t *testing.T) (*SettingsDialog, *config.Manager, string) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	path := filepath.Join(t.TempDir(), "config.yaml")
	manager, err := config.NewManager(config.NewStore(path))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	return NewSettingsDialog(manager, w, nil), manager, path
}

func TestSettingsDialogLoadCollect(t *testing.T) {
	sd, _, _ := newTestSettingsDialog(t)

	s := config.Default()
	s.OutputDirectory = "/videos"
	s.PreferredQuality = "best"
	s.PreferredCodec = "vp9"
	s.DownloadSubtitles = true
	s.SubtitleLanguages = "en,fr"
	s.EmbedSubtitles = true
	s.EmbedThumbnail = true
	s.EnableSponsorBlock = true
	s.SponsorBlockCategories = "sponsor,selfpromo"
	s.Proxy = "http://proxy:8080"
	s.RateLimit = "500K"
	s.ConcurrentFragments = "8"
	s.CookiesFile = "/tmp/cookies.txt"
	s.JSRuntimes = "deno"
	s.ExtraArguments = "--no-mtime"

	sd.load(s)
	if got := sd.collect(); got != s {
		t.Errorf("Round trip mismatch:\nexpected %+v\ngot      %+v", s, got)
	}
}

func TestSettingsDialogToggles(t *testing.T) {
	sd, _, _ := newTestSettingsDialog(t)
	sd.load(config.Default())

	if !sd.subLangsEntry.Disabled() || !sd.embedSubsCheck.Disabled() {
		t.Error("Expected subtitle options disabled by default")
	}
	if !sd.sponsorCatEntry.Disabled() {
		t.Error("Expected SponsorBlock categories disabled by default")
	}

	sd.subtitlesCheck.SetChecked(true)
	sd.sponsorCheck.SetChecked(true)
	if sd.subLangsEntry.Disabled() || sd.sponsorCatEntry.Disabled() {
		t.Error("Expected options enabled after toggling")
	}
}

func TestSettingsDialogReset(t *testing.T) {
	sd, _, _ := newTestSettingsDialog(t)

	sd.proxyEntry.SetText("http://proxy")
	sd.thumbnailCheck.SetChecked(true)
	sd.onReset()

	if got := sd.collect(); got != config.Default() {
		t.Errorf("Expected defaults after reset, got %+v", got)
	}
}

func TestSettingsDialogApplyPersistence(t *testing.T) {
	sd, manager, path := newTestSettingsDialog(t)
	store := config.NewStore(path)

	sd.Show()
	sd.proxyEntry.SetText("http://proxy:3128")
	sd.persistCheck.SetChecked(true)
	if err := sd.apply(); err != nil {
		t.Fatalf("Failed to apply: %v", err)
	}
	if manager.Current().Proxy != "http://proxy:3128" {
		t.Errorf("Expected live settings updated, got %+v", manager.Current())
	}
	if !store.Exists() {
		t.Fatal("Expected settings file to be written")
	}

	sd.persistCheck.SetChecked(false)
	if err := sd.apply(); err != nil {
		t.Fatalf("Failed to apply: %v", err)
	}
	if store.Exists() {
		t.Error("Expected settings file to be removed when persistence is off")
	}
}
