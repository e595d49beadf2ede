package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/yt-dlgui/internal/model"
)

// Preference keys for UI-only state
const (
	KeyLastFormat = "last_format"
	KeyLastURL    = "last_url"
)

// Preferences wraps Fyne preferences for state that is not part of Settings
type Preferences struct {
	app fyne.App
}

// NewPreferences creates a preferences accessor for the app
func NewPreferences(app fyne.App) *Preferences {
	return &Preferences{app: app}
}

// LastFormat returns the format selected in the previous session
func (p *Preferences) LastFormat() model.Format {
	f, err := model.ParseFormat(p.app.Preferences().String(KeyLastFormat))
	if err != nil {
		return model.FormatDefault
	}
	return f
}

// SetLastFormat remembers the selected format
func (p *Preferences) SetLastFormat(f model.Format) {
	p.app.Preferences().SetString(KeyLastFormat, f.String())
}

// LastURL returns the URL of the previous download
func (p *Preferences) LastURL() string {
	return p.app.Preferences().String(KeyLastURL)
}

// SetLastURL remembers the URL of the latest download
func (p *Preferences) SetLastURL(url string) {
	p.app.Preferences().SetString(KeyLastURL, url)
}
