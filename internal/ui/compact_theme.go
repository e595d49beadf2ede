package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Status colours used by the home view
const (
	ColorText    = theme.ColorNameForeground
	ColorPrimary = theme.ColorNamePrimary
	ColorSuccess = theme.ColorNameSuccess
	ColorWarning = theme.ColorNameWarning
	ColorDanger  = theme.ColorNameError
)

// Palette
var (
	colorBackground = color.NRGBA{R: 26, G: 26, B: 31, A: 255}
	colorSurface    = color.NRGBA{R: 38, G: 38, B: 46, A: 255}
	colorText       = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	colorPrimary    = color.NRGBA{R: 217, G: 51, B: 64, A: 255}
	colorSuccess    = color.NRGBA{R: 77, G: 179, B: 89, A: 255}
	colorDanger     = color.NRGBA{R: 230, G: 64, B: 64, A: 255}
	colorWarning    = color.NRGBA{R: 242, G: 191, B: 51, A: 255}
)

// CompactTheme is a dark theme with reduced padding and font sizes
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors. The palette is dark regardless of variant.
func (t *CompactTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return colorBackground
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return colorSurface
	case theme.ColorNameForeground:
		return colorText
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return colorPrimary
	case theme.ColorNameSuccess:
		return colorSuccess
	case theme.ColorNameError:
		return colorDanger
	case theme.ColorNameWarning:
		return colorWarning
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}
	return theme.DefaultTheme().Size(name)
}

// CurrentColor resolves a colour name against the running app's theme
func CurrentColor(name fyne.ThemeColorName) color.Color {
	return theme.Color(name)
}
