package ui

import "fyne.io/fyne/v2"

// AppIconName is the resource name of the application icon
const AppIconName = "yt-dlgui.svg"

var appIconSVG = []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
<rect x="4" y="12" width="56" height="40" rx="10" fill="#d93340"/>
<path d="M32 20v18m-8-8 8 8 8-8" stroke="#fff" stroke-width="5" fill="none" stroke-linecap="round" stroke-linejoin="round"/>
<rect x="20" y="42" width="24" height="4" rx="2" fill="#fff"/>
</svg>`)

// AppIconResource is the embedded application icon
var AppIconResource = fyne.NewStaticResource(AppIconName, appIconSVG)
