package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-dlgui/internal/model"
)

// HistoryTimeLayout formats start times in the history list
const HistoryTimeLayout = "2006-01-02 15:04"

// historyLine renders one entry as a single line
func historyLine(e *model.HistoryEntry) string {
	line := fmt.Sprintf("%s  [%s]  %s", e.StartedAt.Format(HistoryTimeLayout), e.Status, e.GetDisplayTitle())
	if e.Format != model.FormatDefault {
		line += "  (" + e.Format.Label() + ")"
	}
	return line
}

func showHistoryDialog(window fyne.Window, entries []*model.HistoryEntry) {
	if len(entries) == 0 {
		dialog.ShowInformation(TextHistory, TextHistoryEmpty, window)
		return
	}

	list := widget.NewList(
		func() int { return len(entries) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(historyLine(entries[id]))
		},
	)

	d := dialog.NewCustom(TextHistory, "Close", container.NewStack(list), window)
	d.Resize(fyne.NewSize(HistoryDialogWidth, HistoryDialogHeight))
	d.Show()
}
