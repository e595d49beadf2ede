// Package ui contains the Fyne desktop interface: a single home view that
// starts and cancels one download at a time and renders the controller's
// state, plus the settings and history dialogs.
package ui
