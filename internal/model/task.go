package model

import (
	"strings"
	"time"
)

// HistoryEntry is one recorded download session
type HistoryEntry struct {
	ID         int64
	SessionID  string
	URL        string
	Format     Format
	Status     HistoryStatus
	OutputPath string    // path reported by yt-dlp on success
	LastError  string    // failure message if any
	StartedAt  time.Time // when the session started
	FinishedAt time.Time // zero while the session is running
}

// Duration returns how long the session ran, or zero while it is running
func (he *HistoryEntry) Duration() time.Duration {
	if he.FinishedAt.IsZero() || he.StartedAt.IsZero() {
		return 0
	}
	return he.FinishedAt.Sub(he.StartedAt)
}

// GetDisplayTitle returns the output filename without extension, or the URL
func (he *HistoryEntry) GetDisplayTitle() string {
	if he.OutputPath != "" {
		// Support both / and \ separators
		parts := strings.FieldsFunc(he.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}
	return he.URL
}
