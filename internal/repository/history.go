// Package repository defines persistence interfaces for download history.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ytget/yt-dlgui/internal/model"
)

// ErrNotFound is returned when a history entry does not exist
var ErrNotFound = errors.New("history entry not found")

// HistoryRepository stores one row per download session
type HistoryRepository interface {
	// RecordStart inserts a running entry and returns its ID
	RecordStart(ctx context.Context, entry *model.HistoryEntry) (int64, error)

	// RecordFinish stores the final status of an entry
	RecordFinish(ctx context.Context, id int64, status model.HistoryStatus, outputPath, errMsg string, finishedAt time.Time) error

	// Get returns one entry
	Get(ctx context.Context, id int64) (*model.HistoryEntry, error)

	// List returns the most recent entries, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*model.HistoryEntry, error)

	// MarkInterrupted finishes entries left running by a previous process
	MarkInterrupted(ctx context.Context, finishedAt time.Time) (int64, error)

	// Clear deletes every entry
	Clear(ctx context.Context) error
}
