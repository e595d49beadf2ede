package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ytget/yt-dlgui/internal/model"
	"github.com/ytget/yt-dlgui/internal/repository"
)

// HistoryRepository implements repository.HistoryRepository on SQLite
type HistoryRepository struct {
	db *sqlx.DB
}

var _ repository.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a history repository on db
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// historyRow maps the history table
type historyRow struct {
	ID           int64          `db:"id"`
	SessionID    string         `db:"session_id"`
	URL          string         `db:"url"`
	Format       string         `db:"format"`
	Status       string         `db:"status"`
	OutputPath   sql.NullString `db:"output_path"`
	ErrorMessage sql.NullString `db:"error_message"`
	StartedAt    int64          `db:"started_at"`
	FinishedAt   sql.NullInt64  `db:"finished_at"`
}

// RecordStart inserts a new running entry
func (r *HistoryRepository) RecordStart(ctx context.Context, entry *model.HistoryEntry) (int64, error) {
	status := entry.Status
	if status == "" {
		status = model.HistoryStatusDownloading
	}
	startedAt := entry.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	query := `
		INSERT INTO history (session_id, url, format, status, started_at)
		VALUES (:session_id, :url, :format, :status, :started_at)
	`
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"session_id": entry.SessionID,
		"url":        entry.URL,
		"format":     entry.Format.String(),
		"status":     string(status),
		"started_at": startedAt.UnixMilli(),
	})
	if err != nil {
		return 0, fmt.Errorf("insert history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

// RecordFinish stores the final status of an entry
func (r *HistoryRepository) RecordFinish(ctx context.Context, id int64, status model.HistoryStatus, outputPath, errMsg string, finishedAt time.Time) error {
	query := `
		UPDATE history
		SET status = :status, output_path = :output_path,
		    error_message = :error_message, finished_at = :finished_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":            id,
		"status":        string(status),
		"output_path":   nullString(outputPath),
		"error_message": nullString(errMsg),
		"finished_at":   finishedAt.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("update history: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", repository.ErrNotFound, id)
	}
	return nil
}

// Get returns a single entry
func (r *HistoryRepository) Get(ctx context.Context, id int64) (*model.HistoryEntry, error) {
	var row historyRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM history WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", repository.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get history: %w", err)
	}
	return rowToModel(&row)
}

// List returns the newest entries first
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]*model.HistoryEntry, error) {
	query := `SELECT * FROM history ORDER BY started_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]*model.HistoryEntry, 0, len(rows))
	for i := range rows {
		entry, err := rowToModel(&rows[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MarkInterrupted marks entries still in the downloading state as cancelled
func (r *HistoryRepository) MarkInterrupted(ctx context.Context, finishedAt time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE history SET status = ?, finished_at = ? WHERE status = ?`,
		string(model.HistoryStatusCancelled), finishedAt.UnixMilli(), string(model.HistoryStatusDownloading))
	if err != nil {
		return 0, fmt.Errorf("mark interrupted: %w", err)
	}
	return result.RowsAffected()
}

// Clear deletes every entry
func (r *HistoryRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func rowToModel(row *historyRow) (*model.HistoryEntry, error) {
	format, err := model.ParseFormat(row.Format)
	if err != nil {
		return nil, fmt.Errorf("history %d: %w", row.ID, err)
	}

	entry := &model.HistoryEntry{
		ID:         row.ID,
		SessionID:  row.SessionID,
		URL:        row.URL,
		Format:     format,
		Status:     model.HistoryStatus(row.Status),
		OutputPath: row.OutputPath.String,
		LastError:  row.ErrorMessage.String,
		StartedAt:  time.UnixMilli(row.StartedAt),
	}
	if row.FinishedAt.Valid {
		entry.FinishedAt = time.UnixMilli(row.FinishedAt.Int64)
	}
	return entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
