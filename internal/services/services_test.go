package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/model"
	"github.com/ytget/yt-dlgui/internal/repository/sqlite"
)

func TestOpenWiresServices(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(config.EnvDataDir, dataDir)
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvYtDlpPath, "/opt/bin/yt-dlp")

	store := config.NewStore(filepath.Join(t.TempDir(), config.ConfigFileName))
	s, err := Open(Options{
		EnvFiles:  []string{filepath.Join(t.TempDir(), "missing.env")},
		LogToFile: true,
		Store:     store,
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close(context.Background())

	if s.DataDir != dataDir {
		t.Errorf("Expected data dir %s, got %s", dataDir, s.DataDir)
	}
	if s.History == nil {
		t.Fatal("Expected history repository")
	}
	if _, err := os.Stat(filepath.Join(dataDir, sqlite.DatabaseFile)); err != nil {
		t.Errorf("Expected database file: %v", err)
	}
	if got := s.Settings.Effective().YtDlpPath; got != "/opt/bin/yt-dlp" {
		t.Errorf("Expected environment override, got %q", got)
	}
	if s.Controller.State().Phase != model.PhaseIdle {
		t.Errorf("Expected idle controller, got %s", s.Controller.State().Phase)
	}
}

func TestOpenMarksInterruptedHistory(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(config.EnvDataDir, dataDir)
	t.Setenv(config.EnvLogLevel, "error")

	db, err := sqlite.NewDatabase(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	id, err := db.HistoryRepo.RecordStart(context.Background(), &model.HistoryEntry{SessionID: "s", URL: "u"})
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	s, err := Open(Options{
		EnvFiles: []string{filepath.Join(t.TempDir(), "missing.env")},
		Store:    config.NewStore(filepath.Join(t.TempDir(), config.ConfigFileName)),
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close(context.Background())

	entry, err := s.History.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Status != model.HistoryStatusCancelled {
		t.Errorf("Expected Cancelled, got %s", entry.Status)
	}
}

func TestOpenRejectsBadLogLevel(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "verbose")
	t.Setenv(config.EnvDataDir, t.TempDir())

	_, err := Open(Options{EnvFiles: []string{filepath.Join(t.TempDir(), "missing.env")}})
	if err == nil {
		t.Fatal("Expected error for invalid log level")
	}
}

func TestCloseIsBounded(t *testing.T) {
	t.Setenv(config.EnvDataDir, t.TempDir())
	t.Setenv(config.EnvLogLevel, "error")

	s, err := Open(Options{
		EnvFiles: []string{filepath.Join(t.TempDir(), "missing.env")},
		Store:    config.NewStore(filepath.Join(t.TempDir(), config.ConfigFileName)),
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
