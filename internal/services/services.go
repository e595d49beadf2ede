// Package services wires the configuration, logging, history and download
// layers shared by the desktop and terminal front ends.
package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/download"
	"github.com/ytget/yt-dlgui/internal/logging"
	"github.com/ytget/yt-dlgui/internal/platform"
	"github.com/ytget/yt-dlgui/internal/repository"
	"github.com/ytget/yt-dlgui/internal/repository/sqlite"
)

// Options controls how Open builds the services
type Options struct {
	// EnvFiles are the .env files to load; ".env" when empty
	EnvFiles []string
	// LogToFile writes logs under the data directory instead of stderr
	LogToFile bool
	// Store overrides the default settings file location
	Store *config.Store
}

// Services holds everything a front end needs
type Services struct {
	Env        config.Environment
	DataDir    string
	Logger     *zap.Logger
	Settings   *config.Manager
	History    repository.HistoryRepository
	Controller *download.Controller

	db *sqlite.Database
}

// Open loads the environment and settings, opens the history database and
// creates the download controller. A broken history database is logged and
// downloads continue without history.
func Open(opts Options) (*Services, error) {
	env, err := config.LoadEnvironment(opts.EnvFiles...)
	if err != nil {
		return nil, err
	}

	dataDir := env.DataDir
	if dataDir == "" {
		if dataDir, err = platform.GetDataDir(); err != nil {
			return nil, err
		}
	}

	var logger *zap.Logger
	if opts.LogToFile {
		logger, err = logging.NewFile(env.LogLevel, dataDir)
	} else {
		logger, err = logging.New(env.LogLevel)
	}
	if err != nil {
		return nil, err
	}

	store := opts.Store
	if store == nil {
		if store, err = config.DefaultStore(); err != nil {
			return nil, err
		}
	}
	settings, err := config.NewManager(store)
	if err != nil {
		logger.Warn("using default settings", zap.String("path", store.Path()), zap.Error(err))
	}
	settings.SetOverride(env.Apply)

	s := &Services{
		Env:      env,
		DataDir:  dataDir,
		Logger:   logger,
		Settings: settings,
	}

	var recorder download.HistoryRecorder
	db, err := sqlite.NewDatabase(dataDir)
	if err != nil {
		logger.Warn("download history disabled", zap.String("data_dir", dataDir), zap.Error(err))
	} else {
		s.db = db
		s.History = db.HistoryRepo
		recorder = db.HistoryRepo
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if n, err := db.HistoryRepo.MarkInterrupted(ctx, time.Now()); err != nil {
			logger.Warn("failed to close interrupted history entries", zap.Error(err))
		} else if n > 0 {
			logger.Info("closed interrupted history entries", zap.Int64("count", n))
		}
		cancel()
	}

	s.Controller = download.NewController(download.NewRunner(logger), logger, recorder)

	logger.Info("services ready",
		zap.String("data_dir", dataDir),
		zap.String("config", store.Path()),
		zap.Bool("persist_settings", settings.Persist()),
		zap.Bool("history", s.History != nil))
	return s, nil
}

// Close cancels any running download and releases the database and logger
func (s *Services) Close(ctx context.Context) error {
	var firstErr error
	if err := s.Controller.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("shutdown downloads: %w", err)
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close database: %w", err)
		}
	}
	_ = s.Logger.Sync()
	return firstErr
}
