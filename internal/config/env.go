package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvLogLevel  = "YTDLGUI_LOG_LEVEL"
	EnvDataDir   = "YTDLGUI_DATA_DIR"
	EnvYtDlpPath = "YTDLGUI_YTDLP_PATH"
)

// DefaultLogLevel is used when YTDLGUI_LOG_LEVEL is unset
const DefaultLogLevel = "info"

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Environment holds process-level overrides read from the environment
type Environment struct {
	LogLevel  string
	DataDir   string // empty means the platform default
	YtDlpPath string // overrides Settings.YtDlpPath when set
}

// LoadEnvironment reads the given .env files (".env" when none are given)
// into the process environment and then the YTDLGUI_* variables. Missing
// .env files are ignored.
func LoadEnvironment(files ...string) (Environment, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Environment{}, fmt.Errorf("load .env: %w", err)
	}

	env := Environment{
		LogLevel:  strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))),
		DataDir:   strings.TrimSpace(os.Getenv(EnvDataDir)),
		YtDlpPath: strings.TrimSpace(os.Getenv(EnvYtDlpPath)),
	}
	if env.LogLevel == "" {
		env.LogLevel = DefaultLogLevel
	}

	if err := env.Validate(); err != nil {
		return env, err
	}
	return env, nil
}

// Validate checks the log level
func (e Environment) Validate() error {
	if !validLogLevels[e.LogLevel] {
		return fmt.Errorf("invalid log level: %s. Valid levels are: debug, info, warn, error", e.LogLevel)
	}
	return nil
}

// Apply returns settings with environment overrides applied
func (e Environment) Apply(s Settings) Settings {
	if e.YtDlpPath != "" {
		s.YtDlpPath = e.YtDlpPath
	}
	return s
}
