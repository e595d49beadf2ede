package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ytget/yt-dlgui/internal/platform"
)

// ConfigFileName is the settings file inside the app config directory
const ConfigFileName = "config.yaml"

// Store persists Settings as a YAML file
type Store struct {
	path string
}

// NewStore creates a store for the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns the store at <user config dir>/yt-dlgui/config.yaml
func DefaultStore() (*Store, error) {
	dir, err := platform.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(dir, ConfigFileName)), nil
}

// Path returns the settings file path
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a settings file has been saved
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the saved settings. Keys missing from the file keep their
// defaults. found is false when no file exists.
func (s *Store) Load() (settings Settings, found bool, err error) {
	settings = Default()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, false, nil
	}
	if err != nil {
		return settings, false, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Default(), true, fmt.Errorf("parse config file: %w", err)
	}
	return settings, true, nil
}

// Save writes the settings, creating the config directory if needed
func (s *Store) Save(settings Settings) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, platform.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Delete removes the settings file. A missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete config file: %w", err)
	}
	return nil
}
