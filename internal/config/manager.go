package config

import (
	"fmt"
	"sync"
)

// Manager owns the live Settings and decides whether edits reach disk.
// Persistence is on when a settings file existed at load time or after it
// has been switched on.
type Manager struct {
	store *Store

	mu       sync.RWMutex
	settings Settings
	persist  bool
	override func(Settings) Settings
}

// NewManager loads settings from the store. A corrupt file yields defaults
// together with the parse error.
func NewManager(store *Store) (*Manager, error) {
	settings, found, err := store.Load()
	m := &Manager{
		store:    store,
		settings: settings,
		persist:  found,
	}
	if err != nil {
		return m, fmt.Errorf("load settings: %w", err)
	}
	return m, nil
}

// Current returns a copy of the live settings
func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// SetOverride installs a function applied by Effective, such as environment
// overrides that must never be written to the settings file.
func (m *Manager) SetOverride(fn func(Settings) Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.override = fn
}

// Effective returns the live settings with the override applied. Downloads
// use this; the settings dialog edits Current.
func (m *Manager) Effective() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.override == nil {
		return m.settings
	}
	return m.override(m.settings)
}

// Persist reports whether saved settings are written to disk
func (m *Manager) Persist() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.persist
}

// StorePath returns the settings file location
func (m *Manager) StorePath() string {
	return m.store.Path()
}

// Save replaces the live settings and writes them when persistence is on
func (m *Manager) Save(settings Settings) error {
	m.mu.Lock()
	m.settings = settings
	persist := m.persist
	m.mu.Unlock()

	if !persist {
		return nil
	}
	return m.store.Save(settings)
}

// SetPersist toggles persistence. Turning it off deletes the settings file;
// turning it on takes effect on the next Save.
func (m *Manager) SetPersist(enabled bool) error {
	m.mu.Lock()
	m.persist = enabled
	m.mu.Unlock()

	if !enabled {
		return m.store.Delete()
	}
	return nil
}
