package a11y

import "fmt"

// ClassList toggles classes on the document body.
type ClassList interface {
	Toggle(class string, on bool)
}

// Manager applies and persists settings on every change.
type Manager struct {
	storage  Storage
	body     ClassList
	settings Settings
}

// NewManager loads persisted settings and applies them to body. When the
// record is malformed or storage cannot be read, defaults are applied and
// the error is returned alongside a usable manager.
func NewManager(storage Storage, body ClassList) (*Manager, error) {
	m := &Manager{storage: storage, body: body}
	settings, err := Load(storage)
	if err != nil {
		settings = Settings{}
	}
	m.settings = settings
	m.apply()
	return m, err
}

// Settings returns the current settings.
func (m *Manager) Settings() Settings {
	return m.settings
}

// Toggle flips f, applies it and persists the new record.
func (m *Manager) Toggle(f Flag) (Settings, error) {
	m.settings = m.settings.Toggle(f)
	if m.body != nil {
		m.body.Toggle(f.Class(), m.settings.Get(f))
	}
	if err := Save(m.storage, m.settings); err != nil {
		return m.settings, fmt.Errorf("toggle %s: %w", f, err)
	}
	return m.settings, nil
}

// Sync adopts settings persisted elsewhere, such as another tab, without
// writing them back.
func (m *Manager) Sync(s Settings) {
	m.settings = s
	m.apply()
}

func (m *Manager) apply() {
	if m.body == nil {
		return
	}
	for _, f := range Flags {
		m.body.Toggle(f.Class(), m.settings.Get(f))
	}
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	values map[string]string
}

// NewMemoryStorage creates an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get implements Storage.
func (s *MemoryStorage) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements Storage.
func (s *MemoryStorage) Set(key, value string) error {
	s.values[key] = value
	return nil
}
