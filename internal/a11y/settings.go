// Package a11y holds the visitor's accessibility preferences and keyboard
// navigation between sections.
package a11y

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StorageKey is the persisted-storage key of the settings record.
const StorageKey = "a11ySettings"

// ErrMalformed is returned when a persisted record cannot be decoded.
var ErrMalformed = errors.New("malformed accessibility settings")

// Flag names one setting.
type Flag string

const (
	ReduceMotion Flag = "reduceMotion"
	HighContrast Flag = "highContrast"
	LargeText    Flag = "largeText"
	ScreenReader Flag = "screenReader"
)

// Flags lists every setting in display order.
var Flags = []Flag{ReduceMotion, HighContrast, LargeText, ScreenReader}

// ParseFlag validates a flag name.
func ParseFlag(s string) (Flag, error) {
	for _, f := range Flags {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown accessibility flag %q", s)
}

// Class returns the body class toggled by f.
func (f Flag) Class() string {
	switch f {
	case ReduceMotion:
		return "reduce-motion"
	case HighContrast:
		return "high-contrast"
	case LargeText:
		return "large-text"
	case ScreenReader:
		return "screen-reader"
	}
	return ""
}

// Label is the human readable toggle label.
func (f Flag) Label() string {
	switch f {
	case ReduceMotion:
		return "Reduce motion"
	case HighContrast:
		return "High contrast"
	case LargeText:
		return "Larger text"
	case ScreenReader:
		return "Screen reader optimized"
	}
	return string(f)
}

// Settings is the persisted record. The JSON field names match the stored
// browser record.
type Settings struct {
	ReduceMotion bool `json:"reduceMotion"`
	HighContrast bool `json:"highContrast"`
	LargeText    bool `json:"largeText"`
	ScreenReader bool `json:"screenReader"`
}

// Get returns the value of f.
func (s Settings) Get(f Flag) bool {
	switch f {
	case ReduceMotion:
		return s.ReduceMotion
	case HighContrast:
		return s.HighContrast
	case LargeText:
		return s.LargeText
	case ScreenReader:
		return s.ScreenReader
	}
	return false
}

// With returns a copy of s with f set to v.
func (s Settings) With(f Flag, v bool) Settings {
	switch f {
	case ReduceMotion:
		s.ReduceMotion = v
	case HighContrast:
		s.HighContrast = v
	case LargeText:
		s.LargeText = v
	case ScreenReader:
		s.ScreenReader = v
	}
	return s
}

// Toggle returns a copy of s with f inverted.
func (s Settings) Toggle(f Flag) Settings {
	return s.With(f, !s.Get(f))
}

// BodyClasses returns the classes of enabled flags in display order.
func (s Settings) BodyClasses() []string {
	var out []string
	for _, f := range Flags {
		if s.Get(f) {
			out = append(out, f.Class())
		}
	}
	return out
}

// Encode serialises s for storage.
func (s Settings) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode accessibility settings: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored record. Invalid input yields ErrMalformed.
func Decode(raw string) (Settings, error) {
	var s Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return s, nil
}

// Storage is a string key/value store such as browser localStorage.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Load reads settings from st. A missing record yields defaults; a
// malformed one yields defaults together with ErrMalformed.
func Load(st Storage) (Settings, error) {
	raw, ok, err := st.Get(StorageKey)
	if err != nil {
		return Settings{}, fmt.Errorf("read accessibility settings: %w", err)
	}
	if !ok {
		return Settings{}, nil
	}
	return Decode(raw)
}

// Save writes settings to st.
func Save(st Storage, s Settings) error {
	raw, err := s.Encode()
	if err != nil {
		return err
	}
	if err := st.Set(StorageKey, raw); err != nil {
		return fmt.Errorf("write accessibility settings: %w", err)
	}
	return nil
}
