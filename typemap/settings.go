package typemap

import "sync"

// Names of the session settings consumed by the forward mapper.
const (
	// SettingTinyInt1AsBoolean maps tinyint(1) columns to BOOLEAN.
	SettingTinyInt1AsBoolean = "mysql_tinyint1_as_boolean"

	// SettingBit1AsBoolean maps bit(1) columns to BOOLEAN.
	SettingBit1AsBoolean = "mysql_bit1_as_boolean"
)

// Settings provides session-scoped configuration to the type mapper.
// Values are read fresh on every conversion call, never cached, so a
// setting toggled mid-session changes subsequent conversions.
type Settings interface {
	// CurrentSetting returns the value of a named boolean setting.
	// Returns (false, false) if the setting is not present.
	CurrentSetting(name string) (value, ok bool)
}

// SessionSettings is a mutex-guarded Settings implementation.
// The zero value is ready to use; all settings default to off.
type SessionSettings struct {
	mu     sync.RWMutex
	values map[string]bool
}

// Set stores a boolean setting value.
func (s *SessionSettings) Set(name string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]bool)
	}
	s.values[name] = value
}

// CurrentSetting implements Settings.
func (s *SessionSettings) CurrentSetting(name string) (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[name]
	return value, ok
}
