// Package settings persists user preferences (sound, default variant and
// difficulty) in the platform's per-user data directory.
package settings

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/parkour/internal/config"
)

// AppName is the gdata application name; it decides the storage directory.
const AppName = "parkour"

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// ErrUnknownKey is returned by Set for keys it does not know.
var ErrUnknownKey = errors.New("settings: unknown key")

// Settings are the user's persisted preferences.
type Settings struct {
	SoundEnabled bool    `yaml:"sound_enabled"`
	Volume       float64 `yaml:"volume"`      // 0.0 ~ 1.0
	Variant      string  `yaml:"variant"`     // Default game variant
	Difficulty   string  `yaml:"difficulty"`  // Empty keeps the config's speed
	HoldWindow   float64 `yaml:"hold_window"` // Seconds a terminal key counts as held
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{
		SoundEnabled: true,
		Volume:       0.6,
		Variant:      string(config.VariantFull),
		HoldWindow:   0.25,
	}
}

// objectStore is the subset of *gdata.Manager used here.
type objectStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Manager loads and saves Settings. With a nil store it keeps settings in
// memory only.
type Manager struct {
	store    objectStore
	settings Settings
}

// Open creates a manager backed by gdata storage and loads saved settings.
// A load failure is returned alongside a usable manager holding defaults.
func Open() (*Manager, error) {
	gm, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return New(nil), fmt.Errorf("settings: cannot open storage: %w", err)
	}
	m := New(gm)
	return m, m.Load()
}

// New creates a manager over the given store, starting from defaults.
func New(store objectStore) *Manager {
	return &Manager{store: store, settings: Defaults()}
}

// Load reads the saved settings. Missing settings are not an error.
func (m *Manager) Load() error {
	m.settings = Defaults()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: unmarshal: %w", err)
	}
	m.settings = loaded
	return nil
}

// Save writes the current settings.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// Settings returns the current settings.
func (m *Manager) Settings() Settings {
	return m.settings
}

// Persistent reports whether settings survive the process.
func (m *Manager) Persistent() bool {
	return m.store != nil
}

// Keys lists the names accepted by Set.
func Keys() []string {
	keys := []string{"sound", "volume", "variant", "difficulty", "hold_window"}
	sort.Strings(keys)
	return keys
}

// Get returns a setting formatted for display.
func (m *Manager) Get(key string) (string, error) {
	s := m.settings
	switch key {
	case "sound":
		if s.SoundEnabled {
			return "on", nil
		}
		return "off", nil
	case "volume":
		return strconv.FormatFloat(s.Volume, 'g', -1, 64), nil
	case "variant":
		return s.Variant, nil
	case "difficulty":
		return s.Difficulty, nil
	case "hold_window":
		return strconv.FormatFloat(s.HoldWindow, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Set parses and applies one setting. It does not save.
func (m *Manager) Set(key, value string) error {
	switch key {
	case "sound":
		switch strings.ToLower(value) {
		case "on", "true", "yes", "1":
			m.settings.SoundEnabled = true
		case "off", "false", "no", "0":
			m.settings.SoundEnabled = false
		default:
			return fmt.Errorf("settings: sound must be on or off, got %q", value)
		}

	case "volume":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("settings: volume: %w", err)
		}
		m.settings.Volume = clampVolume(v)

	case "variant":
		v, err := config.ParseVariant(value)
		if err != nil {
			return err
		}
		m.settings.Variant = string(v)

	case "difficulty":
		d, err := config.ParseDifficulty(value)
		if err != nil {
			return err
		}
		m.settings.Difficulty = string(d)

	case "hold_window":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("settings: hold_window: %w", err)
		}
		if v <= 0 || v > 2 {
			return fmt.Errorf("settings: hold_window must be in (0, 2], got %g", v)
		}
		m.settings.HoldWindow = v

	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
