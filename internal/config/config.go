// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultAlarmTime      = "07:00"
	DefaultPollInterval   = 10 * time.Second
	DefaultStatusInterval = 1 * time.Second
	DefaultNotifyTimeout  = 10 * time.Second
)

// MatchMode selects how the scheduler decides the alarm time has arrived.
type MatchMode string

const (
	// MatchExact fires when the current "HH:MM" equals the alarm time.
	MatchExact MatchMode = "exact"
	// MatchDeadline fires once the current time reaches the next occurrence
	// of the alarm minute, even if the exact minute was missed.
	MatchDeadline MatchMode = "deadline"
)

// ValidMatchModes returns all valid match mode values.
func ValidMatchModes() []MatchMode {
	return []MatchMode{MatchExact, MatchDeadline}
}

// Output formats accepted by Marshal.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Config represents the songalarm configuration.
type Config struct {
	Alarm  AlarmConfig  `toml:"alarm" yaml:"alarm"`
	Audio  AudioConfig  `toml:"audio" yaml:"audio"`
	Notify NotifyConfig `toml:"notify" yaml:"notify"`
}

// AlarmConfig holds scheduling options.
type AlarmConfig struct {
	Time         string   `toml:"time" yaml:"time"`                   // "HH:MM", 24-hour clock
	PollInterval Duration `toml:"poll_interval" yaml:"poll_interval"` // Sleep between clock samples
	Match        string   `toml:"match" yaml:"match"`                 // exact, deadline
}

// AudioConfig holds playback options.
type AudioConfig struct {
	Song           string   `toml:"song" yaml:"song"`
	StatusInterval Duration `toml:"status_interval" yaml:"status_interval"` // Progress logging cadence
}

// NotifyConfig holds desktop notification options.
type NotifyConfig struct {
	Desktop bool     `toml:"desktop" yaml:"desktop"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Alarm: AlarmConfig{
			Time:         DefaultAlarmTime,
			PollInterval: Duration(DefaultPollInterval),
			Match:        string(MatchExact),
		},
		Audio: AudioConfig{
			Song:           "",
			StatusInterval: Duration(DefaultStatusInterval),
		},
		Notify: NotifyConfig{
			Desktop: false,
			Timeout: Duration(DefaultNotifyTimeout),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "songalarm", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path as TOML.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Marshal renders the configuration in the given format (toml or yaml).
func (c *Config) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatTOML:
		return toml.Marshal(c)
	case FormatYAML, "yml":
		return yaml.Marshal(c)
	default:
		return nil, fmt.Errorf("unsupported format %q, must be toml or yaml", format)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := ValidateAlarmTime(c.Alarm.Time); err != nil {
		return err
	}

	validMatch := false
	for _, m := range ValidMatchModes() {
		if c.Alarm.Match == string(m) {
			validMatch = true
			break
		}
	}
	if !validMatch {
		return fmt.Errorf("invalid match mode %q, must be one of: %v", c.Alarm.Match, ValidMatchModes())
	}

	if c.Alarm.PollInterval.Duration() <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.Alarm.PollInterval.Duration())
	}
	if c.Audio.StatusInterval.Duration() <= 0 {
		return fmt.Errorf("status_interval must be positive, got %s", c.Audio.StatusInterval.Duration())
	}

	if strings.TrimSpace(c.Audio.Song) == "" {
		return errors.New("no song configured: set [audio] song or pass --song")
	}

	return nil
}

// ValidateAlarmTime checks that s is a zero-padded 24-hour "HH:MM" string.
// The scheduler compares formatted strings, so "8:42" would never match.
func ValidateAlarmTime(s string) error {
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("invalid alarm time %q, must be HH:MM", s)
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid alarm time %q, must be HH:MM: %w", s, err)
	}
	return nil
}

// SongPath returns the configured song path with ~ expanded.
func (c *Config) SongPath() string {
	return ExpandPath(c.Audio.Song)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
