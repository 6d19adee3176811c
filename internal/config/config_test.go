package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "07:00", cfg.Alarm.Time)
	assert.Equal(t, 10*time.Second, cfg.Alarm.PollInterval.Duration())
	assert.Equal(t, "exact", cfg.Alarm.Match)
	assert.Empty(t, cfg.Audio.Song)
	assert.Equal(t, time.Second, cfg.Audio.StatusInterval.Duration())
	assert.False(t, cfg.Notify.Desktop)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout.Duration())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[alarm]
time = "08:42"
poll_interval = "5s"
match = "deadline"

[audio]
song = "/music/wake.mp3"
status_interval = "500"

[notify]
desktop = true
timeout = "30s"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "08:42", cfg.Alarm.Time)
	assert.Equal(t, 5*time.Second, cfg.Alarm.PollInterval.Duration())
	assert.Equal(t, "deadline", cfg.Alarm.Match)
	assert.Equal(t, "/music/wake.mp3", cfg.Audio.Song)
	assert.Equal(t, 500*time.Millisecond, cfg.Audio.StatusInterval.Duration())
	assert.True(t, cfg.Notify.Desktop)
	assert.Equal(t, 30*time.Second, cfg.Notify.Timeout.Duration())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
alarm:
  time: "06:15"
  poll_interval: 2s
audio:
  song: /music/rooster.wav
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "06:15", cfg.Alarm.Time)
	assert.Equal(t, 2*time.Second, cfg.Alarm.PollInterval.Duration())
	assert.Equal(t, "/music/rooster.wav", cfg.Audio.Song)

	// Unset fields keep defaults
	assert.Equal(t, "exact", cfg.Alarm.Match)
	assert.Equal(t, time.Second, cfg.Audio.StatusInterval.Duration())
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[audio]
song = "~/Music/alarm.ogg"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "~/Music/alarm.ogg", cfg.Audio.Song)
	assert.Equal(t, DefaultAlarmTime, cfg.Alarm.Time)
	assert.Equal(t, DefaultPollInterval, cfg.Alarm.PollInterval.Duration())
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	err := os.WriteFile(path, []byte(`this is not valid toml [`), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[alarm]
poll_interval = "soon"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Alarm.Time = "05:30"
	cfg.Audio.Song = "/tmp/song.mp3"

	err := cfg.Save(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_Marshal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audio.Song = "/tmp/song.mp3"

	data, err := cfg.Marshal("toml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "[alarm]")
	assert.Contains(t, string(data), "poll_interval")
	assert.Contains(t, string(data), "10s")

	data, err = cfg.Marshal("yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "alarm:")
	assert.Contains(t, string(data), "song: /tmp/song.mp3")

	_, err = cfg.Marshal("xml")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Audio.Song = "/tmp/song.mp3"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"midnight", func(c *Config) { c.Alarm.Time = "00:00" }, ""},
		{"last minute", func(c *Config) { c.Alarm.Time = "23:59" }, ""},
		{"unpadded hour", func(c *Config) { c.Alarm.Time = "8:42" }, "must be HH:MM"},
		{"hour out of range", func(c *Config) { c.Alarm.Time = "24:00" }, "must be HH:MM"},
		{"minute out of range", func(c *Config) { c.Alarm.Time = "12:60" }, "must be HH:MM"},
		{"seconds", func(c *Config) { c.Alarm.Time = "08:42:00" }, "must be HH:MM"},
		{"empty time", func(c *Config) { c.Alarm.Time = "" }, "must be HH:MM"},
		{"bad match", func(c *Config) { c.Alarm.Match = "fuzzy" }, "invalid match mode"},
		{"zero poll", func(c *Config) { c.Alarm.PollInterval = 0 }, "poll_interval"},
		{"zero status", func(c *Config) { c.Audio.StatusInterval = 0 }, "status_interval"},
		{"no song", func(c *Config) { c.Audio.Song = " " }, "no song configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/songalarm/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	path := ConfigPath()
	assert.Contains(t, path, "songalarm/config.toml")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Music", "a.mp3"), ExpandPath("~/Music/a.mp3"))
	assert.Equal(t, "/abs/a.mp3", ExpandPath("/abs/a.mp3"))
	assert.Equal(t, "~user/a.mp3", ExpandPath("~user/a.mp3"))

	cfg := DefaultConfig()
	cfg.Audio.Song = "~/wake.wav"
	assert.Equal(t, filepath.Join(home, "wake.wav"), cfg.SongPath())
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"10s", 10 * time.Second},
		{"1m30s", 90 * time.Second},
		{"250", 250 * time.Millisecond},
		{"1_500", 1500 * time.Millisecond},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalText([]byte(tt.in)))
			assert.Equal(t, tt.want, d.Duration())
		})
	}

	for _, bad := range []string{"ten seconds", "", "_500", "500_", "1__0"} {
		var d Duration
		assert.Error(t, d.UnmarshalText([]byte(bad)), bad)
	}
}

func TestLoadConfig_BareIntegerDurations(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[alarm]
poll_interval = 2_000

[audio]
status_interval = 500
`), 0644))

	cfg, err := LoadConfig(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Alarm.PollInterval.Duration())
	assert.Equal(t, 500*time.Millisecond, cfg.Audio.StatusInterval.Duration())

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
audio:
  status_interval: 250
notify:
  timeout: 3000
`), 0644))

	cfg, err = LoadConfig(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Audio.StatusInterval.Duration())
	assert.Equal(t, 3*time.Second, cfg.Notify.Timeout.Duration())
}
