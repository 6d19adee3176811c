package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a time.Duration read from config files. Values are either Go
// duration strings ("10s", "1m30s") or a count of milliseconds, written as a
// bare integer (500, 1_500) or a quoted one ("500").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler. go-toml and yaml.v3 pass
// the raw scalar text for integers as well as strings.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))

	if ms, ok := parseMillis(s); ok {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q (want e.g. \"10s\" or milliseconds): %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// parseMillis accepts a decimal integer, allowing TOML's 1_000 digit grouping.
func parseMillis(s string) (int64, bool) {
	if s == "" || strings.HasPrefix(s, "_") || strings.HasSuffix(s, "_") || strings.Contains(s, "__") {
		return 0, false
	}
	ms, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 64)
	return ms, err == nil
}

// MarshalText implements encoding.TextMarshaler, always as a duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
