// Package notice delivers the alarm's human-readable messages: styled console
// lines and, optionally, freedesktop desktop notifications.
package notice

import (
	"time"
)

// Notifier receives the user-facing events of an alarm run.
type Notifier interface {
	// Armed is sent once when the alarm starts waiting. next is the start of
	// the minute the alarm will fire in, now the time it was armed.
	Armed(alarmTime, song string, next, now time.Time)
	Playing(path, title string)
	SongNotFound(path string)
	Finished(path string)
}

// Multi fans every event out to several notifiers in order.
type Multi []Notifier

// Armed implements Notifier.
func (m Multi) Armed(alarmTime, song string, next, now time.Time) {
	for _, n := range m {
		n.Armed(alarmTime, song, next, now)
	}
}

// Playing implements Notifier.
func (m Multi) Playing(path, title string) {
	for _, n := range m {
		n.Playing(path, title)
	}
}

// SongNotFound implements Notifier.
func (m Multi) SongNotFound(path string) {
	for _, n := range m {
		n.SongNotFound(path)
	}
}

// Finished implements Notifier.
func (m Multi) Finished(path string) {
	for _, n := range m {
		n.Finished(path)
	}
}
