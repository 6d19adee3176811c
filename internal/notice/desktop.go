package notice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/songalarm/internal/dbus"
)

const appName = "songalarm"

// callTimeout bounds each D-Bus round trip so a hung daemon cannot stall the alarm.
const callTimeout = 3 * time.Second

// Sender is the D-Bus notification client used by Desktop.
type Sender interface {
	Notify(ctx context.Context, n *dbus.Notification) (uint32, error)
	CloseNotification(ctx context.Context, id uint32) error
}

// Desktop raises freedesktop notifications. Failures are logged, never returned.
type Desktop struct {
	mu      sync.Mutex
	logger  *slog.Logger
	sender  Sender
	timeout time.Duration

	// ID of the "playing" notification, closed when playback finishes
	playingID uint32
}

// NewDesktop creates a desktop notifier. timeout is the notification expiry.
func NewDesktop(sender Sender, timeout time.Duration, logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Desktop{
		logger:  logger,
		sender:  sender,
		timeout: timeout,
	}
}

// Armed implements Notifier.
func (d *Desktop) Armed(alarmTime, song string, next, now time.Time) {
	n := dbus.NewNotification(appName, "Alarm set for "+alarmTime, Until(next, now), dbus.UrgencyLow)
	n.AppIcon = "alarm-symbolic"
	n.SetHint("transient", true)
	d.send("armed", n)
}

// Playing implements Notifier.
func (d *Desktop) Playing(path, title string) {
	n := dbus.NewNotification(appName, "Alarm", "Playing "+title, dbus.UrgencyCritical)
	n.AppIcon = "alarm-symbolic"
	n.SetHint("suppress-sound", true)
	n.ExpireTimeout = 0

	id := d.send("playing", n)

	d.mu.Lock()
	d.playingID = id
	d.mu.Unlock()
}

// SongNotFound implements Notifier.
func (d *Desktop) SongNotFound(path string) {
	n := dbus.NewNotification(appName, "Alarm song not found", path, dbus.UrgencyCritical)
	n.AppIcon = "dialog-warning"
	d.send("song-not-found", n)
}

// Finished implements Notifier.
func (d *Desktop) Finished(path string) {
	d.closePlaying()
}

// Close withdraws the "playing" notification if playback ended without
// Finished, e.g. on cancellation or a playback error.
func (d *Desktop) Close() {
	d.closePlaying()
}

func (d *Desktop) closePlaying() {
	d.mu.Lock()
	id := d.playingID
	d.playingID = 0
	d.mu.Unlock()

	if id == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	if err := d.sender.CloseNotification(ctx, id); err != nil {
		d.logger.Debug("failed to close desktop notification", "id", id, "error", err)
	}
}

// send delivers n and returns the server-assigned ID, or 0 on failure.
func (d *Desktop) send(key string, n *dbus.Notification) uint32 {
	if n.ExpireTimeout < 0 && d.timeout > 0 {
		n.ExpireTimeout = int32(d.timeout.Milliseconds())
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	id, err := d.sender.Notify(ctx, n)
	if err != nil {
		d.logger.Warn("failed to send desktop notification", "key", key, "error", err)
		return 0
	}
	d.logger.Debug("sent desktop notification", "key", key, "id", id)
	return id
}
