package dbus

import (
	"github.com/godbus/dbus/v5"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the well-known name of the notification server.
	DBusBusName = "org.freedesktop.Notifications"
)

// Urgency levels matching the freedesktop notification spec.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Notification is an outgoing org.freedesktop.Notifications.Notify call.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// NewNotification creates a notification with urgency and category hints set.
func NewNotification(appName, summary, body string, urgency byte) *Notification {
	return &Notification{
		AppName: appName,
		Summary: summary,
		Body:    body,
		Actions: []string{},
		Hints: map[string]dbus.Variant{
			"urgency":  dbus.MakeVariant(urgency),
			"category": dbus.MakeVariant("x-songalarm.alarm"),
		},
		ExpireTimeout: -1,
	}
}

// SetHint sets a hint on the notification.
func (n *Notification) SetHint(key string, value any) {
	if n.Hints == nil {
		n.Hints = make(map[string]dbus.Variant)
	}
	n.Hints[key] = dbus.MakeVariant(value)
}

// Urgency extracts the urgency hint from the notification.
// Returns UrgencyNormal if not specified.
func (n *Notification) Urgency() byte {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return b
		}
	}
	return UrgencyNormal
}

// args returns the Notify method arguments in wire order.
func (n *Notification) args() []any {
	actions := n.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := n.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}
	return []any{
		n.AppName,
		n.ReplacesID,
		n.AppIcon,
		n.Summary,
		n.Body,
		actions,
		hints,
		n.ExpireTimeout,
	}
}
