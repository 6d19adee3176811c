// Package dbus is a minimal client for the org.freedesktop.Notifications
// D-Bus interface, used to raise desktop notifications when the alarm fires.
package dbus
