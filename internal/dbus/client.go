package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

// caller is the subset of dbus.BusObject the client needs.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Client sends notifications to whichever notification daemon owns
// org.freedesktop.Notifications on the session bus.
type Client struct {
	mu     sync.Mutex
	logger *slog.Logger
	conn   *dbus.Conn
	obj    caller
}

// NewClient creates a client. The bus connection is opened lazily.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{logger: logger}
}

// connect opens the session bus connection on first use.
func (c *Client) connect(ctx context.Context) (caller, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.obj != nil {
		return c.obj, nil
	}

	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	c.conn = conn
	c.obj = conn.Object(DBusBusName, DBusPath)
	c.logger.Debug("connected to session bus")
	return c.obj, nil
}

// Notify sends a notification and returns the ID assigned by the server.
func (c *Client) Notify(ctx context.Context, n *Notification) (uint32, error) {
	obj, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}

	call := obj.CallWithContext(ctx, DBusInterface+".Notify", 0, n.args()...)
	if call.Err != nil {
		return 0, fmt.Errorf("notify call failed: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}

	c.logger.Debug("sent desktop notification", "id", id, "summary", n.Summary)
	return id, nil
}

// CloseNotification asks the server to close a previously sent notification.
func (c *Client) CloseNotification(ctx context.Context, id uint32) error {
	obj, err := c.connect(ctx)
	if err != nil {
		return err
	}

	call := obj.CallWithContext(ctx, DBusInterface+".CloseNotification", 0, id)
	if call.Err != nil {
		return fmt.Errorf("close notification call failed: %w", call.Err)
	}
	return nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.obj = nil
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
