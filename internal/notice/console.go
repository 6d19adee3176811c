package notice

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Console prints notices to a terminal. Colours are dropped automatically
// when w is not a TTY.
type Console struct {
	mu sync.Mutex
	w  io.Writer

	accentStyle lipgloss.Style
	warnStyle   lipgloss.Style
	dimStyle    lipgloss.Style
}

// NewConsole creates a console notifier writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)

	return &Console{
		w: w,
		accentStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		warnStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")),
		dimStyle: r.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// Armed implements Notifier.
func (c *Console) Armed(alarmTime, song string, next, now time.Time) {
	c.printf("⏰ Alarm set for %s %s. Waiting...\n",
		c.accentStyle.Render(alarmTime),
		c.dimStyle.Render("("+Until(next, now)+")"))
}

// Playing implements Notifier.
func (c *Console) Playing(path, title string) {
	c.printf("🎵 Playing song: %s\n", c.accentStyle.Render(title))
}

// SongNotFound implements Notifier.
func (c *Console) SongNotFound(path string) {
	c.printf("🚫 %s %s\n", c.warnStyle.Render("Song file not found:"), path)
}

// Finished implements Notifier.
func (c *Console) Finished(path string) {
	c.printf("%s\n", c.dimStyle.Render("Alarm finished."))
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, format, args...)
}

// Until describes how far next is from now, e.g. "3 hours from now".
func Until(next, now time.Time) string {
	if !next.After(now) {
		return "now"
	}
	return humanize.RelTime(next, now, "ago", "from now")
}
