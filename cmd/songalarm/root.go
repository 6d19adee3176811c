// Package main provides the CLI entrypoint for songalarm.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/songalarm/internal/alarm"
	"github.com/jmylchreest/songalarm/internal/audio"
	"github.com/jmylchreest/songalarm/internal/config"
	"github.com/jmylchreest/songalarm/internal/dbus"
	"github.com/jmylchreest/songalarm/internal/notice"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		alarmTime  string
		song       string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "songalarm",
	Short: "Play a song when the clock reaches the alarm time",
	Long: `songalarm waits until a configured wall-clock time and then plays
an audio file (WAV, MP3 or OGG) once.

The alarm time and song are read from ~/.config/songalarm/config.toml
and can be overridden with --time and --song:

  songalarm --time 08:42 --song ~/Music/wake-up.mp3

The clock is checked every 10 seconds; the song plays once and the
program exits when it has finished.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Flags override the config file
		if cmd.Flags().Changed("time") {
			cfg.Alarm.Time = globalOpts.alarmTime
		}
		if cmd.Flags().Changed("song") {
			cfg.Audio.Song = globalOpts.song
		}

		return nil
	},
	RunE: runAlarm,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/songalarm/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.alarmTime, "time", "",
		"Alarm time in 24-hour HH:MM format (overrides config)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.song, "song", "",
		"Path to the song to play (overrides config)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout carries only the alarm notices
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// newNotifier builds the console notifier writing to w plus, if enabled,
// desktop notifications. The returned cleanup func withdraws any notification
// still on screen and releases the D-Bus connection.
func newNotifier(w io.Writer) (notice.Notifier, func()) {
	console := notice.NewConsole(w)
	if !cfg.Notify.Desktop {
		return console, func() {}
	}

	client := dbus.NewClient(logger)
	desktop := notice.NewDesktop(client, cfg.Notify.Timeout.Duration(), logger)
	return notice.Multi{console, desktop}, func() {
		desktop.Close()
		if err := client.Close(); err != nil {
			logger.Debug("failed to close session bus", "error", err)
		}
	}
}

// newPlayer creates a speaker-backed player reporting through notifier.
func newPlayer(notifier notice.Notifier) *audio.Player {
	player := audio.NewPlayer(audio.NewSpeakerOutput(), notifier, logger)
	player.SetStatusInterval(cfg.Audio.StatusInterval.Duration())
	return player
}

func runAlarm(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	notifier, cleanup := newNotifier(cmd.OutOrStdout())
	defer cleanup()

	player := newPlayer(notifier)
	defer player.Close()

	a := alarm.New(cfg, player, notifier, nil, logger)
	if err := a.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("received signal, shutting down")
			return nil
		}
		return err
	}
	return nil
}
