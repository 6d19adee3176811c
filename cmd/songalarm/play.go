package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/songalarm/internal/config"
)

var playCmd = &cobra.Command{
	Use:   "play [PATH]",
	Short: "Play the alarm song now",
	Long: `Play a song immediately, blocking until it finishes.

Without PATH the configured alarm song is played. Use this to check the
file decodes and the audio device works before relying on the alarm.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	path := cfg.SongPath()
	if len(args) == 1 {
		path = config.ExpandPath(args[0])
	}
	if path == "" {
		return errors.New("no song configured: pass PATH, --song, or set [audio] song")
	}

	ctx, cancel := signalContext()
	defer cancel()

	notifier, cleanup := newNotifier(cmd.OutOrStdout())
	defer cleanup()

	player := newPlayer(notifier)
	defer player.Close()

	err := player.Play(ctx, path)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
