package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/songalarm/internal/notice"
	"github.com/jmylchreest/songalarm/internal/schedule"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show when the alarm would fire",
	Long: `Show the next time the configured alarm would fire and how far away it is.

Example:
  songalarm next --time 06:30`,
	Args: cobra.NoArgs,
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	now := time.Now()
	next, err := schedule.NextOccurrence(cfg.Alarm.Time, now)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, err = fmt.Fprintf(out, "Next alarm: %s (%s)\n",
		next.Format("Mon 02 Jan 15:04"), notice.Until(next, now))
	return err
}
