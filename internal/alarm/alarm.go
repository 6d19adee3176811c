// Package alarm arms the single configured alarm: it waits for the alarm
// time and then plays the configured song once.
package alarm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/songalarm/internal/config"
	"github.com/jmylchreest/songalarm/internal/notice"
	"github.com/jmylchreest/songalarm/internal/schedule"
)

// Player plays a song to completion.
type Player interface {
	Play(ctx context.Context, path string) error
}

// Alarm waits for the configured time and then plays the song once.
type Alarm struct {
	logger   *slog.Logger
	cfg      *config.Config
	player   Player
	notifier notice.Notifier
	clock    schedule.Clock
}

// New creates an alarm from a validated configuration.
func New(cfg *config.Config, player Player, notifier notice.Notifier, clock schedule.Clock, logger *slog.Logger) *Alarm {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = schedule.RealClock{}
	}
	if notifier == nil {
		notifier = notice.Multi{}
	}
	return &Alarm{
		logger:   logger,
		cfg:      cfg,
		player:   player,
		notifier: notifier,
		clock:    clock,
	}
}

// Run blocks until the alarm has fired and playback has finished, or ctx is
// cancelled. A missing song file is reported and is not an error.
func (a *Alarm) Run(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	now := a.clock.Now()
	target := a.cfg.Alarm.Time
	song := a.cfg.SongPath()

	matcher, err := schedule.NewMatcher(config.MatchMode(a.cfg.Alarm.Match), target, now)
	if err != nil {
		return err
	}
	next, err := schedule.NextOccurrence(target, now)
	if err != nil {
		return err
	}

	sched := schedule.NewScheduler(matcher, a.cfg.Alarm.PollInterval.Duration(), a.clock, a.logger)
	logger := a.logger.With("run_id", sched.RunID())

	logger.Info("alarm armed", "time", target, "song", song, "match", a.cfg.Alarm.Match, "next", next)
	a.notifier.Armed(target, song, next, now)

	err = sched.Run(ctx, func(ctx context.Context) error {
		logger.Info("alarm fired", "song", song)
		if err := a.player.Play(ctx, song); err != nil {
			return fmt.Errorf("failed to play %s: %w", song, err)
		}
		a.notifier.Finished(song)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("alarm finished")
	return nil
}
