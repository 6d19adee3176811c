package schedule

import (
	"fmt"
	"time"

	"github.com/jmylchreest/songalarm/internal/config"
)

// TimeLayout is the "HH:MM" 24-hour layout alarm times are written in.
const TimeLayout = "15:04"

// Matcher decides whether the alarm should fire at a given instant.
type Matcher interface {
	Match(now time.Time) bool
}

// ExactMatcher fires when the current time, formatted as HH:MM, equals Target.
// A process suspended across the whole target minute never matches.
type ExactMatcher struct {
	Target string
}

// Match implements Matcher.
func (m ExactMatcher) Match(now time.Time) bool {
	return now.Format(TimeLayout) == m.Target
}

// DeadlineMatcher fires once now reaches Deadline.
type DeadlineMatcher struct {
	Deadline time.Time
}

// Match implements Matcher.
func (m DeadlineMatcher) Match(now time.Time) bool {
	return !now.Before(m.Deadline)
}

// NewMatcher builds the matcher for the given mode. from anchors the deadline
// computation and is normally the time the alarm was armed.
func NewMatcher(mode config.MatchMode, target string, from time.Time) (Matcher, error) {
	switch mode {
	case config.MatchExact, "":
		if err := config.ValidateAlarmTime(target); err != nil {
			return nil, err
		}
		return ExactMatcher{Target: target}, nil
	case config.MatchDeadline:
		next, err := NextOccurrence(target, from)
		if err != nil {
			return nil, err
		}
		return DeadlineMatcher{Deadline: next}, nil
	default:
		return nil, fmt.Errorf("unknown match mode %q", mode)
	}
}

// NextOccurrence returns the start of the next target minute relative to from.
// If from falls inside the target minute, that minute's start is returned, so
// the result may be slightly in the past.
func NextOccurrence(target string, from time.Time) (time.Time, error) {
	if err := config.ValidateAlarmTime(target); err != nil {
		return time.Time{}, err
	}
	hm, err := time.Parse(TimeLayout, target)
	if err != nil {
		return time.Time{}, err
	}

	y, mo, d := from.Date()
	next := time.Date(y, mo, d, hm.Hour(), hm.Minute(), 0, 0, from.Location())
	if !from.Before(next.Add(time.Minute)) {
		next = time.Date(y, mo, d+1, hm.Hour(), hm.Minute(), 0, 0, from.Location())
	}
	return next, nil
}
