package planner

import (
	"fmt"
	"strings"
	"time"
)

// Policy picks the search window for auto-scheduling. The set is
// closed and tiny, so the variants are a tagged enum dispatched by one
// window function instead of an interface hierarchy. Swapping the
// policy changes only the window, never the search or conflict logic.
type Policy int

const (
	PolicyUnset Policy = iota
	// PolicyAnytime searches the upcoming week: week-start day 00:00
	// through six days later 23:59. The week-start day is
	// configuration (Sunday by default, Saturday supported), not a
	// separate planner flavor.
	PolicyAnytime
	// PolicyWorkHours searches the upcoming Monday 09:00 through that
	// same week's Friday 17:00; weekends are never eligible.
	PolicyWorkHours
	// PolicyLenient searches from now (snapped back to the half hour)
	// out to a year ahead, so any logically placeable event places.
	PolicyLenient
)

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "anytime":
		return PolicyAnytime, nil
	case "work-hours", "workhours":
		return PolicyWorkHours, nil
	case "lenient":
		return PolicyLenient, nil
	default:
		return PolicyUnset, fmt.Errorf("planner.ParsePolicy: unknown policy %q: %w", s, ErrInvalidArgument)
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyAnytime:
		return "anytime"
	case PolicyWorkHours:
		return "work-hours"
	case PolicyLenient:
		return "lenient"
	default:
		return "unset"
	}
}

// Window computes the [start, end) search range relative to now.
// Pure; the planner owns the clock.
func (p Policy) Window(now time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	switch p {
	case PolicyAnytime:
		start := atTime(nextOrSameWeekday(now, weekStart), 0, 0)
		end := atTime(start.AddDate(0, 0, 6), 23, 59)
		return start, end
	case PolicyWorkHours:
		start := atTime(nextOrSameWeekday(now, time.Monday), 9, 0)
		end := atTime(start.AddDate(0, 0, 4), 17, 0)
		return start, end
	case PolicyLenient:
		start := now.Truncate(30 * time.Minute)
		return start, start.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}
	}
}

// nextOrSameWeekday walks forward to the next occurrence of day,
// counting today if today already is that day.
func nextOrSameWeekday(now time.Time, day time.Weekday) time.Time {
	diff := (int(day) - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, diff)
}

func atTime(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
