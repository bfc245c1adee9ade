package planner_test

import (
	"errors"
	"testing"
	"time"

	"huddle/src-server/planner"
)

func TestParsePolicy(t *testing.T) {
	for input, want := range map[string]planner.Policy{
		"anytime":    planner.PolicyAnytime,
		"Work-Hours": planner.PolicyWorkHours,
		"workhours":  planner.PolicyWorkHours,
		" lenient ":  planner.PolicyLenient,
	} {
		got, err := planner.ParsePolicy(input)
		if err != nil {
			t.Error(input, err)
		}
		if got != want {
			t.Error(input, "parsed to", got)
		}
	}

	if _, err := planner.ParsePolicy("aggressive"); !errors.Is(err, planner.ErrInvalidArgument) {
		t.Error("unknown policy should be invalid, got", err)
	}
}

func TestPolicyWindowAnytime(t *testing.T) {
	// Wednesday 2024-03-06 15:42
	now := time.Date(2024, time.March, 6, 15, 42, 0, 0, time.UTC)

	// case: sunday week start
	func() {
		start, end := planner.PolicyAnytime.Window(now, time.Sunday)
		wantStart := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2024, time.March, 16, 23, 59, 0, 0, time.UTC)
		if !start.Equal(wantStart) || !end.Equal(wantEnd) {
			t.Error("unexpected window", start, end)
		}
	}()

	// case: saturday week start shifts the whole window
	func() {
		start, end := planner.PolicyAnytime.Window(now, time.Saturday)
		wantStart := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC)
		if !start.Equal(wantStart) || !end.Equal(wantEnd) {
			t.Error("unexpected window", start, end)
		}
	}()

	// case: today already being the week start counts as the start
	func() {
		sundayNoon := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
		start, _ := planner.PolicyAnytime.Window(sundayNoon, time.Sunday)
		if !start.Equal(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)) {
			t.Error("window should start on the same day at midnight, got", start)
		}
	}()
}

func TestPolicyWindowWorkHours(t *testing.T) {
	// Wednesday 2024-03-06
	now := time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC)
	start, end := planner.PolicyWorkHours.Window(now, time.Sunday)

	wantStart := time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.March, 15, 17, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantEnd) {
		t.Error("unexpected window", start, end)
	}
	if start.Weekday() != time.Monday || end.Weekday() != time.Friday {
		t.Error("work-hours window must run Monday through Friday")
	}
}

func TestPolicyWindowLenient(t *testing.T) {
	now := time.Date(2024, time.March, 6, 15, 47, 12, 0, time.UTC)
	start, end := planner.PolicyLenient.Window(now, time.Sunday)

	if !start.Equal(time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC)) {
		t.Error("lenient window should snap back to the half hour, got", start)
	}
	if !end.Equal(start.AddDate(1, 0, 0)) {
		t.Error("lenient window should span a year, got", end)
	}
}

func TestPolicyWindowUnset(t *testing.T) {
	start, end := planner.PolicyUnset.Window(time.Now(), time.Sunday)
	if !start.IsZero() || !end.IsZero() {
		t.Error("unset policy has no window")
	}
}
