package planner_test

import (
	"errors"
	"testing"
	"time"

	"huddle/src-server/planner"
)

func mustEvent(t *testing.T, name string, start, end time.Time, invitees []string, hostID string) *planner.Event {
	t.Helper()
	e, err := planner.NewEvent(name, start, end, "Churchill Hall 101", false, invitees, hostID)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestEventConflict(t *testing.T) {
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	// case: overlapping events conflict, symmetrically
	func() {
		a := mustEvent(t, "a", day.Add(10*time.Hour), day.Add(11*time.Hour), nil, "alice")
		b := mustEvent(t, "b", day.Add(10*time.Hour+30*time.Minute), day.Add(12*time.Hour), nil, "bob")
		if !a.ConflictsWith(b) {
			t.Error("a should conflict with b")
		}
		if b.ConflictsWith(a) != a.ConflictsWith(b) {
			t.Error("conflict test should be commutative")
		}
	}()

	// case: touching endpoints don't conflict (half-open intervals)
	func() {
		a := mustEvent(t, "a", day.Add(9*time.Hour), day.Add(10*time.Hour), nil, "alice")
		b := mustEvent(t, "b", day.Add(10*time.Hour), day.Add(11*time.Hour), nil, "bob")
		if a.ConflictsWith(b) || b.ConflictsWith(a) {
			t.Error("back-to-back events should not conflict")
		}
	}()

	// case: containment conflicts
	func() {
		a := mustEvent(t, "a", day.Add(9*time.Hour), day.Add(17*time.Hour), nil, "alice")
		b := mustEvent(t, "b", day.Add(12*time.Hour), day.Add(13*time.Hour), nil, "bob")
		if !a.ConflictsWith(b) || !b.ConflictsWith(a) {
			t.Error("contained event should conflict")
		}
	}()
}

func TestEventValidation(t *testing.T) {
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	// case: end before start is rejected
	if _, err := planner.NewEvent("backwards", day.Add(2*time.Hour), day.Add(time.Hour), "", false, nil, "alice"); !errors.Is(err, planner.ErrInvalidArgument) {
		t.Error("expected invalid argument, got", err)
	}

	// case: zero-length is rejected
	if _, err := planner.NewEvent("empty", day, day, "", false, nil, "alice"); !errors.Is(err, planner.ErrInvalidArgument) {
		t.Error("expected invalid argument, got", err)
	}

	// case: month-long events exceed the duration cap
	if _, err := planner.NewEvent("vacation", day, day.AddDate(0, 1, 0), "", false, nil, "alice"); !errors.Is(err, planner.ErrInvalidArgument) {
		t.Error("expected invalid argument, got", err)
	}

	// case: blank name and blank host are rejected
	if _, err := planner.NewEvent("", day, day.Add(time.Hour), "", false, nil, "alice"); !errors.Is(err, planner.ErrInvalidArgument) {
		t.Error("expected invalid argument for blank name, got", err)
	}
	if _, err := planner.NewDraftEvent("standup", 30*time.Minute, "", true, nil, ""); !errors.Is(err, planner.ErrInvalidArgument) {
		t.Error("expected invalid argument for blank host, got", err)
	}

	// case: draft events need a positive duration
	if _, err := planner.NewDraftEvent("standup", 0, "", true, nil, "alice"); !errors.Is(err, planner.ErrInvalidArgument) {
		t.Error("expected invalid argument for zero duration, got", err)
	}
}

func TestEventSetTime(t *testing.T) {
	e, err := planner.NewDraftEvent("standup", 45*time.Minute, "", true, []string{"bob"}, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if e.Placed() {
		t.Error("draft event should not be placed")
	}

	start := time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)
	e.SetTime(start)
	if !e.Placed() {
		t.Error("event should be placed after SetTime")
	}
	if !e.End.Equal(start.Add(45 * time.Minute)) {
		t.Error("end should be start plus duration, got", e.End)
	}
	if e.Duration() != 45*time.Minute {
		t.Error("duration should survive placement, got", e.Duration())
	}
}

func TestEventInvitees(t *testing.T) {
	// case: host leads the invitee list and duplicates collapse
	e, err := planner.NewDraftEvent("sync", 30*time.Minute, "", true,
		[]string{"bob", "alice", "bob", "carol"}, "alice")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alice", "bob", "carol"}
	if len(e.Invitees) != len(want) {
		t.Fatal("unexpected invitee list", e.Invitees)
	}
	for i := range want {
		if e.Invitees[i] != want[i] {
			t.Error("unexpected invitee order", e.Invitees)
		}
	}
}

func TestEventSame(t *testing.T) {
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	a := mustEvent(t, "a", day.Add(10*time.Hour), day.Add(11*time.Hour), []string{"bob"}, "alice")
	b := mustEvent(t, "a", day.Add(10*time.Hour), day.Add(11*time.Hour), []string{"bob"}, "alice")
	if !a.Same(b) {
		t.Error("identical fields should compare the same despite different ids")
	}

	c := mustEvent(t, "a", day.Add(10*time.Hour), day.Add(12*time.Hour), []string{"bob"}, "alice")
	if a.Same(c) {
		t.Error("different end time should not compare the same")
	}
}
