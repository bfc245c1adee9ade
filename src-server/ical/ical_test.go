package ical_test

import (
	"testing"
	"time"

	"huddle/src-server/ical"
	"huddle/src-server/planner"
)

func TestIcalRoundTrip(t *testing.T) {
	start := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	sync, err := planner.NewEvent("Weekly Sync", start, start.Add(time.Hour), "Churchill Hall 101", false, []string{"bob"}, "alice")
	if err != nil {
		t.Fatal(err)
	}
	standup, err := planner.NewEvent("Standup", start.Add(26*time.Hour), start.Add(26*time.Hour+30*time.Minute), "", true, nil, "alice")
	if err != nil {
		t.Fatal(err)
	}

	payload := ical.ToIcal([]*planner.Event{sync, standup}, "Alice")
	events, err := ical.FromIcal([]byte(payload), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatal("expected two events, got", len(events))
	}

	byID := map[string]*planner.Event{}
	for _, e := range events {
		byID[e.ID] = e
	}

	// case: placed times, names, locations survive
	got, ok := byID[sync.ID]
	if !ok {
		t.Fatal("sync event missing after round trip")
	}
	if got.Name != "Weekly Sync" || got.Location != "Churchill Hall 101" {
		t.Error("fields lost in round trip", got)
	}
	if !got.Start.Equal(sync.Start) || !got.End.Equal(sync.End) {
		t.Error("times lost in round trip", got.Start, got.End)
	}
	if got.IsOnline {
		t.Error("offline event imported as online")
	}

	// case: host and invitees survive, host leading
	if got.HostID != "alice" {
		t.Error("host lost in round trip", got.HostID)
	}
	if len(got.Invitees) != 2 || got.Invitees[0] != "alice" || got.Invitees[1] != "bob" {
		t.Error("invitees lost in round trip", got.Invitees)
	}

	// case: the online flag survives
	got, ok = byID[standup.ID]
	if !ok {
		t.Fatal("standup event missing after round trip")
	}
	if !got.IsOnline {
		t.Error("online flag lost in round trip")
	}
}

func TestIcalImportToleratesOverlaps(t *testing.T) {
	// two deliberately overlapping events: import is bulk-load, no
	// conflict validation
	start := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	a, err := planner.NewEvent("a", start, start.Add(time.Hour), "", true, nil, "alice")
	if err != nil {
		t.Fatal(err)
	}
	b, err := planner.NewEvent("b", start.Add(30*time.Minute), start.Add(90*time.Minute), "", true, nil, "alice")
	if err != nil {
		t.Fatal(err)
	}

	events, err := ical.FromIcal([]byte(ical.ToIcal([]*planner.Event{a, b}, "")), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Error("overlapping events should both import, got", len(events))
	}
	if !events[0].ConflictsWith(events[1]) {
		t.Error("fixture should conflict")
	}
}

func TestIcalFromIcalEmpty(t *testing.T) {
	if _, err := ical.FromIcal(nil, time.UTC); err == nil {
		t.Error("empty payload should error")
	}
}
