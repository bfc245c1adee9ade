package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Events longer than a week can't fit in any weekly search window,
// so they are rejected up front instead of failing every slot probe.
const MaxEventDuration = 7 * 24 * time.Hour

// Event is a named activity on one or more schedules. A draft event
// (created with NewDraftEvent) only knows its duration; Start/End stay
// zero until the search procedure places it. The host id is always
// part of the invitee list.
type Event struct {
	ID       string
	Name     string
	Start    time.Time
	End      time.Time
	Location string
	IsOnline bool
	Invitees []string
	HostID   string

	// duration of a draft event; once placed, End-Start is the truth
	draftDuration time.Duration
}

// NewEvent builds an already-placed event.
func NewEvent(name string, start, end time.Time, location string, isOnline bool, invitees []string, hostID string) (*Event, error) {
	e := &Event{
		ID:       uuid.NewString(),
		Name:     name,
		Start:    start,
		End:      end,
		Location: location,
		IsOnline: isOnline,
		Invitees: normalizeInvitees(invitees, hostID),
		HostID:   hostID,
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewDraftEvent builds an event whose time is not fixed yet; the
// search procedure calls SetTime once it finds a feasible slot.
func NewDraftEvent(name string, duration time.Duration, location string, isOnline bool, invitees []string, hostID string) (*Event, error) {
	e := &Event{
		ID:            uuid.NewString(),
		Name:          name,
		Location:      location,
		IsOnline:      isOnline,
		Invitees:      normalizeInvitees(invitees, hostID),
		HostID:        hostID,
		draftDuration: duration,
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Event) validate() error {
	switch {
	case e.Name == "":
		return fmt.Errorf("planner.Event: name is blank: %w", ErrInvalidArgument)
	case e.HostID == "":
		return fmt.Errorf("planner.Event: host id is blank: %w", ErrInvalidArgument)
	case e.Start.IsZero() != e.End.IsZero():
		return fmt.Errorf("planner.Event: start and end must be set together: %w", ErrInvalidArgument)
	case !e.Start.IsZero() && !e.End.After(e.Start):
		return fmt.Errorf("planner.Event: end must be after start: %w", ErrInvalidArgument)
	case e.Duration() <= 0:
		return fmt.Errorf("planner.Event: duration must be positive: %w", ErrInvalidArgument)
	case e.Duration() > MaxEventDuration:
		return fmt.Errorf("planner.Event: duration exceeds %s: %w", MaxEventDuration, ErrInvalidArgument)
	}
	return nil
}

// Placed reports whether the event has a fixed time.
func (e *Event) Placed() bool {
	return !e.Start.IsZero() && !e.End.IsZero()
}

// Duration is End-Start once placed, the draft duration otherwise.
func (e *Event) Duration() time.Duration {
	if e.Placed() {
		return e.End.Sub(e.Start)
	}
	return e.draftDuration
}

// SetTime fixes the event at start, keeping its duration.
func (e *Event) SetTime(start time.Time) {
	d := e.Duration()
	e.Start = start
	e.End = start.Add(d)
}

// ConflictsWith is the half-open interval overlap test: two events
// conflict iff a.Start < b.End && a.End > b.Start. Commutative; a
// zero-length event conflicts with nothing.
func (e *Event) ConflictsWith(other *Event) bool {
	return e.Start.Before(other.End) && e.End.After(other.Start)
}

// Overlaps reports whether the event's interval overlaps [start, end).
func (e *Event) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}

// Same compares the user-visible fields, ignoring the generated ID.
// ModifyEvent uses it to reject no-op edits.
func (e *Event) Same(other *Event) bool {
	if other == nil {
		return false
	}
	if e.Name != other.Name ||
		!e.Start.Equal(other.Start) ||
		!e.End.Equal(other.End) ||
		e.Location != other.Location ||
		e.IsOnline != other.IsOnline ||
		e.HostID != other.HostID ||
		len(e.Invitees) != len(other.Invitees) {
		return false
	}
	for i := range e.Invitees {
		if e.Invitees[i] != other.Invitees[i] {
			return false
		}
	}
	return true
}

// normalizeInvitees dedupes while keeping order and makes sure the
// host leads the list.
func normalizeInvitees(invitees []string, hostID string) []string {
	out := make([]string, 0, len(invitees)+1)
	seen := make(map[string]struct{}, len(invitees)+1)
	if hostID != "" {
		out = append(out, hostID)
		seen[hostID] = struct{}{}
	}
	for _, id := range invitees {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
