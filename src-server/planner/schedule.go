package planner

import "time"

// Schedule is one user's ordered collection of placed events.
//
// AddEvent appends unconditionally and does NOT re-check conflicts;
// that is the caller's job via HasEventConflict. The split lets bulk
// import load a file that contains overlaps without blowing up, while
// interactive creation enforces the no-overlap invariant explicitly.
type Schedule struct {
	events []*Event
}

func NewSchedule() *Schedule {
	return &Schedule{events: make([]*Event, 0)}
}

func (s *Schedule) AddEvent(e *Event) {
	s.events = append(s.events, e)
}

// RemoveEvent removes the event with the same ID. Removing an event
// that isn't there is a no-op returning false, not an error.
func (s *Schedule) RemoveEvent(e *Event) bool {
	if e == nil {
		return false
	}
	for i, held := range s.events {
		if held.ID == e.ID {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return true
		}
	}
	return false
}

// Events returns a copy of the event list in insertion order; the
// internal storage is never handed out by reference.
func (s *Schedule) Events() []*Event {
	out := make([]*Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Schedule) HasEventConflict(candidate *Event) bool {
	for _, e := range s.events {
		if e.ConflictsWith(candidate) {
			return true
		}
	}
	return false
}

// IsAvailable reports whether no held event overlaps [start, end).
func (s *Schedule) IsAvailable(start, end time.Time) bool {
	for _, e := range s.events {
		if e.Overlaps(start, end) {
			return false
		}
	}
	return true
}
