package planner

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Planner is the in-memory directory of users plus every operation the
// calendar exposes. One mutex serializes all operations: AddEvent does
// not re-check conflicts, so concurrent mutators could corrupt the
// no-overlap invariant without it.
type Planner struct {
	mu        sync.Mutex
	users     map[string]*User
	userOrder []string
	policy    Policy
	weekStart time.Weekday
	now       func() time.Time
}

func New(weekStart time.Weekday) *Planner {
	return &Planner{
		users:     make(map[string]*User),
		weekStart: weekStart,
		now:       time.Now,
	}
}

// SetClock overrides the wall clock the policies see. Tests use this;
// production code never should.
func (p *Planner) SetClock(now func() time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

func (p *Planner) WeekStart() time.Weekday {
	return p.weekStart
}

func (p *Planner) AddUser(u *User) error {
	if u == nil {
		return fmt.Errorf("(*Planner).AddUser: user is nil: %w", ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.users[u.ID()]; ok {
		return fmt.Errorf("(*Planner).AddUser: id %q: %w", u.ID(), ErrDuplicateUser)
	}
	p.users[u.ID()] = u
	p.userOrder = append(p.userOrder, u.ID())
	return nil
}

// GetUser is the existence probe: it never fails for a missing id.
func (p *Planner) GetUser(id string) (*User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[id]
	return u, ok
}

// Users returns all known users in the order they were added.
func (p *Planner) Users() []*User {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*User, 0, len(p.userOrder))
	for _, id := range p.userOrder {
		out = append(out, p.users[id])
	}
	return out
}

// Events returns every event on every schedule.
func (p *Planner) Events() []*Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*Event
	for _, id := range p.userOrder {
		out = append(out, p.users[id].Schedule().Events()...)
	}
	return out
}

// CreateEvent places an already-timed event on one user's schedule,
// refusing it if it overlaps anything already there.
func (p *Planner) CreateEvent(userID string, e *Event) error {
	if e == nil {
		return fmt.Errorf("(*Planner).CreateEvent: event is nil: %w", ErrInvalidArgument)
	}
	if !e.Placed() {
		return fmt.Errorf("(*Planner).CreateEvent: event has no time; use AutoSchedule: %w", ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[userID]
	if !ok {
		return fmt.Errorf("(*Planner).CreateEvent: user %q: %w", userID, ErrUserNotFound)
	}
	if u.Schedule().HasEventConflict(e) {
		return fmt.Errorf("(*Planner).CreateEvent: %w", ErrConflict)
	}
	u.Schedule().AddEvent(e)
	return nil
}

// ModifyEvent swaps original for updated on the user's schedule. A
// no-op edit is rejected. The updated event is deliberately NOT
// conflict-checked against the remaining schedule: callers like a
// drag-resize UI momentarily violate and re-validate downstream.
func (p *Planner) ModifyEvent(userID string, original, updated *Event) error {
	if original == nil || updated == nil {
		return fmt.Errorf("(*Planner).ModifyEvent: event is nil: %w", ErrInvalidArgument)
	}
	if original.Same(updated) {
		return fmt.Errorf("(*Planner).ModifyEvent: updated event is identical to the original: %w", ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[userID]
	if !ok {
		return fmt.Errorf("(*Planner).ModifyEvent: user %q: %w", userID, ErrUserNotFound)
	}
	u.Schedule().RemoveEvent(original)
	u.Schedule().AddEvent(updated)
	return nil
}

// RemoveEvent drops the event from the user's schedule; removing an
// absent event reports false without erroring.
func (p *Planner) RemoveEvent(userID string, e *Event) (bool, error) {
	if e == nil {
		return false, fmt.Errorf("(*Planner).RemoveEvent: event is nil: %w", ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[userID]
	if !ok {
		return false, fmt.Errorf("(*Planner).RemoveEvent: user %q: %w", userID, ErrUserNotFound)
	}
	return u.Schedule().RemoveEvent(e), nil
}

// SeeEvents returns the user's events whose open interval strictly
// contains at; events that start or end exactly at the instant don't
// count.
func (p *Planner) SeeEvents(userID string, at time.Time) ([]*Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[userID]
	if !ok {
		return nil, fmt.Errorf("(*Planner).SeeEvents: user %q: %w", userID, ErrUserNotFound)
	}
	var out []*Event
	for _, e := range u.Schedule().Events() {
		if e.Start.Before(at) && e.End.After(at) {
			out = append(out, e)
		}
	}
	return out, nil
}

// EventsForWeekStarting returns the user's events starting within the
// seven days from the week-start day at or before startDate, sorted by
// start time. The week-start day (Sunday vs Saturday) is planner
// configuration rather than a separate planner flavor.
func (p *Planner) EventsForWeekStarting(userID string, startDate time.Time) ([]*Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[userID]
	if !ok {
		return nil, fmt.Errorf("(*Planner).EventsForWeekStarting: user %q: %w", userID, ErrUserNotFound)
	}
	weekStart := atTime(previousOrSameWeekday(startDate, p.weekStart), 0, 0)
	weekEnd := weekStart.AddDate(0, 0, 7)
	out := make([]*Event, 0)
	for _, e := range u.Schedule().Events() {
		if !e.Start.Before(weekStart) && e.Start.Before(weekEnd) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

// ImportEvents bulk-appends fully-formed events to a user's schedule
// without conflict checks; imported files may legally contain
// overlaps.
func (p *Planner) ImportEvents(userID string, events []*Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[userID]
	if !ok {
		return fmt.Errorf("(*Planner).ImportEvents: user %q: %w", userID, ErrUserNotFound)
	}
	for _, e := range events {
		u.Schedule().AddEvent(e)
	}
	return nil
}

func (p *Planner) SetPolicy(policy Policy) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.policy = policy
}

func (p *Planner) Policy() Policy {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.policy
}

// Placement reports where AutoSchedule put an event and whose
// schedules it landed on, host first.
type Placement struct {
	Start        time.Time
	End          time.Time
	Owners       []string
	SlotsScanned int
}

// AutoSchedule finds the earliest slot in the active policy's window
// where the host and every invitee are simultaneously free, fixes the
// event there and writes it to every participant's schedule. Greedy
// earliest-fit: deterministic given the same schedules, duration and
// window. Nothing is written when no slot fits.
func (p *Planner) AutoSchedule(hostID string, e *Event) (Placement, error) {
	if e == nil {
		return Placement{}, fmt.Errorf("(*Planner).AutoSchedule: event is nil: %w", ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	host, ok := p.users[hostID]
	if !ok {
		return Placement{}, fmt.Errorf("(*Planner).AutoSchedule: user %q: %w", hostID, ErrUserNotFound)
	}
	if p.policy == PolicyUnset {
		return Placement{}, fmt.Errorf("(*Planner).AutoSchedule: %w", ErrNoPolicySet)
	}

	windowStart, windowEnd := p.policy.Window(p.now(), p.weekStart)
	resolve := func(id string) (*User, bool) {
		u, ok := p.users[id]
		return u, ok
	}
	res, err := search(e, host, resolve, windowStart, windowEnd, SearchStep)
	if err != nil {
		return Placement{SlotsScanned: res.scanned}, fmt.Errorf("(*Planner).AutoSchedule: %w", err)
	}
	return Placement{
		Start:        res.start,
		End:          res.end,
		Owners:       res.owners,
		SlotsScanned: res.scanned,
	}, nil
}

func previousOrSameWeekday(now time.Time, day time.Weekday) time.Time {
	diff := (int(now.Weekday()) - int(day) + 7) % 7
	return now.AddDate(0, 0, -diff)
}
