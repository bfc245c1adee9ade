package planner

import "errors"

var (
	// ErrInvalidArgument wraps every "caller handed us garbage" failure:
	// nil events, blank ids, no-op edits, bad durations.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrDuplicateUser = errors.New("user id already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrConflict      = errors.New("event conflicts with an existing event")
	ErrNoPolicySet   = errors.New("no scheduling policy set")
	ErrNoSlotFound   = errors.New("no available slot in the search window")
)
