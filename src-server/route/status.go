package route

import (
	"errors"
	"net/http"

	"huddle/src-server/planner"
)

// statusFromErr maps planner error kinds onto HTTP status codes so
// every route reports failures the same way.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, planner.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, planner.ErrDuplicateUser),
		errors.Is(err, planner.ErrConflict),
		errors.Is(err, planner.ErrNoSlotFound):
		return http.StatusConflict
	case errors.Is(err, planner.ErrNoPolicySet):
		return http.StatusPreconditionFailed
	case errors.Is(err, planner.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
