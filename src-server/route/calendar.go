package route

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"huddle/src-server/model"
	"huddle/src-server/planner"
	"huddle/src-server/utils"
)

// parseWhen accepts RFC3339 or natural language ("next tuesday 2pm")
// and returns the parsed instant in the configured location.
func parseWhen(as *utils.AppState, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("parseWhen: blank input: %w", planner.ErrInvalidArgument)
	}
	if t, err := time.ParseInLocation(time.RFC3339, s, as.Config.GetLocation()); err == nil {
		return t, nil
	}
	result, err := as.When.Parse(s, time.Now().In(as.Config.GetLocation()))
	if err != nil {
		return time.Time{}, fmt.Errorf("parseWhen: %w: %w", err, planner.ErrInvalidArgument)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("parseWhen: can't understand %q: %w", s, planner.ErrInvalidArgument)
	}
	return result.Time, nil
}

type OneEventRespBody struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	StartDateUnixUTC int64    `json:"startDateUnixUTC"`
	EndDateUnixUTC   int64    `json:"endDateUnixUTC"`
	Location         string   `json:"location"`
	IsOnline         bool     `json:"isOnline"`
	Invitees         []string `json:"invitees"`
	HostID           string   `json:"hostId"`
}

func eventRespBody(e *planner.Event) OneEventRespBody {
	return OneEventRespBody{
		ID:               e.ID,
		Name:             e.Name,
		StartDateUnixUTC: e.Start.UTC().Unix(),
		EndDateUnixUTC:   e.End.UTC().Unix(),
		Location:         e.Location,
		IsOnline:         e.IsOnline,
		Invitees:         e.Invitees,
		HostID:           e.HostID,
	}
}

func writeEvents(w http.ResponseWriter, events []*planner.Event) {
	respBody := make([]OneEventRespBody, 0, len(events))
	for _, e := range events {
		respBody = append(respBody, eventRespBody(e))
	}
	respBodyJson, err := json.Marshal(respBody)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Can't marshal response body"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(respBodyJson)
}

// findEvent resolves an event id against one user's schedule.
func findEvent(as *utils.AppState, userID, eventID string) (*planner.Event, bool) {
	u, ok := as.Planner.GetUser(userID)
	if !ok {
		return nil, false
	}
	for _, e := range u.Schedule().Events() {
		if e.ID == eventID {
			return e, true
		}
	}
	return nil, false
}

func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	store := model.NewStore(as.BunDB, as.Config.GetLocation())

	type EventFieldsReqBody struct {
		Name     string   `json:"name"`
		Start    string   `json:"start"`
		End      string   `json:"end"`
		Location string   `json:"location"`
		IsOnline bool     `json:"isOnline"`
		Invitees []string `json:"invitees"`
	}

	type CreateEventReqBody struct {
		UserID string `json:"userId"`
		EventFieldsReqBody
	}

	// create a placed event on one user's schedule; the success
	// response is the event ID
	muxer.HandleFunc("POST /calendar/create-event", func(w http.ResponseWriter, r *http.Request) {
		var reqBody CreateEventReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		start, err := parseWhen(as, reqBody.Start)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Can't parse start date"))
			return
		}
		end, err := parseWhen(as, reqBody.End)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Can't parse end date"))
			return
		}

		eventModel, err := planner.NewEvent(
			utils.CleanupString(reqBody.Name),
			start,
			end,
			utils.CleanupString(reqBody.Location),
			reqBody.IsOnline,
			reqBody.Invitees,
			reqBody.UserID,
		)
		if err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}

		if err := as.Planner.CreateEvent(reqBody.UserID, eventModel); err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}

		startTimer := time.Now()
		if err := store.SaveEvent(r.Context(), eventModel, []string{reqBody.UserID}); err != nil {
			slog.Error("route:calendar: can't persist event", "id", eventModel.ID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't persist event"))
			return
		}
		as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(eventModel.ID))
	})

	type ModifyEventReqBody struct {
		UserID  string `json:"userId"`
		EventID string `json:"eventId"`
		EventFieldsReqBody
	}

	// swap an event for an updated version; no-op edits are rejected.
	// The updated event is not conflict-checked again, so a client can
	// drag-resize through a momentarily conflicting state.
	muxer.HandleFunc("POST /calendar/modify-event", func(w http.ResponseWriter, r *http.Request) {
		var reqBody ModifyEventReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		original, ok := findEvent(as, reqBody.UserID, reqBody.EventID)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Event not found"))
			return
		}

		start, err := parseWhen(as, reqBody.Start)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Can't parse start date"))
			return
		}
		end, err := parseWhen(as, reqBody.End)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Can't parse end date"))
			return
		}

		updated, err := planner.NewEvent(
			utils.CleanupString(reqBody.Name),
			start,
			end,
			utils.CleanupString(reqBody.Location),
			reqBody.IsOnline,
			reqBody.Invitees,
			original.HostID,
		)
		if err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}
		updated.ID = original.ID

		if err := as.Planner.ModifyEvent(reqBody.UserID, original, updated); err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}

		startTimer := time.Now()
		if err := store.SaveEvent(r.Context(), updated, []string{reqBody.UserID}); err != nil {
			slog.Error("route:calendar: can't persist modified event", "id", updated.ID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't persist event"))
			return
		}
		as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(updated.ID))
	})

	type RemoveEventReqBody struct {
		UserID  string `json:"userId"`
		EventID string `json:"eventId"`
	}

	// remove an event from one user's schedule; removing an event that
	// isn't there is not an error
	muxer.HandleFunc("POST /calendar/remove-event", func(w http.ResponseWriter, r *http.Request) {
		var reqBody RemoveEventReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		e, ok := findEvent(as, reqBody.UserID, reqBody.EventID)
		if !ok {
			if _, exists := as.Planner.GetUser(reqBody.UserID); !exists {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("User not found"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("false"))
			return
		}

		removed, err := as.Planner.RemoveEvent(reqBody.UserID, e)
		if err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}

		if removed {
			startTimer := time.Now()
			if err := store.RemoveEvent(r.Context(), reqBody.UserID, e.ID); err != nil {
				slog.Error("route:calendar: can't remove persisted event", "id", e.ID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't remove persisted event"))
				return
			}
			as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "%t", removed)
	})

	type SeeEventsReqBody struct {
		UserID string `json:"userId"`
		At     string `json:"at"`
	}

	// all events strictly containing the given instant
	muxer.HandleFunc("POST /calendar/see-events", func(w http.ResponseWriter, r *http.Request) {
		var reqBody SeeEventsReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}
		at, err := parseWhen(as, reqBody.At)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Can't parse date"))
			return
		}
		events, err := as.Planner.SeeEvents(reqBody.UserID, at)
		if err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}
		writeEvents(w, events)
	})

	type WeekReqBody struct {
		UserID    string `json:"userId"`
		StartDate string `json:"startDate"`
	}

	// one week of events from the configured week-start day
	muxer.HandleFunc("POST /calendar/week", func(w http.ResponseWriter, r *http.Request) {
		var reqBody WeekReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}
		startDate, err := parseWhen(as, reqBody.StartDate)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Can't parse start date"))
			return
		}
		events, err := as.Planner.EventsForWeekStarting(reqBody.UserID, startDate)
		if err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}
		writeEvents(w, events)
	})
}
