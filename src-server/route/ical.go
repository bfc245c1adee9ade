package route

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"huddle/src-server/ical"
	"huddle/src-server/model"
	"huddle/src-server/utils"
)

func Ical(muxer *http.ServeMux, as *utils.AppState) {
	store := model.NewStore(as.BunDB, as.Config.GetLocation())

	// bulk-load a schedule from an ICS payload. Imported events are
	// appended without conflict checks: a file may legally contain
	// overlaps and still loads whole.
	muxer.HandleFunc("POST /ical/import/{userID}", func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userID")
		if _, ok := as.Planner.GetUser(userID); !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("User not found"))
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Can't read request body"))
			return
		}
		events, err := ical.FromIcal(body, as.Config.GetLocation())
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(err.Error()))
			return
		}

		if err := as.Planner.ImportEvents(userID, events); err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}

		startTimer := time.Now()
		for _, e := range events {
			if err := store.SaveEvent(r.Context(), e, []string{userID}); err != nil {
				slog.Error("route:ical: can't persist imported event", "id", e.ID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't persist imported events"))
				return
			}
		}
		as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())

		w.WriteHeader(http.StatusOK)
		slog.Info("imported schedule", "user", userID, "events", len(events))
	})

	// serialize one user's schedule as ICS; works on the schedule's
	// defensive copy, never the internal storage
	muxer.HandleFunc("GET /ical/export/{userID}", func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userID")
		u, ok := as.Planner.GetUser(userID)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("User not found"))
			return
		}

		payload := ical.ToIcal(u.Schedule().Events(), u.Name())
		w.Header().Set("Content-Type", "text/calendar")
		w.Header().Set("Content-Disposition", "attachment; filename=\""+userID+".ics\"")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(payload))
	})
}
