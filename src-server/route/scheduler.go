package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"huddle/src-server/model"
	"huddle/src-server/planner"
	"huddle/src-server/utils"
)

func Scheduler(muxer *http.ServeMux, as *utils.AppState) {
	store := model.NewStore(as.BunDB, as.Config.GetLocation())

	type SetPolicyReqBody struct {
		Policy string `json:"policy"`
	}

	// pick the active placement policy: anytime | work-hours | lenient
	muxer.HandleFunc("POST /scheduler/policy", func(w http.ResponseWriter, r *http.Request) {
		var reqBody SetPolicyReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}
		policy, err := planner.ParsePolicy(reqBody.Policy)
		if err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}
		as.Planner.SetPolicy(policy)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(policy.String()))
	})

	// the active policy, "unset" before the first POST
	muxer.HandleFunc("GET /scheduler/policy", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(as.Planner.Policy().String()))
	})

	type AutoScheduleReqBody struct {
		HostID          string   `json:"hostId"`
		Name            string   `json:"name"`
		DurationMinutes int64    `json:"durationMinutes"`
		Location        string   `json:"location"`
		IsOnline        bool     `json:"isOnline"`
		Invitees        []string `json:"invitees"`
	}

	type AutoScheduleRespBody struct {
		OneEventRespBody
		Owners       []string `json:"owners"`
		SlotsScanned int      `json:"slotsScanned"`
	}

	// place a draft event at the earliest slot where the host and
	// every invitee are simultaneously free
	muxer.HandleFunc("POST /scheduler/auto-schedule", func(w http.ResponseWriter, r *http.Request) {
		var reqBody AutoScheduleReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		eventModel, err := planner.NewDraftEvent(
			utils.CleanupString(reqBody.Name),
			time.Duration(reqBody.DurationMinutes)*time.Minute,
			utils.CleanupString(reqBody.Location),
			reqBody.IsOnline,
			reqBody.Invitees,
			reqBody.HostID,
		)
		if err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}

		startTimer := time.Now()
		placement, err := as.Planner.AutoSchedule(reqBody.HostID, eventModel)
		as.MetricChans.SearchLatency <- float64(time.Since(startTimer).Microseconds())
		as.MetricChans.SlotsScanned <- placement.SlotsScanned
		if err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}
		as.MetricChans.EventsPlaced <- 1

		startTimer = time.Now()
		if err := store.SaveEvent(r.Context(), eventModel, placement.Owners); err != nil {
			slog.Error("route:scheduler: can't persist event", "id", eventModel.ID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't persist event"))
			return
		}
		as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())

		respBody := AutoScheduleRespBody{
			OneEventRespBody: eventRespBody(eventModel),
			Owners:           placement.Owners,
			SlotsScanned:     placement.SlotsScanned,
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
	})
}
