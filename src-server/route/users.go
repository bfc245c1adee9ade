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

func Users(muxer *http.ServeMux, as *utils.AppState) {
	store := model.NewStore(as.BunDB, as.Config.GetLocation())

	type AddUserReqBody struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// add a new user with an empty schedule
	muxer.HandleFunc("POST /users/add", func(w http.ResponseWriter, r *http.Request) {
		var reqBody AddUserReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		userModel, err := planner.NewUser(reqBody.ID, utils.CleanupString(reqBody.Name))
		if err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}
		if err := as.Planner.AddUser(userModel); err != nil {
			w.WriteHeader(statusFromErr(err))
			w.Write([]byte(err.Error()))
			return
		}

		startTimer := time.Now()
		if err := store.SaveUser(r.Context(), userModel); err != nil {
			slog.Error("route:users: can't persist user", "id", userModel.ID(), "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't persist user"))
			return
		}
		as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(userModel.ID()))
	})

	type OneUserRespBody struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		EventCount int    `json:"eventCount"`
	}

	// list all known users
	muxer.HandleFunc("GET /users/list", func(w http.ResponseWriter, r *http.Request) {
		respBody := make([]OneUserRespBody, 0)
		for _, u := range as.Planner.Users() {
			respBody = append(respBody, OneUserRespBody{
				ID:         u.ID(),
				Name:       u.Name(),
				EventCount: len(u.Schedule().Events()),
			})
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
