package metric

import (
	"log/slog"
	"time"

	"huddle/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func searchLatency(as *utils.AppState, clearTickerInterval *time.Duration) {
	searchLatency := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "huddle_search_latency_microsec",
		Help: "The latency of the last auto-schedule search in microseconds",
	})
	good := true
	if err := prometheus.Register(searchLatency); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register huddle_search_latency_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("huddle_search_latency_microsec metric registered")
		searchLatency.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(searchLatency) {
				case true:
					slog.Debug("huddle_search_latency_microsec metric unregistered")
				case false:
					slog.Warn("huddle_search_latency_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.SearchLatency:
				searchLatency.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				searchLatency.Set(0)
			}
		}
	}()
}

func eventsPlaced(as *utils.AppState) {
	eventsPlaced := promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_events_placed_total",
		Help: "The number of events placed by the auto-scheduler",
	})
	if err := prometheus.Register(eventsPlaced); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register huddle_events_placed_total metric", "error", err)
		}
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(eventsPlaced) {
				case true:
					slog.Debug("huddle_events_placed_total metric unregistered")
				case false:
					slog.Warn("huddle_events_placed_total metric not registered")
				}
				return
			case n := <-as.MetricChans.EventsPlaced:
				eventsPlaced.Add(float64(n))
			}
		}
	}()
}

func slotsScanned(as *utils.AppState) {
	slotsScanned := promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_slots_scanned_total",
		Help: "The number of candidate slots probed by the auto-scheduler",
	})
	if err := prometheus.Register(slotsScanned); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register huddle_slots_scanned_total metric", "error", err)
		}
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(slotsScanned) {
				case true:
					slog.Debug("huddle_slots_scanned_total metric unregistered")
				case false:
					slog.Warn("huddle_slots_scanned_total metric not registered")
				}
				return
			case n := <-as.MetricChans.SlotsScanned:
				slotsScanned.Add(float64(n))
			}
		}
	}()
}
