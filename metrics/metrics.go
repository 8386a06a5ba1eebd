// Package metrics exposes Prometheus counters for the timing flow and
// the /metrics handler serving them.
package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LapsStarted counts laps opened, via scan or start-next.
	LapsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "urenloop_laps_started_total",
		Help: "Number of laps started.",
	})
	// LapsStopped counts laps closed with a recorded time.
	LapsStopped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "urenloop_laps_stopped_total",
		Help: "Number of laps finished.",
	})
	// StartsUndone counts reversed starts.
	StartsUndone = promauto.NewCounter(prometheus.CounterOpts{
		Name: "urenloop_starts_undone_total",
		Help: "Number of lap starts undone.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
