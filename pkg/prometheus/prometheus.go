package prometheus

import "github.com/prometheus/client_golang/prometheus"

var (
	EventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_events_total",
			Help: "Count of processed conversation events",
		},
		[]string{"kind", "status"},
	)
	EventDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_event_duration_seconds",
			Help:    "Time taken to process one conversation event",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"kind"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_active_sessions",
			Help: "Current number of in-progress report sessions",
		},
	)
	ReportsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_reports_saved_total",
			Help: "Count of reports appended to the sheet",
		},
	)
	StoreFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_store_failures_total",
			Help: "Count of failed sheet append attempts",
		},
	)
)

func Init() {
	prometheus.MustRegister(
		EventCounter,
		EventDuration,
		ActiveSessions,
		ReportsSaved,
		StoreFailures,
	)
}
