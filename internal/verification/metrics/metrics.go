package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the verification lifecycle engine.
type Metrics struct {
	ScansTotal    prometheus.Counter
	ScanDuration  prometheus.Histogram
	RemindersSent prometheus.Counter
	Unverified    prometheus.Counter
	ScanErrors    prometheus.Counter
	Skipped       prometheus.Counter
}

// New creates and registers all verification metrics.
func New() *Metrics {
	return &Metrics{
		ScansTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "supportdir_verification_scans_total",
			Help: "Total number of verification scan runs",
		}),
		ScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "supportdir_verification_scan_duration_seconds",
			Help:    "Duration of verification scan runs",
			Buckets: prometheus.DefBuckets,
		}),
		RemindersSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "supportdir_verification_reminders_sent_total",
			Help: "Total number of day-90 reminder notifications delivered",
		}),
		Unverified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "supportdir_verification_unverified_total",
			Help: "Total number of organisations demoted to unverified",
		}),
		ScanErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "supportdir_verification_scan_errors_total",
			Help: "Total number of per-organisation errors recorded during scans",
		}),
		Skipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "supportdir_verification_skipped_total",
			Help: "Total number of organisations skipped for lack of a notification recipient",
		}),
	}
}

// ObserveScan records one completed scan run.
func (m *Metrics) ObserveScan(duration time.Duration, reminders, unverified, skipped, errors int) {
	m.ScansTotal.Inc()
	m.ScanDuration.Observe(duration.Seconds())
	m.RemindersSent.Add(float64(reminders))
	m.Unverified.Add(float64(unverified))
	m.Skipped.Add(float64(skipped))
	m.ScanErrors.Add(float64(errors))
}
