// Package metrics records per-run conversion statistics in Prometheus form.
//
// mkcdda is a one-shot command, so nothing is served over HTTP. When
// metrics.textfile is configured the registry is written in the text
// exposition format for node_exporter's textfile collector to pick up.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mkcdda/internal/cdda"
)

// Metrics contains all Prometheus metrics for a conversion run
type Metrics struct {
	registry *prometheus.Registry

	// Track metrics
	Tracks       prometheus.Counter
	PayloadBytes prometheus.Counter
	PaddingBytes prometheus.Counter

	// Image metrics
	ImageSectors prometheus.Gauge

	// Run metrics
	RunDuration prometheus.Gauge
	LastSuccess prometheus.Gauge
	Failures    *prometheus.CounterVec
}

// New creates the metrics on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,

		Tracks: factory.NewCounter(prometheus.CounterOpts{
			Name: "mkcdda_tracks_total",
			Help: "Number of tracks appended to the disc image",
		}),
		PayloadBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "mkcdda_payload_bytes_total",
			Help: "Audio payload bytes copied into the disc image",
		}),
		PaddingBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "mkcdda_padding_bytes_total",
			Help: "Zero bytes written to align tracks to sector boundaries",
		}),

		ImageSectors: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mkcdda_image_sectors",
			Help: "Number of 2352 byte sectors in the last disc image",
		}),

		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mkcdda_run_duration_seconds",
			Help: "Wall clock duration of the last run",
		}),
		LastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mkcdda_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mkcdda_failures_total",
			Help: "Failed runs by error kind",
		}, []string{"kind"}),
	}
}

// ObserveTrack records one appended track.
func (m *Metrics) ObserveTrack(payload, padding int64) {
	m.Tracks.Inc()
	m.PayloadBytes.Add(float64(payload))
	m.PaddingBytes.Add(float64(padding))
}

// ObserveSuccess records a completed run.
func (m *Metrics) ObserveSuccess(sectors int64, elapsed time.Duration, now time.Time) {
	m.ImageSectors.Set(float64(sectors))
	m.RunDuration.Set(elapsed.Seconds())
	m.LastSuccess.Set(float64(now.Unix()))
}

// ObserveFailure records a failed run under the kind of err.
func (m *Metrics) ObserveFailure(err error, elapsed time.Duration) {
	m.RunDuration.Set(elapsed.Seconds())
	m.Failures.WithLabelValues(KindLabel(err)).Inc()
}

// KindLabel returns the failure label for err.
func KindLabel(err error) string {
	var cerr *cdda.Error
	if errors.As(err, &cerr) {
		return cerr.Kind.Error()
	}
	var kind cdda.Kind
	if errors.As(err, &kind) {
		return kind.Error()
	}
	return "unknown"
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile atomically writes the registry to path. An empty path is a
// no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
