package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for position report ingestion.
const (
	OutcomeAccepted       = "accepted"
	OutcomeInvalid        = "invalid"
	OutcomeUnknownService = "unknown_service"
	OutcomeStorageError   = "storage_error"
	OutcomeSimMode        = "sim_mode"
)

// Collector owns all prometheus metrics on a private registry.
type Collector struct {
	reg *prometheus.Registry

	PositionReports *prometheus.CounterVec // outcome label
	IngestDuration  prometheus.Histogram
	SearchDuration  prometheus.Histogram

	SimTicks        prometheus.Counter
	TrackedVehicles prometheus.Gauge

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		PositionReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "apsrtc_position_reports_total",
			Help: "Position reports received, labelled by outcome.",
		}, []string{"outcome"}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "apsrtc_ingest_duration_seconds",
			Help:    "Duration of position report handling including the upsert.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "apsrtc_search_duration_seconds",
			Help:    "Duration of route search queries.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		SimTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apsrtc_sim_ticks_total",
			Help: "Total simulator ticks executed.",
		}),
		TrackedVehicles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "apsrtc_tracked_vehicles",
			Help: "Number of vehicles with a live position record, as seen by the last simulator tick.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apsrtc_nats_published_total",
			Help: "Total position events published to NATS.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apsrtc_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "apsrtc_nats_connected",
			Help: "1 if the NATS connection is established, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		c.PositionReports,
		c.IngestDuration,
		c.SearchDuration,
		c.SimTicks,
		c.TrackedVehicles,
		c.NATSPublished,
		c.NATSPublishErrs,
		c.NATSConnected,
	)

	return c
}

// ObserveIngest records one ingestion attempt.
func (c *Collector) ObserveIngest(outcome string, d time.Duration) {
	c.PositionReports.WithLabelValues(outcome).Inc()
	c.IngestDuration.Observe(d.Seconds())
}

// ObserveSearch records one search query.
func (c *Collector) ObserveSearch(d time.Duration) {
	c.SearchDuration.Observe(d.Seconds())
}

// SimTickInc counts one simulator tick.
func (c *Collector) SimTickInc() {
	c.SimTicks.Inc()
}

// SetTrackedVehicles records how many vehicles currently hold a position row.
func (c *Collector) SetTrackedVehicles(n int64) {
	c.TrackedVehicles.Set(float64(n))
}

func (c *Collector) NATSPublishedInc() {
	c.NATSPublished.Inc()
}

func (c *Collector) NATSPublishErrInc() {
	c.NATSPublishErrs.Inc()
}

func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}

// Serve starts an HTTP server exposing /metrics on addr. The caller shuts it
// down via the returned server.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	return srv
}
