package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SOSCreated       prometheus.Counter
	SOSStatusChanges *prometheus.CounterVec
	ClientsConnected prometheus.Gauge
	EventsBroadcast  *prometheus.CounterVec
	EventsDropped    prometheus.Counter
	HTTPDuration     *prometheus.HistogramVec

	// Place geocoder.
	PlacesGeocoded  *prometheus.CounterVec
	GeocoderErrors  prometheus.Counter
	GeocoderSeconds *prometheus.HistogramVec
	GeocoderWorkers prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SOSCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "inclusion_sos_created_total",
			Help: "Total number of SOS alerts created.",
		}),
		SOSStatusChanges: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "inclusion_sos_status_changes_total",
			Help: "Total number of SOS status changes by resulting status.",
		}, []string{"status"}),
		ClientsConnected: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "inclusion_realtime_clients",
			Help: "Current number of connected realtime clients.",
		}),
		EventsBroadcast: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "inclusion_realtime_events_broadcast_total",
			Help: "Total number of realtime events broadcast by event name.",
		}, []string{"event"}),
		EventsDropped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "inclusion_realtime_events_dropped_total",
			Help: "Total number of realtime messages dropped for slow or closed clients.",
		}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inclusion_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
		PlacesGeocoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "inclusion_places_geocoded_total",
			Help: "Total number of places processed by the geocoder.",
		}, []string{"status"}),
		GeocoderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "inclusion_geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		GeocoderSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inclusion_geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocoderWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "inclusion_geocoding_active_workers",
			Help: "Current number of active workers geocoding places.",
		}),
	}
}
