package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Booking metrics
	BookingsCreated  prometheus.Counter
	BookingsCanceled prometheus.Counter
	BookingConflicts prometheus.Counter

	// Availability metrics
	AvailabilityRequests prometheus.Counter
	SlotsComputed        prometheus.Histogram

	// Aggregator metrics. OrdersSkipped counts order records dropped
	// because a referenced entity no longer resolves.
	OrdersSkipped prometheus.Counter

	// Event publishing metrics
	EventsPublished *prometheus.CounterVec
	EventsFailed    *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of booking submissions created",
		}),
		BookingsCanceled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Total number of booking submissions cancelled",
		}),
		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Total number of booking attempts rejected because the slot was taken",
		}),
		AvailabilityRequests: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_requests_total",
			Help:      "Total number of availability computations",
		}),
		SlotsComputed: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "availability_slots_computed",
			Help:      "Number of open slots returned per availability request",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		OrdersSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_skipped_total",
			Help:      "Order records dropped from listings due to unresolved references",
		}),
		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of domain events published",
		}, []string{"event_type"}),
		EventsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of domain event publish failures",
		}, []string{"event_type"}),
	}
}
