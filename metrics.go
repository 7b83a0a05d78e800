package tokebi

import "github.com/prometheus/client_golang/prometheus"

// Pipeline counters, registered on the default registry. The SDK never
// exposes a /metrics endpoint itself; hosts that scrape Prometheus pick these
// up through their own exposition.
var (
	metricEventsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokebi_events_recorded_total",
		Help: "Events accepted into the queue",
	})
	metricEventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokebi_events_dropped_total",
		Help: "Events dropped because the client was not configured",
	})
	metricBatchesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokebi_batches_sent_total",
		Help: "Batches acknowledged by the backend",
	})
	metricTransportFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokebi_transport_failures_total",
		Help: "Batch deliveries that failed at the transport level",
	})
	metricProtocolFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokebi_protocol_failures_total",
		Help: "Batch deliveries rejected with a non-2xx status",
	})
	metricEventsPersisted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokebi_events_persisted_total",
		Help: "Events written to the offline store after delivery failure",
	})
	metricEventsReplayed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokebi_events_replayed_total",
		Help: "Events loaded from the offline store at startup",
	})
	metricEventsEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokebi_events_evicted_total",
		Help: "Events dropped from the offline store by the retention cap",
	})
	metricRegistrations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokebi_registrations_total",
		Help: "Successful game registrations",
	})
)

func init() {
	prometheus.MustRegister(
		metricEventsRecorded,
		metricEventsDropped,
		metricBatchesSent,
		metricTransportFailures,
		metricProtocolFailures,
		metricEventsPersisted,
		metricEventsReplayed,
		metricEventsEvicted,
		metricRegistrations,
	)
}
