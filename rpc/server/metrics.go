package server

import (
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Histogram names exposed on the metrics endpoint. All values are
// microseconds.
const (
	metricWorkerAcquire   = "queryd_worker_acquire_duration_us"
	metricRequestProcess  = "queryd_request_process_duration_us"
	metricResponseEnqueue = "queryd_response_enqueue_duration_us"
)

// serviceMetrics records the three per-call dispatch latencies. The
// histograms live for the lifetime of the process and are never reset.
type serviceMetrics struct {
	set *metrics.Set

	workerAcquire   *metrics.Histogram
	requestProcess  *metrics.Histogram
	responseEnqueue *metrics.Histogram
}

func newServiceMetrics() *serviceMetrics {
	set := metrics.NewSet()
	return &serviceMetrics{
		set:             set,
		workerAcquire:   set.GetOrCreateHistogram(metricWorkerAcquire),
		requestProcess:  set.GetOrCreateHistogram(metricRequestProcess),
		responseEnqueue: set.GetOrCreateHistogram(metricResponseEnqueue),
	}
}

// micros converts a duration into histogram units
func micros(d time.Duration) float64 {
	return float64(d.Microseconds())
}

// WritePrometheus writes all histograms in prometheus text format
func (m *serviceMetrics) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}
