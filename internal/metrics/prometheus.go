// internal/metrics/prometheus.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sirens"

// PrometheusRecorder implements Recorder on a Prometheus registry.
type PrometheusRecorder struct {
	polls            *prom.CounterVec
	failures         prom.Gauge
	dispatches       *prom.CounterVec
	consumerFailures *prom.CounterVec
	renderDuration   prom.Histogram
	regions          *prom.GaugeVec
}

// NewPrometheusRecorder registers the pipeline metrics on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		polls: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Feed polling cycles by outcome",
		}, []string{"outcome"}),
		failures: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "consecutive_failures",
			Help:      "Current run of failed feed fetches",
		}),
		dispatches: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Snapshots dispatched to consumers",
		}, []string{"available"}),
		consumerFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "consumer_failures_total",
			Help:      "Consumer notifications that returned an error",
		}, []string{"consumer"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent composing one screen",
			Buckets:   prom.DefBuckets,
		}),
		regions: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "regions",
			Help:      "Regions per status in the last dispatched snapshot",
		}, []string{"status"}),
	}

	reg.MustRegister(pr.polls, pr.failures, pr.dispatches, pr.consumerFailures, pr.renderDuration, pr.regions)
	return pr
}

func (p *PrometheusRecorder) IncPoll(outcome PollOutcome) {
	p.polls.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetConsecutiveFailures(n int) {
	p.failures.Set(float64(n))
}

func (p *PrometheusRecorder) IncDispatch(available bool) {
	p.dispatches.WithLabelValues(strconv.FormatBool(available)).Inc()
}

func (p *PrometheusRecorder) IncConsumerFailure(consumer string) {
	p.consumerFailures.WithLabelValues(consumer).Inc()
}

func (p *PrometheusRecorder) ObserveRender(d time.Duration) {
	p.renderDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetRegionCounts(full, partial, noData, nothing int) {
	p.regions.WithLabelValues("full").Set(float64(full))
	p.regions.WithLabelValues("partial").Set(float64(partial))
	p.regions.WithLabelValues("no_data").Set(float64(noData))
	p.regions.WithLabelValues("nothing").Set(float64(nothing))
}

// HTTPHandler serves the metrics of reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
