package metrics

import "github.com/prometheus/client_golang/prometheus"

// CounterMetric is a monotonic counter metric.
// Implementations are safe for concurrent use.
type CounterMetric interface {
	Inc()
	Add(float64)
}

// HistogramMetric records observations.
type HistogramMetric interface {
	Observe(float64)
}

// GaugeMetric is a metric whose value is computed on each read.
type GaugeMetric interface {
	prometheus.Collector

	// Value evaluates the gauge.
	Value() float64
}

type gaugeFunc struct {
	prometheus.GaugeFunc
	fn func() float64
}

// let compiler verify interface compliance
var _ GaugeMetric = (*gaugeFunc)(nil)

func newGaugeFunc(opts prometheus.GaugeOpts, fn func() float64) *gaugeFunc {
	return &gaugeFunc{
		GaugeFunc: prometheus.NewGaugeFunc(opts, fn),
		fn:        fn,
	}
}

func (g *gaugeFunc) Value() float64 {
	return g.fn()
}
