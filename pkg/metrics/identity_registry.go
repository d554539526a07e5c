package metrics

import (
	"errors"
	"fmt"

	"github.com/SAP/tablemetrics-core/pkg/metrics/naming"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry registers metrics by identity.
//
// Registering an identity twice returns the metric registered first, so
// repeated registration of the same metric set has no further effect. It is
// safe for concurrent use.
type Registry struct {
	registerer prometheus.Registerer
	cache      cache
}

// NewRegistry returns a Registry that registers all metrics with the given
// Prometheus registerer.
func NewRegistry(registerer prometheus.Registerer) *Registry {
	return &Registry{
		registerer: registerer,
	}
}

// Register returns the collector registered for name. If there is none,
// newCollector is called to create it and the result gets registered.
func (r *Registry) Register(name naming.MetricName, newCollector func(Opts) prometheus.Collector) prometheus.Collector {
	return r.cache.GetOrCreate(name, func() prometheus.Collector {
		return r.mustRegister(name, newCollector(NewOpts(name)))
	})
}

// Counter returns the counter registered for name, creating it if needed.
// It panics if a metric of another kind is registered for name.
func (r *Registry) Counter(name naming.MetricName) CounterMetric {
	collector := r.Register(name, func(opts Opts) prometheus.Collector {
		return prometheus.NewCounter(opts.CounterOpts())
	})
	counter, ok := collector.(prometheus.Counter)
	if !ok {
		panic(kindMismatch(name, "counter", collector))
	}
	return counter
}

// Histogram returns the histogram registered for name, creating it if
// needed.
// If biased is true, a summary over a sliding time window is created which
// favors recent observations. Otherwise a cumulative bucketed histogram is
// created.
func (r *Registry) Histogram(name naming.MetricName, biased bool) HistogramMetric {
	collector := r.Register(name, func(opts Opts) prometheus.Collector {
		if biased {
			return prometheus.NewSummary(opts.SummaryOpts())
		}
		return prometheus.NewHistogram(opts.HistogramOpts())
	})
	histogram, ok := collector.(prometheus.Observer)
	if !ok {
		panic(kindMismatch(name, "histogram", collector))
	}
	return histogram
}

// Gauge returns the gauge registered for name. If there is none, a gauge
// evaluating fn on each read is registered.
// fn is called concurrently by scrapes and must not block.
func (r *Registry) Gauge(name naming.MetricName, fn func() float64) GaugeMetric {
	collector := r.Register(name, func(opts Opts) prometheus.Collector {
		return newGaugeFunc(opts.GaugeOpts(), fn)
	})
	gauge, ok := collector.(GaugeMetric)
	if !ok {
		panic(kindMismatch(name, "gauge", collector))
	}
	return gauge
}

// Names returns the identities of all registered metrics ordered by their
// flattened names.
func (r *Registry) Names() []naming.MetricName {
	return r.cache.Names()
}

// Len returns the number of registered metrics.
func (r *Registry) Len() int {
	return r.cache.Len()
}

func (r *Registry) mustRegister(name naming.MetricName, collector prometheus.Collector) prometheus.Collector {
	err := r.registerer.Register(collector)
	if err == nil {
		return collector
	}
	// registered via another Registry instance sharing the registerer
	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		return alreadyRegistered.ExistingCollector
	}
	panic(fmt.Sprintf("failed to register metric %s: %s", name, err))
}

func kindMismatch(name naming.MetricName, kind string, existing prometheus.Collector) string {
	return fmt.Sprintf("metric %s is already registered as %T, not as %s", name, existing, kind)
}
