package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Testing provides utility functions for testing with this package.
// Do not use it for non-testing purposes!
type Testing struct{}

// PatchRegistry replaces the internal Prometheus metrics registry with a
// replacement and returns a function that reverts the patch.
// Multiple nested replacements must be reverted in exactly the opposite
// order (revert last replacement first).
func (Testing) PatchRegistry(replacement *prometheus.Registry) func() {
	origValue := registry
	registry = replacement
	return func() {
		if registry != replacement {
			panic("reverting not possible because current value is not the former replacement")
		}
		registry = origValue
	}
}

// NewRegistry returns a Registry backed by a fresh pedantic Prometheus
// registry, which is returned as well so that tests can gather from it.
func (Testing) NewRegistry() (*Registry, *prometheus.Registry) {
	promRegistry := prometheus.NewPedanticRegistry()
	return NewRegistry(promRegistry), promRegistry
}

// Value collects the single metric of the given collector and returns its
// value. Counters and gauges are supported.
// It panics if the collector does not provide exactly one such metric.
func (Testing) Value(c prometheus.Collector) float64 {
	return testutil.ToFloat64(c)
}
