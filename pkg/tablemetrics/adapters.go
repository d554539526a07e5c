package tablemetrics

import (
	"github.com/SAP/tablemetrics-core/pkg/engine/stats"
	"github.com/SAP/tablemetrics-core/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	klog "k8s.io/klog/v2"
)

// histogramAdapter exposes a histogram of a statistics source as
// Prometheus summary. The source is read on every collection.
type histogramAdapter struct {
	desc      *prometheus.Desc
	source    StatisticsSource
	histogram stats.HistogramType
}

// let compiler verify interface compliance
var _ prometheus.Collector = (*histogramAdapter)(nil)

func newHistogramAdapter(source StatisticsSource, h stats.HistogramType) func(metrics.Opts) prometheus.Collector {
	return func(opts metrics.Opts) prometheus.Collector {
		return &histogramAdapter{
			desc:      opts.NewDesc(),
			source:    source,
			histogram: h,
		}
	}
}

func (a *histogramAdapter) Describe(ch chan<- *prometheus.Desc) {
	ch <- a.desc
}

func (a *histogramAdapter) Collect(ch chan<- prometheus.Metric) {
	data := a.Data()
	ch <- prometheus.MustNewConstSummary(
		a.desc,
		data.Count,
		float64(data.Sum),
		map[float64]float64{
			0.5:  data.Median,
			0.95: data.Percentile95,
			0.99: data.Percentile99,
		},
	)
}

// Data reads the histogram from the source. A failing read yields empty
// data.
func (a *histogramAdapter) Data() (result stats.HistogramData) {
	defer func() {
		if r := recover(); r != nil {
			klog.Warningf("Reading histogram %s failed: %v", a.histogram, r)
			result = stats.HistogramData{}
		}
	}()
	return a.source.HistogramData(a.histogram)
}

// counterAdapter exposes a ticker of a statistics source as Prometheus
// counter. The source is read on every collection.
type counterAdapter struct {
	desc   *prometheus.Desc
	source StatisticsSource
	ticker stats.TickerType
}

// let compiler verify interface compliance
var _ prometheus.Collector = (*counterAdapter)(nil)

func newCounterAdapter(source StatisticsSource, t stats.TickerType) func(metrics.Opts) prometheus.Collector {
	return func(opts metrics.Opts) prometheus.Collector {
		return &counterAdapter{
			desc:   opts.NewDesc(),
			source: source,
			ticker: t,
		}
	}
}

func (a *counterAdapter) Describe(ch chan<- *prometheus.Desc) {
	ch <- a.desc
}

func (a *counterAdapter) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(a.desc, prometheus.CounterValue, float64(a.Count()))
}

// Count reads the ticker from the source. A failing read yields zero.
func (a *counterAdapter) Count() (result uint64) {
	defer func() {
		if r := recover(); r != nil {
			klog.Warningf("Reading ticker %s failed: %v", a.ticker, r)
			result = 0
		}
	}()
	return a.source.TickerCount(a.ticker)
}
