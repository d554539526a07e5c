package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SAP/tablemetrics-core/pkg/metrics/naming"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stoewer/go-strcase"
)

const (
	// LabelKeyspace is the constant label holding the keyspace of a metric.
	LabelKeyspace = "keyspace"

	// LabelScope is the constant label holding the table scope of a metric,
	// i.e. the table name with the shard suffix, if any.
	LabelScope = "scope"

	// LabelLevel is the constant label holding the level of per-level
	// metrics like `SSTableCountPerLevel.<level>`.
	LabelLevel = "level"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Opts are the Prometheus options derived from a metric name.
type Opts struct {
	Namespace   string
	Subsystem   string
	Name        string
	Help        string
	ConstLabels prometheus.Labels
}

// NewOpts maps the given metric name to Prometheus options.
// A per-level name `<name>.<level>` maps to the family of `<name>` with the
// level as label, so that all levels can be aggregated.
func NewOpts(name naming.MetricName) Opts {
	constLabels := prometheus.Labels{
		LabelKeyspace: name.Keyspace,
		LabelScope:    name.TableScope(),
	}
	family := name.Name
	if base, level, ok := strings.Cut(name.Name, "."); ok {
		family = base
		constLabels[LabelLevel] = level
	}
	return Opts{
		Namespace: prometheusName(name.Group),
		Subsystem: prometheusName(name.Type),
		Name:      prometheusName(family),
		// must depend on the family only: all metrics in a family share one help text
		Help:        fmt.Sprintf("Storage engine metric %s.", family),
		ConstLabels: constLabels,
	}
}

// FQName returns the fully-qualified Prometheus metric name.
func (o Opts) FQName() string {
	return prometheus.BuildFQName(o.Namespace, o.Subsystem, o.Name)
}

// NewDesc returns a descriptor without variable labels.
func (o Opts) NewDesc() *prometheus.Desc {
	return prometheus.NewDesc(o.FQName(), o.Help, nil, o.ConstLabels)
}

// CounterOpts converts o to prometheus.CounterOpts.
func (o Opts) CounterOpts() prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   o.Namespace,
		Subsystem:   o.Subsystem,
		Name:        o.Name,
		Help:        o.Help,
		ConstLabels: o.ConstLabels,
	}
}

// GaugeOpts converts o to prometheus.GaugeOpts.
func (o Opts) GaugeOpts() prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   o.Namespace,
		Subsystem:   o.Subsystem,
		Name:        o.Name,
		Help:        o.Help,
		ConstLabels: o.ConstLabels,
	}
}

// SummaryOpts converts o to prometheus.SummaryOpts with the default
// objectives and a sliding time window, which weights recent observations.
func (o Opts) SummaryOpts() prometheus.SummaryOpts {
	return prometheus.SummaryOpts{
		Namespace:   o.Namespace,
		Subsystem:   o.Subsystem,
		Name:        o.Name,
		Help:        o.Help,
		ConstLabels: o.ConstLabels,
		Objectives:  DefaultObjectives,
		MaxAge:      prometheus.DefMaxAge,
		AgeBuckets:  prometheus.DefAgeBuckets,
	}
}

// HistogramOpts converts o to prometheus.HistogramOpts.
func (o Opts) HistogramOpts() prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   o.Namespace,
		Subsystem:   o.Subsystem,
		Name:        o.Name,
		Help:        o.Help,
		ConstLabels: o.ConstLabels,
		Buckets:     DefaultBuckets(),
	}
}

// DefaultObjectives are the quantiles reported by summaries.
var DefaultObjectives = map[float64]float64{
	0.5:  0.05,
	0.95: 0.005,
	0.99: 0.001,
}

// DefaultBuckets returns the buckets of histograms without biased
// sampling. Values are expected in microseconds or bytes.
func DefaultBuckets() []float64 {
	list := make([]float64, 0, 16)
	for i := 1.0; i <= 1e+7; i *= 10.0 {
		list = append(list, i, i*5.0)
	}
	return list
}

func prometheusName(s string) string {
	return strcase.SnakeCase(nonAlphanumeric.ReplaceAllString(s, "_"))
}
