package tablemetrics

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/SAP/tablemetrics-core/pkg/engine"
	"github.com/SAP/tablemetrics-core/pkg/featureflag"
	"github.com/SAP/tablemetrics-core/pkg/metrics"
	"github.com/SAP/tablemetrics-core/pkg/metrics/naming"
	"github.com/SAP/tablemetrics-core/pkg/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	klog "k8s.io/klog/v2"
)

// Labels of metrics not taken from the sharded catalog.
const (
	LabelOutgoingThroughput     = "RocksdbOutgoingThroughput"
	LabelIncomingThroughput     = "RocksdbIncomingThroughput"
	LabelIngestTime             = "IngestTime"
	LabelIngestWaitTime         = "IngestWaitTime"
	LabelSSTableCountPerLevel   = "SSTableCountPerLevel"
	LabelPendingCompactionBytes = "PendingCompactionBytes"
	LabelLiveDataSize           = "LiveDataSize"
	LabelIterMove               = "RocksIterMove"
	LabelIterSeek               = "RocksIterSeek"
	LabelIterNew                = "RocksIterNew"
)

// Provider registers the metrics of tables.
// It is safe for concurrent use.
type Provider struct {
	registry   *metrics.Registry
	engine     Engine
	throughput ThroughputSource

	globalOnce sync.Once
	global     *GlobalMetrics
}

// NewProvider returns a provider registering metrics with registry.
// Gauges query engine and throughput on every read.
func NewProvider(registry *metrics.Registry, e Engine, throughput ThroughputSource) *Provider {
	return &Provider{
		registry:   registry,
		engine:     e,
		throughput: throughput,
	}
}

// GlobalMetrics are the metrics not tied to any table.
type GlobalMetrics struct {
	OutgoingThroughput metrics.GaugeMetric
	IncomingThroughput metrics.GaugeMetric
}

// Global registers the process-wide metrics on first call and returns
// them.
func (p *Provider) Global() *GlobalMetrics {
	p.globalOnce.Do(func() {
		factory := naming.DefaultFactory
		p.global = &GlobalMetrics{
			OutgoingThroughput: p.registry.Gauge(
				factory.CreateMetricName(LabelOutgoingThroughput),
				OrDefault("outgoing throughput", func() (float64, error) {
					return p.throughput.OutgoingThroughput(), nil
				}),
			),
			IncomingThroughput: p.registry.Gauge(
				factory.CreateMetricName(LabelIncomingThroughput),
				OrDefault("incoming throughput", func() (float64, error) {
					return p.throughput.IncomingThroughput(), nil
				}),
			),
		}
		klog.V(3).Info("Registered process-wide storage engine metrics")
	})
	return p.global
}

// ForTable resolves the table with the given id and registers its metrics.
// sources are the statistics of the table's shards ordered by shard index.
func (p *Provider) ForTable(ctx context.Context, id uuid.UUID, sources []StatisticsSource) (*TableMetrics, error) {
	identity, err := p.engine.Resolve(id)
	if err != nil {
		return nil, errors.Wrapf(err, "registering metrics of table %s", id)
	}
	return p.Register(ctx, identity, sources), nil
}

// Register registers the metrics of the given table.
// Metrics registered before for the same table are reused, so calling
// Register again for a table has no further effect.
// It panics if the table's keyspace or name cannot be used in metric
// names.
func (p *Provider) Register(ctx context.Context, table engine.TableIdentity, sources []StatisticsSource) *TableMetrics {
	p.Global()

	ctx = utils.NewTableLoggingContext(ctx, "tablemetrics", table.Keyspace, table.Name, table.ID)
	logger := klog.FromContext(ctx)

	factory := naming.NewFactory(table.Keyspace, table.Name)
	result := &TableMetrics{Table: table}

	catalog := ShardedCatalog()
	for shard, source := range sources {
		for _, entry := range catalog {
			name := factory.CreateShardedMetricName(entry.Label, shard)
			switch entry.Kind {
			case KindHistogram:
				p.registry.Register(name, newHistogramAdapter(source, entry.Histogram))
			case KindCounter:
				p.registry.Register(name, newCounterAdapter(source, entry.Ticker))
			default:
				panic(fmt.Sprintf("unsupported kind %s of catalog entry %s", entry.Kind, entry.Label))
			}
			result.shardedNames = append(result.shardedNames, name)
		}
	}

	biased := !featureflag.UnbiasedIngestHistograms.Enabled()
	result.IngestTime = p.registry.Histogram(result.tableName(factory, LabelIngestTime), biased)
	result.IngestWaitTime = p.registry.Histogram(result.tableName(factory, LabelIngestWaitTime), biased)

	result.SSTablesPerLevel = make([]metrics.GaugeMetric, engine.MaxLevels)
	for level := 0; level < engine.MaxLevels; level++ {
		level := level
		label := LabelSSTableCountPerLevel + "." + strconv.Itoa(level)
		result.SSTablesPerLevel[level] = p.registry.Gauge(
			result.tableName(factory, label),
			OrDefault(fmt.Sprintf("SSTable count of level %d of table %s", level, table), func() (float64, error) {
				count, err := p.engine.NumSSTablesAtLevel(table.ID, level)
				return float64(count), err
			}),
		)
	}
	result.PendingCompactionBytes = p.registry.Gauge(
		result.tableName(factory, LabelPendingCompactionBytes),
		OrDefault(fmt.Sprintf("pending compaction bytes of table %s", table), func() (float64, error) {
			bytes, err := p.engine.PendingCompactionBytes(table.ID)
			return float64(bytes), err
		}),
	)
	result.LiveDataSize = p.registry.Gauge(
		result.tableName(factory, LabelLiveDataSize),
		OrDefault(fmt.Sprintf("live data size of table %s", table), func() (float64, error) {
			bytes, err := p.engine.EstimatedLiveDataSize(table.ID)
			return float64(bytes), err
		}),
	)

	result.IterMove = p.registry.Counter(result.tableName(factory, LabelIterMove))
	result.IterSeek = p.registry.Counter(result.tableName(factory, LabelIterSeek))
	result.IterNew = p.registry.Counter(result.tableName(factory, LabelIterNew))

	logger.V(3).Info("Registered table metrics", "shards", len(sources), "metrics", len(result.Names()))
	return result
}

// TableMetrics are the metrics of a single table.
type TableMetrics struct {
	Table engine.TableIdentity

	// IngestTime and IngestWaitTime are fed by the ingest path, in
	// microseconds.
	IngestTime     metrics.HistogramMetric
	IngestWaitTime metrics.HistogramMetric

	// SSTablesPerLevel has one gauge per level.
	SSTablesPerLevel       []metrics.GaugeMetric
	PendingCompactionBytes metrics.GaugeMetric
	LiveDataSize           metrics.GaugeMetric

	IterMove metrics.CounterMetric
	IterSeek metrics.CounterMetric
	IterNew  metrics.CounterMetric

	shardedNames []naming.MetricName
	tableNames   []naming.MetricName
}

func (m *TableMetrics) tableName(factory *naming.Factory, label string) naming.MetricName {
	name := factory.CreateMetricName(label)
	m.tableNames = append(m.tableNames, name)
	return name
}

// ShardedNames returns the identities of the per-shard metrics in
// registration order.
func (m *TableMetrics) ShardedNames() []naming.MetricName {
	return append([]naming.MetricName(nil), m.shardedNames...)
}

// TableNames returns the identities of the table-scoped metrics in
// registration order.
func (m *TableMetrics) TableNames() []naming.MetricName {
	return append([]naming.MetricName(nil), m.tableNames...)
}

// Names returns the identities of all metrics of the table.
func (m *TableMetrics) Names() []naming.MetricName {
	return append(m.ShardedNames(), m.tableNames...)
}

// Instruments returns the instruments to install into the engine table so
// that it feeds the table's metrics.
func (m *TableMetrics) Instruments() engine.Instruments {
	return engine.Instruments{
		IngestTime:     m.IngestTime,
		IngestWaitTime: m.IngestWaitTime,
		IterMove:       m.IterMove,
		IterSeek:       m.IterSeek,
		IterNew:        m.IterNew,
	}
}
