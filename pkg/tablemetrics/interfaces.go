package tablemetrics

import (
	"github.com/SAP/tablemetrics-core/pkg/engine"
	"github.com/SAP/tablemetrics-core/pkg/engine/stats"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/SAP/tablemetrics-core/pkg/tablemetrics StatisticsSource,Engine,ThroughputSource

// StatisticsSource provides the statistics of a single shard.
// Implementations must be safe for concurrent use.
type StatisticsSource interface {
	TickerCount(stats.TickerType) uint64
	HistogramData(stats.HistogramType) stats.HistogramData
}

// PropertyQuerier answers queries about the live state of tables.
type PropertyQuerier interface {
	NumSSTablesAtLevel(id uuid.UUID, level int) (int, error)
	PendingCompactionBytes(id uuid.UUID) (uint64, error)
	EstimatedLiveDataSize(id uuid.UUID) (uint64, error)
}

// TableResolver resolves table ids to keyspace and table names.
type TableResolver interface {
	Resolve(id uuid.UUID) (engine.TableIdentity, error)
}

// Engine is the part of the storage engine table metrics depend on.
type Engine interface {
	PropertyQuerier
	TableResolver
}

// ThroughputSource provides the process-wide throughput in bytes per
// second.
type ThroughputSource interface {
	OutgoingThroughput() float64
	IncomingThroughput() float64
}

// SourcesOf converts a list of shard statistics to a list of
// StatisticsSource keeping the order.
func SourcesOf[S StatisticsSource](shards []S) []StatisticsSource {
	result := make([]StatisticsSource, len(shards))
	for i, shard := range shards {
		result[i] = shard
	}
	return result
}

// let compiler verify interface compliance
var (
	_ Engine           = (*engine.Engine)(nil)
	_ StatisticsSource = (*engine.Shard)(nil)
)
