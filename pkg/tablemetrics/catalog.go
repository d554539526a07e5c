package tablemetrics

import (
	"fmt"

	"github.com/SAP/tablemetrics-core/pkg/engine/stats"
	"github.com/SAP/tablemetrics-core/pkg/featureflag"
)

// Kind is the kind of a metric.
type Kind int

const (
	// KindHistogram is a distribution of observed values.
	KindHistogram Kind = iota
	// KindCounter is a monotonic count.
	KindCounter
	// KindGauge is a value computed on each read.
	KindGauge
)

func (k Kind) String() string {
	switch k {
	case KindHistogram:
		return "histogram"
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// CatalogEntry maps a statistic of a shard to a metric label.
// Histogram is set for KindHistogram entries, Ticker for KindCounter
// entries.
type CatalogEntry struct {
	Label     string
	Kind      Kind
	Histogram stats.HistogramType
	Ticker    stats.TickerType
}

func histogram(label string, h stats.HistogramType) CatalogEntry {
	return CatalogEntry{Label: label, Kind: KindHistogram, Histogram: h}
}

func counter(label string, t stats.TickerType) CatalogEntry {
	return CatalogEntry{Label: label, Kind: KindCounter, Ticker: t}
}

// Dashboards and alerts are keyed on these labels. Do not rename.
var shardedCatalog = [...]CatalogEntry{
	histogram("GetMicros", stats.HistogramDBGet),
	histogram("WriteMicros", stats.HistogramDBWrite),
	histogram("CompactionTimeMicros", stats.HistogramCompactionTime),
	histogram("SubcompactionSetupTimeMicros", stats.HistogramSubcompactionSetupTime),
	histogram("TableSyncMicros", stats.HistogramTableSyncMicros),
	histogram("CompactionOutfileSyncMicros", stats.HistogramCompactionOutfileSyncMicros),
	histogram("WALFileSyncMicros", stats.HistogramWALFileSyncMicros),
	histogram("ManifestSyncMicros", stats.HistogramManifestFileSyncMicros),
	histogram("TableOpenIOMicros", stats.HistogramTableOpenIOMicros),
	histogram("MultiGet", stats.HistogramDBMultiGet),
	histogram("ReadBlockCompactionMicros", stats.HistogramReadBlockCompactionMicros),
	histogram("ReadBlockGetMicros", stats.HistogramReadBlockGetMicros),
	histogram("WriteRawBlockMicros", stats.HistogramWriteRawBlockMicros),
	histogram("StallL0SlowdownCount", stats.HistogramStallL0SlowdownCount),
	histogram("MemtableCompactionCount", stats.HistogramStallMemtableCompactionCount),
	histogram("StallL0NumFilesCount", stats.HistogramStallL0NumFilesCount),
	histogram("HardRateLimitDelayCount", stats.HistogramHardRateLimitDelayCount),
	histogram("SoftRateLimitDelayCount", stats.HistogramSoftRateLimitDelayCount),
	histogram("NumFilesInSingleCompaction", stats.HistogramNumFilesInSingleCompaction),
	histogram("DbSeek", stats.HistogramDBSeek),
	histogram("WriteStall", stats.HistogramWriteStall),
	histogram("SstReadMs", stats.HistogramSSTReadMicros),
	histogram("NumSubCompactionsScheduled", stats.HistogramNumSubcompactionsScheduled),
	histogram("BytesPerRead", stats.HistogramBytesPerRead),
	histogram("BytesPerWrite", stats.HistogramBytesPerWrite),
	histogram("BytesPerMultiget", stats.HistogramBytesPerMultiGet),
	histogram("BytesCompressed", stats.HistogramBytesCompressed),
	histogram("BytesDecompressed", stats.HistogramBytesDecompressed),
	histogram("CompressionTimeUs", stats.HistogramCompressionTimesNanos),
	histogram("DecompressionTimeUs", stats.HistogramDecompressionTimesNanos),
	histogram("ReadNumMergeOperands", stats.HistogramReadNumMergeOperands),
	histogram("HistogramEnumMaxHistogram", stats.HistogramEnumMax),

	counter("CompactReadBytes", stats.TickerCompactReadBytes),
	counter("CompactWriteBytes", stats.TickerCompactWriteBytes),
	counter("CompactionKeyDropUser", stats.TickerCompactionKeyDropUser),
	counter("NumberKeysWritten", stats.TickerNumberKeysWritten),
	counter("MemtableHit", stats.TickerMemtableHit),
	counter("MemtableMiss", stats.TickerMemtableMiss),
	counter("BlockCacheHit", stats.TickerBlockCacheHit),
	counter("BlockCacheMiss", stats.TickerBlockCacheMiss),
	counter("StallMicros", stats.TickerStallMicros),
	counter("DBMutexWaitMicros", stats.TickerDBMutexWaitMicros),
	counter("MergeOperationTotalTime", stats.TickerMergeOperationTotalTime),
}

// ShardedCatalog returns the metrics registered for every shard of a
// table.
// The entry for the HistogramEnumMax sentinel is omitted if the feature
// flag OmitHistogramEnumMax is enabled.
func ShardedCatalog() []CatalogEntry {
	result := make([]CatalogEntry, 0, len(shardedCatalog))
	for _, entry := range shardedCatalog {
		if entry.Kind == KindHistogram && entry.Histogram == stats.HistogramEnumMax && featureflag.OmitHistogramEnumMax.Enabled() {
			continue
		}
		result = append(result, entry)
	}
	return result
}
