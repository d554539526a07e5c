package engine

import (
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cockroachdb/pebble"

	"github.com/SAP/tablemetrics-core/pkg/engine/stats"
)

// newEventListener returns a listener recording background work of a shard
// into its statistics.
func newEventListener(statistics *stats.Statistics, clk clock.Clock) *pebble.EventListener {
	var stallStart atomic.Int64

	return &pebble.EventListener{
		CompactionEnd: func(info pebble.CompactionInfo) {
			if info.Err != nil {
				return
			}
			var readBytes, writeBytes uint64
			var inputFiles int
			for _, level := range info.Input {
				inputFiles += len(level.Tables)
				for _, table := range level.Tables {
					readBytes += table.Size
				}
			}
			for _, table := range info.Output.Tables {
				writeBytes += table.Size
			}
			statistics.RecordInHistogram(stats.HistogramCompactionTime, micros(info.TotalDuration))
			statistics.RecordInHistogram(stats.HistogramNumFilesInSingleCompaction, int64(inputFiles))
			statistics.RecordTick(stats.TickerCompactReadBytes, readBytes)
			statistics.RecordTick(stats.TickerCompactWriteBytes, writeBytes)
		},
		FlushEnd: func(info pebble.FlushInfo) {
			if info.Err != nil || info.Ingest {
				return
			}
			statistics.RecordInHistogram(stats.HistogramTableSyncMicros, micros(info.TotalDuration))
		},
		WriteStallBegin: func(pebble.WriteStallBeginInfo) {
			stallStart.Store(clk.Now().UnixNano())
		},
		WriteStallEnd: func() {
			start := stallStart.Swap(0)
			if start == 0 {
				return
			}
			stalled := micros(time.Duration(clk.Now().UnixNano() - start))
			statistics.RecordInHistogram(stats.HistogramWriteStall, stalled)
			statistics.RecordTick(stats.TickerStallMicros, uint64(stalled))
		},
	}
}

func micros(d time.Duration) int64 {
	return d.Microseconds()
}
