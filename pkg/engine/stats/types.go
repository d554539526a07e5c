package stats

import "fmt"

// TickerType identifies a counter of the engine statistics.
type TickerType uint32

// Ticker types. The order is part of the statistics format and must not
// change; new types are appended before TickerEnumMax.
const (
	TickerCompactReadBytes TickerType = iota
	TickerCompactWriteBytes
	TickerCompactionKeyDropUser
	TickerNumberKeysWritten
	TickerMemtableHit
	TickerMemtableMiss
	TickerBlockCacheHit
	TickerBlockCacheMiss
	TickerStallMicros
	TickerDBMutexWaitMicros
	TickerMergeOperationTotalTime

	// TickerEnumMax is the number of ticker types. It is not a ticker.
	TickerEnumMax
)

var tickerNames = [...]string{
	TickerCompactReadBytes:        "COMPACT_READ_BYTES",
	TickerCompactWriteBytes:       "COMPACT_WRITE_BYTES",
	TickerCompactionKeyDropUser:   "COMPACTION_KEY_DROP_USER",
	TickerNumberKeysWritten:       "NUMBER_KEYS_WRITTEN",
	TickerMemtableHit:             "MEMTABLE_HIT",
	TickerMemtableMiss:            "MEMTABLE_MISS",
	TickerBlockCacheHit:           "BLOCK_CACHE_HIT",
	TickerBlockCacheMiss:          "BLOCK_CACHE_MISS",
	TickerStallMicros:             "STALL_MICROS",
	TickerDBMutexWaitMicros:       "DB_MUTEX_WAIT_MICROS",
	TickerMergeOperationTotalTime: "MERGE_OPERATION_TOTAL_TIME",
	TickerEnumMax:                 "TICKER_ENUM_MAX",
}

func (t TickerType) String() string {
	if int(t) < len(tickerNames) {
		return tickerNames[t]
	}
	return fmt.Sprintf("TickerType(%d)", uint32(t))
}

// TickerTypes returns all ticker types in enumeration order, excluding
// TickerEnumMax.
func TickerTypes() []TickerType {
	result := make([]TickerType, 0, TickerEnumMax)
	for t := TickerType(0); t < TickerEnumMax; t++ {
		result = append(result, t)
	}
	return result
}

// HistogramType identifies a histogram of the engine statistics.
type HistogramType uint32

// Histogram types. The order is part of the statistics format and must not
// change; new types are appended before HistogramEnumMax.
const (
	HistogramDBGet HistogramType = iota
	HistogramDBWrite
	HistogramCompactionTime
	HistogramSubcompactionSetupTime
	HistogramTableSyncMicros
	HistogramCompactionOutfileSyncMicros
	HistogramWALFileSyncMicros
	HistogramManifestFileSyncMicros
	HistogramTableOpenIOMicros
	HistogramDBMultiGet
	HistogramReadBlockCompactionMicros
	HistogramReadBlockGetMicros
	HistogramWriteRawBlockMicros
	HistogramStallL0SlowdownCount
	HistogramStallMemtableCompactionCount
	HistogramStallL0NumFilesCount
	HistogramHardRateLimitDelayCount
	HistogramSoftRateLimitDelayCount
	HistogramNumFilesInSingleCompaction
	HistogramDBSeek
	HistogramWriteStall
	HistogramSSTReadMicros
	HistogramNumSubcompactionsScheduled
	HistogramBytesPerRead
	HistogramBytesPerWrite
	HistogramBytesPerMultiGet
	HistogramBytesCompressed
	HistogramBytesDecompressed
	HistogramCompressionTimesNanos
	HistogramDecompressionTimesNanos
	HistogramReadNumMergeOperands

	// HistogramEnumMax is the number of histogram types. Nothing is ever
	// recorded for it; reading it yields empty data.
	HistogramEnumMax
)

var histogramNames = [...]string{
	HistogramDBGet:                        "DB_GET",
	HistogramDBWrite:                      "DB_WRITE",
	HistogramCompactionTime:               "COMPACTION_TIME",
	HistogramSubcompactionSetupTime:       "SUBCOMPACTION_SETUP_TIME",
	HistogramTableSyncMicros:              "TABLE_SYNC_MICROS",
	HistogramCompactionOutfileSyncMicros:  "COMPACTION_OUTFILE_SYNC_MICROS",
	HistogramWALFileSyncMicros:            "WAL_FILE_SYNC_MICROS",
	HistogramManifestFileSyncMicros:       "MANIFEST_FILE_SYNC_MICROS",
	HistogramTableOpenIOMicros:            "TABLE_OPEN_IO_MICROS",
	HistogramDBMultiGet:                   "DB_MULTIGET",
	HistogramReadBlockCompactionMicros:    "READ_BLOCK_COMPACTION_MICROS",
	HistogramReadBlockGetMicros:           "READ_BLOCK_GET_MICROS",
	HistogramWriteRawBlockMicros:          "WRITE_RAW_BLOCK_MICROS",
	HistogramStallL0SlowdownCount:         "STALL_L0_SLOWDOWN_COUNT",
	HistogramStallMemtableCompactionCount: "STALL_MEMTABLE_COMPACTION_COUNT",
	HistogramStallL0NumFilesCount:         "STALL_L0_NUM_FILES_COUNT",
	HistogramHardRateLimitDelayCount:      "HARD_RATE_LIMIT_DELAY_COUNT",
	HistogramSoftRateLimitDelayCount:      "SOFT_RATE_LIMIT_DELAY_COUNT",
	HistogramNumFilesInSingleCompaction:   "NUM_FILES_IN_SINGLE_COMPACTION",
	HistogramDBSeek:                       "DB_SEEK",
	HistogramWriteStall:                   "WRITE_STALL",
	HistogramSSTReadMicros:                "SST_READ_MICROS",
	HistogramNumSubcompactionsScheduled:   "NUM_SUBCOMPACTIONS_SCHEDULED",
	HistogramBytesPerRead:                 "BYTES_PER_READ",
	HistogramBytesPerWrite:                "BYTES_PER_WRITE",
	HistogramBytesPerMultiGet:             "BYTES_PER_MULTIGET",
	HistogramBytesCompressed:              "BYTES_COMPRESSED",
	HistogramBytesDecompressed:            "BYTES_DECOMPRESSED",
	HistogramCompressionTimesNanos:        "COMPRESSION_TIMES_NANOS",
	HistogramDecompressionTimesNanos:      "DECOMPRESSION_TIMES_NANOS",
	HistogramReadNumMergeOperands:         "READ_NUM_MERGE_OPERANDS",
	HistogramEnumMax:                      "HISTOGRAM_ENUM_MAX",
}

func (h HistogramType) String() string {
	if int(h) < len(histogramNames) {
		return histogramNames[h]
	}
	return fmt.Sprintf("HistogramType(%d)", uint32(h))
}

// HistogramTypes returns all histogram types in enumeration order,
// including the HistogramEnumMax sentinel.
func HistogramTypes() []HistogramType {
	result := make([]HistogramType, 0, HistogramEnumMax+1)
	for h := HistogramType(0); h <= HistogramEnumMax; h++ {
		result = append(result, h)
	}
	return result
}
