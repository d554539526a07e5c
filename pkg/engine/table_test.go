package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gotest.tools/v3/assert"

	serrors "github.com/SAP/tablemetrics-core/pkg/errors"
	"github.com/SAP/tablemetrics-core/pkg/engine/stats"
)

func newTestTable(t *testing.T, throughput ThroughputRecorder, shards int) *Table {
	t.Helper()
	e := newTestEngine(t, throughput)
	table, err := e.OpenTable(context.Background(), newTestIdentity("t1"), shards)
	assert.NilError(t, err)
	return table
}

func sumTicker(table *Table, ticker stats.TickerType) uint64 {
	var result uint64
	for _, shard := range table.StatisticsSources() {
		result += shard.TickerCount(ticker)
	}
	return result
}

func sumHistogramCount(table *Table, histogram stats.HistogramType) uint64 {
	var result uint64
	for _, shard := range table.StatisticsSources() {
		result += shard.HistogramData(histogram).Count
	}
	return result
}

func Test_Table_PutGetDelete(t *testing.T) {
	t.Parallel()

	// SETUP
	throughput := &fakeThroughput{}
	examinee := newTestTable(t, throughput, 4)
	ctx := context.Background()

	// EXERCISE
	for i := 0; i < 20; i++ {
		assert.NilError(t, examinee.Put(ctx, []byte(fmt.Sprintf("k%02d", i)), []byte("value")))
	}
	value, err := examinee.Get(ctx, []byte("k07"))
	assert.NilError(t, err)
	assert.NilError(t, examinee.Delete(ctx, []byte("k07")))
	_, errDeleted := examinee.Get(ctx, []byte("k07"))

	// VERIFY
	assert.Equal(t, string(value), "value")
	assert.Assert(t, errors.Is(errDeleted, ErrKeyNotFound))
	assert.Assert(t, serrors.IsNotFound(errDeleted))
	assert.Equal(t, sumTicker(examinee, stats.TickerNumberKeysWritten), uint64(20))
	assert.Equal(t, sumHistogramCount(examinee, stats.HistogramBytesPerWrite), uint64(20))
	assert.Equal(t, sumHistogramCount(examinee, stats.HistogramDBWrite), uint64(21))
	assert.Equal(t, sumHistogramCount(examinee, stats.HistogramDBGet), uint64(2))
	assert.Equal(t, sumHistogramCount(examinee, stats.HistogramBytesPerRead), uint64(1))
	assert.Equal(t, throughput.incoming.Load(), int64(20*(3+5)))
	assert.Equal(t, throughput.outgoing.Load(), int64(5))
}

func Test_Table_ShardFor_isStable(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := newTestTable(t, nil, 8)
	seen := map[int]bool{}

	for i := 0; i < 200; i++ {
		key := []byte(fmt.Sprintf("key%d", i))

		// EXERCISE
		shard := examinee.ShardFor(key)

		// VERIFY
		assert.Equal(t, shard, examinee.ShardFor(key))
		assert.Assert(t, shard >= 0 && shard < 8)
		seen[shard] = true
	}
	assert.Assert(t, len(seen) > 1)
}

func Test_Table_MultiGet(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := newTestTable(t, nil, 3)
	ctx := context.Background()
	assert.NilError(t, examinee.Put(ctx, []byte("a"), []byte("1")))
	assert.NilError(t, examinee.Put(ctx, []byte("b"), []byte("22")))

	// EXERCISE
	result, err := examinee.MultiGet(ctx, [][]byte{[]byte("a"), []byte("missing"), []byte("b")})

	// VERIFY
	assert.NilError(t, err)
	assert.DeepEqual(t, result, [][]byte{[]byte("1"), nil, []byte("22")})
	assert.Assert(t, sumHistogramCount(examinee, stats.HistogramDBMultiGet) >= 1)
	assert.Equal(t, sumHistogramCount(examinee, stats.HistogramDBMultiGet), sumHistogramCount(examinee, stats.HistogramBytesPerMultiGet))
}

func Test_Table_NewIterator_instruments(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := newTestTable(t, nil, 1)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		assert.NilError(t, examinee.Put(ctx, []byte(fmt.Sprintf("k%d", i)), []byte("v")))
	}
	iterMove, iterSeek, iterNew := &fakeCounter{}, &fakeCounter{}, &fakeCounter{}
	examinee.Instrument(Instruments{IterMove: iterMove, IterSeek: iterSeek, IterNew: iterNew})

	// EXERCISE
	it, err := examinee.NewIterator(0, nil, nil)
	assert.NilError(t, err)
	keys := []string{}
	for valid := it.SeekGE([]byte("k2")); valid; valid = it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.NilError(t, it.Error())
	assert.NilError(t, it.Close())

	// VERIFY
	assert.DeepEqual(t, keys, []string{"k2", "k3", "k4"})
	assert.Equal(t, iterNew.value.Load(), int64(1))
	assert.Equal(t, iterSeek.value.Load(), int64(1))
	assert.Equal(t, iterMove.value.Load(), int64(3))
	assert.Equal(t, sumHistogramCount(examinee, stats.HistogramDBSeek), uint64(1))
}

func Test_Table_NewIterator_invalidShard(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := newTestTable(t, nil, 2)

	// EXERCISE
	_, err := examinee.NewIterator(2, nil, nil)

	// VERIFY
	assert.ErrorContains(t, err, "has no shard 2")
	assert.Assert(t, !serrors.IsRecoverable(err))
}

func Test_Table_Ingest_missingFile(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := newTestTable(t, nil, 1)
	ingestTime, ingestWaitTime := &fakeObserver{}, &fakeObserver{}
	examinee.Instrument(Instruments{IngestTime: ingestTime, IngestWaitTime: ingestWaitTime})

	// EXERCISE
	err := examinee.Ingest(context.Background(), 0, []string{"/nonexistent.sst"})

	// VERIFY
	assert.Assert(t, err != nil)
	assert.Equal(t, serrors.GetClass(err), serrors.ClassEngineIO)
	assert.Equal(t, ingestWaitTime.count(), 1)
	assert.Equal(t, ingestTime.count(), 0)
}

func Test_Table_Ingest_waitCanceled(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := newTestTable(t, nil, 1)
	ingestWaitTime := &fakeObserver{}
	examinee.Instrument(Instruments{IngestWaitTime: ingestWaitTime})
	assert.NilError(t, examinee.ingestSem.Acquire(context.Background(), 1))
	defer examinee.ingestSem.Release(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// EXERCISE
	err := examinee.Ingest(ctx, 0, nil)

	// VERIFY
	assert.Assert(t, errors.Is(err, context.Canceled))
	assert.Assert(t, serrors.IsRecoverable(err))
	assert.Equal(t, ingestWaitTime.count(), 0)
}

func Test_Table_FlushAndCompact(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := newTestTable(t, nil, 2)
	ctx := context.Background()
	for round := 0; round < 3; round++ {
		for i := 0; i < 50; i++ {
			assert.NilError(t, examinee.Put(ctx, []byte(fmt.Sprintf("k%03d", i)), []byte(fmt.Sprintf("v%d", round))))
		}
		assert.NilError(t, examinee.Flush(ctx))
	}

	// EXERCISE
	err := examinee.Compact(ctx)

	// VERIFY
	assert.NilError(t, err)
	assert.Assert(t, sumHistogramCount(examinee, stats.HistogramTableSyncMicros) >= 2)
	assert.Assert(t, sumHistogramCount(examinee, stats.HistogramCompactionTime) >= 1)
	assert.Assert(t, sumTicker(examinee, stats.TickerCompactWriteBytes) > 0)
	value, err := examinee.Get(ctx, []byte("k010"))
	assert.NilError(t, err)
	assert.Equal(t, string(value), "v2")
}

func Test_Table_Compact_empty(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := newTestTable(t, nil, 2)

	// EXERCISE
	err := examinee.Compact(context.Background())

	// VERIFY
	assert.NilError(t, err)
}

func Test_Table_Instrument_defaults(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := newTestTable(t, nil, 1)

	// EXERCISE
	examinee.Instrument(Instruments{IterSeek: &fakeCounter{}})

	// VERIFY
	instruments := examinee.instrumentsOrNoop()
	assert.Assert(t, instruments.IngestTime != nil)
	assert.Assert(t, instruments.IngestWaitTime != nil)
	assert.Assert(t, instruments.IterMove != nil)
	assert.Assert(t, instruments.IterNew != nil)
}
