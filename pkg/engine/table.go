package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/pebble"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	serrors "github.com/SAP/tablemetrics-core/pkg/errors"
	"github.com/SAP/tablemetrics-core/pkg/engine/stats"
)

// Table is a set of shards. Keys are assigned to shards by their hash.
// It is safe for concurrent use.
type Table struct {
	identity    TableIdentity
	engine      *Engine
	shards      []*Shard
	ingestSem   *semaphore.Weighted
	instruments atomic.Pointer[Instruments]

	// lock guards closed. Shard databases are used with a read lock held.
	lock   sync.RWMutex
	closed bool
}

func newTable(e *Engine, identity TableIdentity, shards int) *Table {
	t := &Table{
		identity:  identity,
		engine:    e,
		shards:    make([]*Shard, shards),
		ingestSem: semaphore.NewWeighted(e.opts.MaxConcurrentIngests),
	}
	t.instruments.Store(Instruments{}.withDefaults())
	return t
}

// Identity returns the identity of the table.
func (t *Table) Identity() TableIdentity {
	return t.identity
}

// Shards returns the shards of the table ordered by index.
func (t *Table) Shards() []*Shard {
	result := make([]*Shard, len(t.shards))
	copy(result, t.shards)
	return result
}

// StatisticsSources returns the statistics of all shards ordered by shard
// index.
func (t *Table) StatisticsSources() []*Shard {
	return t.Shards()
}

// Instrument installs the instruments receiving ingest and iterator
// measurements. Missing instruments are replaced by no-ops.
func (t *Table) Instrument(instruments Instruments) {
	t.instruments.Store(instruments.withDefaults())
}

func (t *Table) instrumentsOrNoop() *Instruments {
	return t.instruments.Load()
}

// ShardFor returns the index of the shard owning key.
func (t *Table) ShardFor(key []byte) int {
	return int(xxhash.Sum64(key) % uint64(len(t.shards)))
}

// Put writes a value.
func (t *Table) Put(ctx context.Context, key, value []byte) error {
	return t.withShard(t.ShardFor(key), func(shard *Shard) error {
		start := t.engine.opts.Clock.Now()
		if err := shard.db.Set(key, value, t.writeOptions()); err != nil {
			return serrors.Classify(pkgerrors.Wrapf(err, "writing to table %s", t.identity), serrors.ClassEngineIO)
		}
		size := len(key) + len(value)
		shard.statistics.RecordInHistogram(stats.HistogramDBWrite, t.since(start))
		shard.statistics.RecordInHistogram(stats.HistogramBytesPerWrite, int64(size))
		shard.statistics.RecordTick(stats.TickerNumberKeysWritten, 1)
		t.engine.recordIncoming(int64(size))
		return nil
	})
}

// Get reads a value. It returns ErrKeyNotFound if there is none.
func (t *Table) Get(ctx context.Context, key []byte) ([]byte, error) {
	var result []byte
	err := t.withShard(t.ShardFor(key), func(shard *Shard) error {
		var err error
		result, err = shard.get(t, key)
		if err == nil {
			shard.statistics.RecordInHistogram(stats.HistogramBytesPerRead, int64(len(result)))
		}
		return err
	})
	return result, err
}

// MultiGet reads the values of all keys. Missing keys yield nil values.
func (t *Table) MultiGet(ctx context.Context, keys [][]byte) ([][]byte, error) {
	result := make([][]byte, len(keys))
	byShard := map[int][]int{}
	for i, key := range keys {
		shard := t.ShardFor(key)
		byShard[shard] = append(byShard[shard], i)
	}
	for index, positions := range byShard {
		err := t.withShard(index, func(shard *Shard) error {
			start := t.engine.opts.Clock.Now()
			var bytes int64
			for _, pos := range positions {
				value, err := shard.get(t, keys[pos])
				if serrors.IsNotFound(err) {
					continue
				}
				if err != nil {
					return err
				}
				result[pos] = value
				bytes += int64(len(value))
			}
			shard.statistics.RecordInHistogram(stats.HistogramDBMultiGet, t.since(start))
			shard.statistics.RecordInHistogram(stats.HistogramBytesPerMultiGet, bytes)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Delete removes a key.
func (t *Table) Delete(ctx context.Context, key []byte) error {
	return t.withShard(t.ShardFor(key), func(shard *Shard) error {
		start := t.engine.opts.Clock.Now()
		if err := shard.db.Delete(key, t.writeOptions()); err != nil {
			return serrors.Classify(pkgerrors.Wrapf(err, "deleting from table %s", t.identity), serrors.ClassEngineIO)
		}
		shard.statistics.RecordInHistogram(stats.HistogramDBWrite, t.since(start))
		return nil
	})
}

// NewIterator returns an iterator over the keys of a shard in [lower, upper).
// Nil bounds are unbounded. The iterator must be closed.
func (t *Table) NewIterator(shardIndex int, lower, upper []byte) (*Iterator, error) {
	var result *Iterator
	err := t.withShard(shardIndex, func(shard *Shard) error {
		it, err := shard.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
		if err != nil {
			return serrors.Classify(pkgerrors.Wrapf(err, "creating iterator on table %s", t.identity), serrors.ClassEngineIO)
		}
		result = &Iterator{table: t, shard: shard, it: it}
		return nil
	})
	if err != nil {
		return nil, err
	}
	t.instrumentsOrNoop().IterNew.Inc()
	return result, nil
}

// Ingest adds the given SSTable files to a shard.
// At most Options.MaxConcurrentIngests ingestions run concurrently per
// table. The time spent waiting for a slot is recorded as ingest wait
// time.
func (t *Table) Ingest(ctx context.Context, shardIndex int, paths []string) error {
	instruments := t.instrumentsOrNoop()

	waitStart := t.engine.opts.Clock.Now()
	if err := t.ingestSem.Acquire(ctx, 1); err != nil {
		return serrors.Recoverable(pkgerrors.Wrapf(err, "waiting to ingest into table %s", t.identity))
	}
	defer t.ingestSem.Release(1)
	instruments.IngestWaitTime.Observe(float64(t.since(waitStart)))

	return t.withShard(shardIndex, func(shard *Shard) error {
		var size int64
		for _, path := range paths {
			info, err := t.engine.opts.FS.Stat(path)
			if err != nil {
				return serrors.Classify(pkgerrors.Wrapf(err, "ingesting into table %s", t.identity), serrors.ClassEngineIO)
			}
			size += info.Size()
		}

		start := t.engine.opts.Clock.Now()
		if err := shard.db.Ingest(paths); err != nil {
			return serrors.Classify(pkgerrors.Wrapf(err, "ingesting into table %s", t.identity), serrors.ClassEngineIO)
		}
		instruments.IngestTime.Observe(float64(t.since(start)))
		t.engine.recordIncoming(size)
		return nil
	})
}

// Flush flushes the memtables of all shards.
func (t *Table) Flush(ctx context.Context) error {
	return t.parallel(ctx, func(shard *Shard) error {
		return shard.db.Flush()
	})
}

// Compact compacts the whole key range of all shards.
func (t *Table) Compact(ctx context.Context) error {
	return t.parallel(ctx, func(shard *Shard) error {
		start, end, err := shard.bounds()
		if err != nil || start == nil {
			return err
		}
		return shard.db.Compact(start, end, true)
	})
}

func (t *Table) parallel(ctx context.Context, fn func(*Shard) error) error {
	t.lock.RLock()
	defer t.lock.RUnlock()

	if t.closed {
		return serrors.Recoverable(ErrClosed)
	}
	g, _ := errgroup.WithContext(ctx)
	for _, shard := range t.shards {
		shard := shard
		g.Go(func() error {
			if err := fn(shard); err != nil {
				return serrors.Classify(pkgerrors.Wrapf(err, "shard %d of table %s", shard.index, t.identity), serrors.ClassEngineIO)
			}
			return nil
		})
	}
	return g.Wait()
}

func (t *Table) withShard(index int, fn func(*Shard) error) error {
	t.lock.RLock()
	defer t.lock.RUnlock()

	if t.closed {
		return serrors.Recoverable(ErrClosed)
	}
	if index < 0 || index >= len(t.shards) {
		return serrors.NonRecoverable(pkgerrors.Errorf("table %s has no shard %d", t.identity, index))
	}
	return fn(t.shards[index])
}

func (t *Table) forEachShard(fn func(*Shard) error) error {
	t.lock.RLock()
	defer t.lock.RUnlock()

	if t.closed {
		return serrors.Recoverable(ErrClosed)
	}
	for _, shard := range t.shards {
		if err := fn(shard); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) writeOptions() *pebble.WriteOptions {
	if t.engine.opts.SyncWrites {
		return pebble.Sync
	}
	return pebble.NoSync
}

// since returns the microseconds elapsed since start.
func (t *Table) since(start time.Time) int64 {
	return micros(t.engine.opts.Clock.Since(start))
}

func (t *Table) close() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	return t.closeShards()
}

func (t *Table) closeShards() error {
	var result error
	for _, shard := range t.shards {
		if shard == nil {
			continue
		}
		if err := shard.close(); err != nil && result == nil {
			result = pkgerrors.Wrapf(err, "closing shard %d of table %s", shard.index, t.identity)
		}
	}
	return result
}
