package engine

import (
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"
	pkgerrors "github.com/pkg/errors"

	serrors "github.com/SAP/tablemetrics-core/pkg/errors"
	"github.com/SAP/tablemetrics-core/pkg/engine/stats"
)

// Shard is a single pebble database backing a part of a table.
type Shard struct {
	index      int
	db         *pebble.DB
	statistics *stats.Statistics

	// lock guards closed. The database is read with a read lock held.
	lock   sync.RWMutex
	closed bool
}

// Index returns the position of the shard within its table.
func (s *Shard) Index() int {
	return s.index
}

// Statistics returns the statistics object of the shard.
func (s *Shard) Statistics() *stats.Statistics {
	return s.statistics
}

// TickerCount returns the value of a counter of the shard.
// Block cache counters are read from the database while the shard is
// open. Their final values are kept when the shard is closed.
func (s *Shard) TickerCount(t stats.TickerType) uint64 {
	switch t {
	case stats.TickerBlockCacheHit, stats.TickerBlockCacheMiss:
		s.lock.RLock()
		defer s.lock.RUnlock()
		if s.closed {
			return s.statistics.TickerCount(t)
		}
		hits, misses := s.blockCacheCounts()
		if t == stats.TickerBlockCacheHit {
			return hits
		}
		return misses
	default:
		return s.statistics.TickerCount(t)
	}
}

func (s *Shard) blockCacheCounts() (hits, misses uint64) {
	cache := s.db.Metrics().BlockCache
	return uint64(cache.Hits), uint64(cache.Misses)
}

// HistogramData returns the current distribution of a histogram of the
// shard.
func (s *Shard) HistogramData(h stats.HistogramType) stats.HistogramData {
	return s.statistics.HistogramData(h)
}

func (s *Shard) get(t *Table, key []byte) ([]byte, error) {
	start := t.engine.opts.Clock.Now()
	value, closer, err := s.db.Get(key)
	s.statistics.RecordInHistogram(stats.HistogramDBGet, t.since(start))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, serrors.Errorf(ErrKeyNotFound, "reading from table %s", t.identity)
	}
	if err != nil {
		return nil, serrors.Classify(pkgerrors.Wrapf(err, "reading from table %s", t.identity), serrors.ClassEngineIO)
	}
	defer closer.Close()

	result := make([]byte, len(value))
	copy(result, value)
	t.engine.recordOutgoing(len(result))
	return result, nil
}

// bounds returns the smallest key and a key greater than the largest key
// of the shard. Both are nil if the shard is empty.
func (s *Shard) bounds() ([]byte, []byte, error) {
	it, err := s.db.NewIter(nil)
	if err != nil {
		return nil, nil, err
	}
	defer it.Close()

	if !it.First() {
		return nil, nil, it.Error()
	}
	start := append([]byte(nil), it.Key()...)
	if !it.Last() {
		return nil, nil, it.Error()
	}
	end := append(append([]byte(nil), it.Key()...), 0)
	return start, end, nil
}

func (s *Shard) close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return nil
	}
	hits, misses := s.blockCacheCounts()
	s.statistics.RecordTick(stats.TickerBlockCacheHit, hits)
	s.statistics.RecordTick(stats.TickerBlockCacheMiss, misses)
	s.closed = true
	return s.db.Close()
}
