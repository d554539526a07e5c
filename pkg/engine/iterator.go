package engine

import (
	"github.com/cockroachdb/pebble"

	"github.com/SAP/tablemetrics-core/pkg/engine/stats"
)

// Iterator iterates over the keys of a single shard.
// It is not safe for concurrent use.
type Iterator struct {
	table *Table
	shard *Shard
	it    *pebble.Iterator
}

// SeekGE moves to the first key greater than or equal to key.
func (i *Iterator) SeekGE(key []byte) bool {
	start := i.table.engine.opts.Clock.Now()
	valid := i.it.SeekGE(key)
	i.shard.statistics.RecordInHistogram(stats.HistogramDBSeek, i.table.since(start))
	i.table.instrumentsOrNoop().IterSeek.Inc()
	return valid
}

// SeekLT moves to the last key less than key.
func (i *Iterator) SeekLT(key []byte) bool {
	start := i.table.engine.opts.Clock.Now()
	valid := i.it.SeekLT(key)
	i.shard.statistics.RecordInHistogram(stats.HistogramDBSeek, i.table.since(start))
	i.table.instrumentsOrNoop().IterSeek.Inc()
	return valid
}

// First moves to the first key.
func (i *Iterator) First() bool {
	return i.move(i.it.First)
}

// Last moves to the last key.
func (i *Iterator) Last() bool {
	return i.move(i.it.Last)
}

// Next moves to the next key.
func (i *Iterator) Next() bool {
	return i.move(i.it.Next)
}

// Prev moves to the previous key.
func (i *Iterator) Prev() bool {
	return i.move(i.it.Prev)
}

func (i *Iterator) move(fn func() bool) bool {
	i.table.instrumentsOrNoop().IterMove.Inc()
	return fn()
}

// Valid returns true if the iterator is positioned at a key.
func (i *Iterator) Valid() bool {
	return i.it.Valid()
}

// Key returns the current key. It is valid until the next move.
func (i *Iterator) Key() []byte {
	return i.it.Key()
}

// Value returns the current value. It is valid until the next move.
func (i *Iterator) Value() []byte {
	value := i.it.Value()
	i.table.engine.recordOutgoing(len(value))
	return value
}

// Error returns the error the iteration stopped with, if any.
func (i *Iterator) Error() error {
	return i.it.Error()
}

// Close releases the iterator.
func (i *Iterator) Close() error {
	return i.it.Close()
}
