package engine

import (
	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	serrors "github.com/SAP/tablemetrics-core/pkg/errors"
)

// NumSSTablesAtLevel returns the number of SSTables at the given level
// summed over all shards of the table.
func (e *Engine) NumSSTablesAtLevel(id uuid.UUID, level int) (int, error) {
	if level < 0 || level >= MaxLevels {
		return 0, serrors.NonRecoverable(serrors.Classify(
			pkgerrors.Wrapf(ErrLevelOutOfRange, "level %d not in [0, %d)", level, MaxLevels),
			serrors.ClassPropertyQuery,
		))
	}
	var result int64
	err := e.aggregateMetrics(id, func(m *pebble.Metrics) {
		result += m.Levels[level].NumFiles
	})
	return int(result), err
}

// PendingCompactionBytes returns the estimated number of bytes compactions
// need to rewrite, summed over all shards of the table.
func (e *Engine) PendingCompactionBytes(id uuid.UUID) (uint64, error) {
	var result uint64
	err := e.aggregateMetrics(id, func(m *pebble.Metrics) {
		result += m.Compact.EstimatedDebt
	})
	return result, err
}

// EstimatedLiveDataSize returns the total size of all SSTables of the
// table in bytes.
func (e *Engine) EstimatedLiveDataSize(id uuid.UUID) (uint64, error) {
	var result int64
	err := e.aggregateMetrics(id, func(m *pebble.Metrics) {
		for level := 0; level < MaxLevels; level++ {
			result += m.Levels[level].Size
		}
	})
	return uint64(result), err
}

func (e *Engine) aggregateMetrics(id uuid.UUID, fn func(*pebble.Metrics)) error {
	table, err := e.Table(id)
	if err != nil {
		return err
	}
	return table.forEachShard(func(shard *Shard) error {
		fn(shard.db.Metrics())
		return nil
	})
}
