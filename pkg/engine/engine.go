/*
Package engine implements a storage engine that keeps each table in a fixed
number of shards. Every shard is a separate pebble database with its own
statistics object.

The engine answers property queries aggregated over all shards of a table and
reports the bytes it reads and writes to a throughput recorder.
*/
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	klog "k8s.io/klog/v2"

	serrors "github.com/SAP/tablemetrics-core/pkg/errors"
	"github.com/SAP/tablemetrics-core/pkg/engine/stats"
)

// MaxLevels is the number of LSM levels of a shard.
const MaxLevels = 7

var (
	// ErrTableNotFound is returned if a table identity is unknown.
	ErrTableNotFound = serrors.NotFound("table")

	// ErrTableExists is returned when opening a table that is already open.
	ErrTableExists = fmt.Errorf("table already open")

	// ErrLevelOutOfRange is returned for level queries outside [0, MaxLevels).
	ErrLevelOutOfRange = fmt.Errorf("level out of range")

	// ErrClosed is returned by operations on a closed engine or table.
	ErrClosed = fmt.Errorf("engine closed")

	// ErrKeyNotFound is returned by reads of a missing key.
	ErrKeyNotFound = serrors.NotFound("key")
)

// ThroughputRecorder receives the number of bytes read and written.
type ThroughputRecorder interface {
	RecordOutgoing(bytes int64)
	RecordIncoming(bytes int64)
}

// Options configure an Engine.
type Options struct {
	// Dir is the root directory. Shard data is kept in
	// `<Dir>/<keyspace>/<table>-<id>/<shard>`.
	Dir string

	// FS is the file system to use. Defaults to vfs.Default.
	FS vfs.FS

	// SyncWrites makes every write sync the WAL.
	SyncWrites bool

	// MaxConcurrentIngests limits the number of concurrent ingestions per
	// table. Defaults to 1.
	MaxConcurrentIngests int64

	// Throughput receives read and written bytes. Optional.
	Throughput ThroughputRecorder

	// Clock is used to measure latencies. Defaults to the wall clock.
	Clock clock.Clock
}

// TableIdentity identifies a table.
type TableIdentity struct {
	ID       uuid.UUID
	Keyspace string
	Name     string
}

func (i TableIdentity) String() string {
	return fmt.Sprintf("%s.%s(%s)", i.Keyspace, i.Name, i.ID)
}

// Engine is a set of sharded tables. It is safe for concurrent use.
type Engine struct {
	opts Options

	lock   sync.RWMutex
	tables map[uuid.UUID]*Table
	closed bool
}

// New returns a new engine without any tables.
func New(opts Options) *Engine {
	if opts.FS == nil {
		opts.FS = vfs.Default
	}
	if opts.MaxConcurrentIngests <= 0 {
		opts.MaxConcurrentIngests = 1
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &Engine{
		opts:   opts,
		tables: map[uuid.UUID]*Table{},
	}
}

// OpenTable opens the given number of shards for a table.
func (e *Engine) OpenTable(ctx context.Context, identity TableIdentity, shards int) (*Table, error) {
	if shards < 1 {
		return nil, serrors.NonRecoverable(fmt.Errorf("table %s: invalid number of shards: %d", identity, shards))
	}
	if identity.Keyspace == "" || identity.Name == "" {
		return nil, serrors.NonRecoverable(fmt.Errorf("table %s: keyspace and name must not be empty", identity))
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	if e.closed {
		return nil, serrors.Recoverable(ErrClosed)
	}
	if _, exists := e.tables[identity.ID]; exists {
		return nil, serrors.NonRecoverable(pkgerrors.Wrapf(ErrTableExists, "table %s", identity))
	}

	table := newTable(e, identity, shards)
	g, _ := errgroup.WithContext(ctx)
	for i := range table.shards {
		i := i
		g.Go(func() error {
			shard, err := e.openShard(identity, i)
			if err != nil {
				return err
			}
			table.shards[i] = shard
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		table.closeShards()
		return nil, serrors.Classify(err, serrors.ClassEngineIO)
	}

	e.tables[identity.ID] = table
	klog.FromContext(ctx).V(3).Info("Opened table", "table", identity.String(), "shards", shards)
	return table, nil
}

func (e *Engine) openShard(identity TableIdentity, index int) (*Shard, error) {
	dir := e.shardDir(identity, index)
	statistics := stats.NewStatistics()
	db, err := pebble.Open(dir, &pebble.Options{
		FS:            e.opts.FS,
		EventListener: newEventListener(statistics, e.opts.Clock),
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "opening shard %d of table %s in %q", index, identity, dir)
	}
	return &Shard{
		index:      index,
		db:         db,
		statistics: statistics,
	}, nil
}

func (e *Engine) shardDir(identity TableIdentity, index int) string {
	return filepath.Join(
		e.opts.Dir,
		identity.Keyspace,
		identity.Name+"-"+identity.ID.String(),
		strconv.Itoa(index),
	)
}

// Table returns the open table with the given id.
func (e *Engine) Table(id uuid.UUID) (*Table, error) {
	e.lock.RLock()
	defer e.lock.RUnlock()

	if e.closed {
		return nil, serrors.Recoverable(ErrClosed)
	}
	table, ok := e.tables[id]
	if !ok {
		return nil, serrors.Recoverable(serrors.Classify(serrors.Errorf(ErrTableNotFound, "resolving table %s", id), serrors.ClassTableLookup))
	}
	return table, nil
}

// Resolve returns the identity of the open table with the given id.
func (e *Engine) Resolve(id uuid.UUID) (TableIdentity, error) {
	table, err := e.Table(id)
	if err != nil {
		return TableIdentity{}, err
	}
	return table.identity, nil
}

// Tables returns the identities of all open tables.
func (e *Engine) Tables() []TableIdentity {
	e.lock.RLock()
	defer e.lock.RUnlock()

	result := make([]TableIdentity, 0, len(e.tables))
	for _, table := range e.tables {
		result = append(result, table.identity)
	}
	return result
}

// DropTable closes the table with the given id and removes its data.
func (e *Engine) DropTable(id uuid.UUID) error {
	e.lock.Lock()
	table, ok := e.tables[id]
	if ok {
		delete(e.tables, id)
	}
	e.lock.Unlock()

	if !ok {
		return serrors.Recoverable(serrors.Errorf(ErrTableNotFound, "dropping table %s", id))
	}
	if err := table.close(); err != nil {
		return err
	}
	dir := filepath.Dir(e.shardDir(table.identity, 0))
	if err := e.opts.FS.RemoveAll(dir); err != nil {
		return serrors.Classify(pkgerrors.Wrapf(err, "removing data of table %s", table.identity), serrors.ClassEngineIO)
	}
	return nil
}

// Close closes all tables. Further operations fail with ErrClosed.
func (e *Engine) Close() error {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	var result error
	for id, table := range e.tables {
		if err := table.close(); err != nil && result == nil {
			result = err
		}
		delete(e.tables, id)
	}
	return result
}

func (e *Engine) recordOutgoing(bytes int) {
	if e.opts.Throughput != nil && bytes > 0 {
		e.opts.Throughput.RecordOutgoing(int64(bytes))
	}
}

func (e *Engine) recordIncoming(bytes int64) {
	if e.opts.Throughput != nil && bytes > 0 {
		e.opts.Throughput.RecordIncoming(bytes)
	}
}
