package tablemetrics

import (
	"context"
	"fmt"
	"testing"

	"github.com/SAP/tablemetrics-core/pkg/engine"
	"github.com/SAP/tablemetrics-core/pkg/metrics"
	"github.com/SAP/tablemetrics-core/pkg/throughput"
	"github.com/benbjohnson/clock"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gotest.tools/v3/assert"
)

func Test_Provider_withEngine(t *testing.T) {
	t.Parallel()

	// SETUP
	ctx := context.Background()
	manager := throughput.New(clock.NewMock(), throughput.DefaultTickInterval)
	e := engine.New(engine.Options{
		Dir:        "/data",
		FS:         vfs.NewMem(),
		Throughput: manager,
		Clock:      clock.NewMock(),
	})
	defer e.Close()
	identity := engine.TableIdentity{ID: uuid.New(), Keyspace: "ks1", Name: "t1"}
	table, err := e.OpenTable(ctx, identity, 2)
	assert.NilError(t, err)

	registry, promRegistry := metrics.Testing{}.NewRegistry()
	examinee := NewProvider(registry, e, manager)

	// EXERCISE
	result, err := examinee.ForTable(ctx, identity.ID, SourcesOf(table.StatisticsSources()))
	assert.NilError(t, err)
	table.Instrument(result.Instruments())

	for i := 0; i < 50; i++ {
		assert.NilError(t, table.Put(ctx, []byte(fmt.Sprintf("key%02d", i)), []byte("value")))
	}
	assert.NilError(t, table.Flush(ctx))
	_, err = table.Get(ctx, []byte("key01"))
	assert.NilError(t, err)
	it, err := table.NewIterator(0, nil, nil)
	assert.NilError(t, err)
	for valid := it.SeekGE([]byte("key")); valid; valid = it.Next() {
	}
	assert.NilError(t, it.Close())

	// VERIFY
	assert.Equal(t, len(result.ShardedNames()), 86)
	assert.Equal(t, metrics.Testing{}.Value(result.IterNew.(prometheus.Collector)), float64(1))
	assert.Equal(t, metrics.Testing{}.Value(result.IterSeek.(prometheus.Collector)), float64(1))
	assert.Assert(t, result.LiveDataSize.Value() > 0)
	files := 0.0
	for _, gauge := range result.SSTablesPerLevel {
		files += gauge.Value()
	}
	assert.Assert(t, files >= 2)

	families, err := promRegistry.Gather()
	assert.NilError(t, err)
	written := 0.0
	for _, scope := range []string{"t1_0", "t1_1"} {
		written += findMetric(t, families, "tablemetrics_storage_engine_number_keys_written", scope).GetCounter().GetValue()
	}
	assert.Equal(t, written, float64(50))
	gets := uint64(0)
	for _, scope := range []string{"t1_0", "t1_1"} {
		gets += findMetric(t, families, "tablemetrics_storage_engine_get_micros", scope).GetSummary().GetSampleCount()
	}
	assert.Equal(t, gets, uint64(1))

	// gauges of a dropped table read as zero
	assert.NilError(t, e.DropTable(identity.ID))
	assert.Equal(t, result.LiveDataSize.Value(), float64(0))
	_, err = promRegistry.Gather()
	assert.NilError(t, err)
}
