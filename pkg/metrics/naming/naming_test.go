package naming

import (
	"fmt"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func Test_Factory_CreateMetricName(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := NewFactory("ks1", "t1")

	// EXERCISE
	result := examinee.CreateMetricName("IngestTime")

	// VERIFY
	assert.DeepEqual(t, result, MetricName{
		Group:     GroupName,
		Type:      TypeName,
		Keyspace:  "ks1",
		Scope:     "ks1.t1",
		Name:      "IngestTime",
		MBeanName: "tablemetrics:type=StorageEngine,keyspace=ks1,scope=t1,name=IngestTime",
	})
	assert.Equal(t, result.String(), result.MBeanName)
	assert.Equal(t, result.TableScope(), "t1")
}

func Test_Factory_CreateShardedMetricName(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := NewFactory("ks1", "t1")

	// EXERCISE
	result := examinee.CreateShardedMetricName("GetMicros", 3)

	// VERIFY
	assert.DeepEqual(t, result, MetricName{
		Group:     GroupName,
		Type:      TypeName,
		Keyspace:  "ks1",
		Scope:     "ks1.t1_3",
		Name:      "GetMicros",
		MBeanName: "tablemetrics:type=StorageEngine,keyspace=ks1,scope=t1_3,name=GetMicros",
	})
	assert.Equal(t, result.TableScope(), "t1_3")
}

func Test_Factory_isIdempotent(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		keyspace, table, label string
	}{
		{"ks1", "t1", "GetMicros"},
		{"system", "peers", "SSTableCountPerLevel.0"},
		{"a", "b_2", "x"},
		{AllScope, AllScope, "RocksdbOutgoingThroughput"},
	} {
		tc := tc
		t.Run(tc.keyspace+"."+tc.table+"/"+tc.label, func(t *testing.T) {
			t.Parallel()

			// EXERCISE
			first := NewFactory(tc.keyspace, tc.table).CreateMetricName(tc.label)
			second := NewFactory(tc.keyspace, tc.table).CreateMetricName(tc.label)
			firstSharded := NewFactory(tc.keyspace, tc.table).CreateShardedMetricName(tc.label, 7)
			secondSharded := NewFactory(tc.keyspace, tc.table).CreateShardedMetricName(tc.label, 7)

			// VERIFY
			assert.DeepEqual(t, first, second)
			assert.DeepEqual(t, firstSharded, secondSharded)
		})
	}
}

func Test_Factory_shardedScopeDiffers(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := NewFactory("ks1", "t1")
	plain := examinee.CreateMetricName("GetMicros")

	for _, shard := range []int{0, 1, 9, 10, 123} {
		// EXERCISE
		result := examinee.CreateShardedMetricName("GetMicros", shard)

		// VERIFY
		assert.Assert(t, strings.HasSuffix(result.Scope, fmt.Sprintf("_%d", shard)))
		assert.Assert(t, result.Scope != plain.Scope)
		assert.Equal(t, result.Name, plain.Name)
		assert.Assert(t, result.MBeanName != plain.MBeanName)
	}
}

func Test_Factory_distinctShardsYieldDistinctNames(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := NewFactory("ks1", "t1")
	seen := map[string]bool{}

	// EXERCISE
	for shard := 0; shard < 32; shard++ {
		name := examinee.CreateShardedMetricName("GetMicros", shard)
		seen[name.MBeanName] = true
	}

	// VERIFY
	assert.Equal(t, len(seen), 32)
}

func Test_DefaultFactory(t *testing.T) {
	t.Parallel()

	// EXERCISE
	result := DefaultFactory.CreateMetricName("RocksdbIncomingThroughput")

	// VERIFY
	assert.Equal(t, result.Scope, "all.all")
	assert.Equal(t, result.Keyspace, AllScope)
	assert.Equal(t, result.MBeanName, "tablemetrics:type=StorageEngine,keyspace=all,scope=all,name=RocksdbIncomingThroughput")
}

func Test_ValidateLabel(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		label       string
		expectError bool
	}{
		{"GetMicros", false},
		{"SSTableCountPerLevel.6", false},
		{"Rocks_Iter", false},
		{"", true},
		{"0abc", true},
		{"a,b", true},
		{"a=b", true},
		{"a:b", true},
		{"a b", true},
	} {
		tc := tc
		t.Run(tc.label, func(t *testing.T) {
			t.Parallel()

			// EXERCISE
			resultErr := ValidateLabel(tc.label)

			// VERIFY
			if tc.expectError {
				assert.Assert(t, resultErr != nil)
			} else {
				assert.NilError(t, resultErr)
			}
		})
	}
}

func Test_Factory_panicsOnContractViolation(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name     string
		exercise func()
		expected string
	}{
		{
			name:     "empty_label",
			exercise: func() { NewFactory("ks1", "t1").CreateMetricName("") },
			expected: "invalid metric label",
		},
		{
			name:     "negative_shard",
			exercise: func() { NewFactory("ks1", "t1").CreateShardedMetricName("GetMicros", -1) },
			expected: "must not be negative",
		},
		{
			name:     "empty_keyspace",
			exercise: func() { NewFactory("", "t1") },
			expected: "invalid keyspace name",
		},
		{
			name:     "dotted_table",
			exercise: func() { NewFactory("ks1", "t.1") },
			expected: "invalid table name",
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// EXERCISE
			var recovered interface{}
			func() {
				defer func() { recovered = recover() }()
				tc.exercise()
			}()

			// VERIFY
			assert.Assert(t, recovered != nil)
			assert.Assert(t, is.Contains(fmt.Sprint(recovered), tc.expected))
		})
	}
}
