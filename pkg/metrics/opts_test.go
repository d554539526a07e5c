package metrics

import (
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"gotest.tools/v3/assert"
)

func Test_NewOpts(t *testing.T) {
	t.Parallel()

	// EXERCISE
	result := NewOpts(testFactory.CreateShardedMetricName("GetMicros", 1))

	// VERIFY
	assert.Equal(t, result.FQName(), "tablemetrics_storage_engine_get_micros")
	assert.DeepEqual(t, result.ConstLabels, prometheus.Labels{
		LabelKeyspace: "ks1",
		LabelScope:    "t1_1",
	})
}

func Test_NewOpts_levelLabel(t *testing.T) {
	t.Parallel()

	// EXERCISE
	result := NewOpts(testFactory.CreateMetricName("SSTableCountPerLevel.3"))

	// VERIFY
	assert.Equal(t, result.FQName(), "tablemetrics_storage_engine_ss_table_count_per_level")
	assert.Equal(t, result.Help, "Storage engine metric SSTableCountPerLevel.")
	assert.DeepEqual(t, result.ConstLabels, prometheus.Labels{
		LabelKeyspace: "ks1",
		LabelScope:    "t1",
		LabelLevel:    "3",
	})
}

func Test_Registry_levelsShareOneFamily(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee, promRegistry := Testing{}.NewRegistry()
	const levels = 7

	// EXERCISE
	for level := 0; level < levels; level++ {
		value := float64(level + 1)
		name := testFactory.CreateMetricName("SSTableCountPerLevel." + strconv.Itoa(level))
		examinee.Gauge(name, func() float64 { return value })
	}

	// VERIFY
	assert.Equal(t, examinee.Len(), levels)
	families, err := promRegistry.Gather()
	assert.NilError(t, err)
	assert.Equal(t, len(families), 1)
	assert.Equal(t, families[0].GetName(), "tablemetrics_storage_engine_ss_table_count_per_level")
	byLevel := map[string]float64{}
	for _, metric := range families[0].GetMetric() {
		for _, pair := range metric.GetLabel() {
			if pair.GetName() == LabelLevel {
				byLevel[pair.GetValue()] = metric.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, len(byLevel), levels)
	total := 0.0
	for _, value := range byLevel {
		total += value
	}
	assert.Equal(t, total, float64(28))
}
