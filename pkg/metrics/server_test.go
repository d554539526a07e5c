package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func Test_Handler(t *testing.T) {
	// no parallel: patching global state

	// SETUP
	reg := prometheus.NewPedanticRegistry()
	t.Cleanup(Testing{}.PatchRegistry(reg))
	examinee := NewRegistry(Registerer())
	examinee.Counter(testFactory.CreateMetricName("RocksIterSeek")).Add(5)

	// EXERCISE
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// VERIFY
	assert.Equal(t, rec.Code, http.StatusOK)
	body, err := io.ReadAll(rec.Body)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(body),
		`tablemetrics_storage_engine_rocks_iter_seek{keyspace="ks1",scope="t1"} 5`))
}

func Test_Testing_PatchRegistry(t *testing.T) {
	// no parallel: patching global state

	// SETUP
	orig := registry
	replacement := prometheus.NewPedanticRegistry()

	// EXERCISE
	revert := Testing{}.PatchRegistry(replacement)

	// VERIFY
	assert.Equal(t, Registerer(), prometheus.Registerer(replacement))
	revert()
	assert.Equal(t, registry, orig)
}
