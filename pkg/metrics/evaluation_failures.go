package metrics

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/SAP/tablemetrics-core/pkg/metrics/naming"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Subsystem is the Prometheus subsystem of metrics about the metrics
	// facade itself.
	Subsystem = "facade"

	unknownLocation = "<Unknown>"
)

var (
	// EvaluationFailures counts gauge evaluations that failed and were
	// reported as zero.
	EvaluationFailures EvaluationFailuresMetric = &evaluationFailuresMetric{}
)

func init() {
	EvaluationFailures.(*evaluationFailuresMetric).init()
}

// EvaluationFailuresMetric counts failed gauge evaluations.
type EvaluationFailuresMetric interface {
	// Observe counts a single failed evaluation.
	// location is the code location that created the gauge.
	// class is the class of the error, or "panic" if the evaluation
	// panicked.
	Observe(location string, class string)
}

type evaluationFailuresMetric struct {
	initOnlyOnce sync.Once
	countMetric  *prometheus.CounterVec
}

func (m *evaluationFailuresMetric) init() {
	m.initOnlyOnce.Do(func() {
		m.countMetric = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: naming.GroupName,
				Subsystem: Subsystem,
				Name:      "gauge_evaluation_failures_total",
				Help:      "Number of gauge evaluations that failed and were reported as zero.",
			},
			[]string{
				"location",
				"class",
			},
		)
		Registerer().MustRegister(m.countMetric)
	})
}

func (m *evaluationFailuresMetric) Observe(location string, class string) {
	m.countMetric.WithLabelValues(location, class).Inc()
}

// CodeLocation returns the name of the function `skip` frames above the
// caller. Gauges use it at creation time to name the location reported
// with their evaluation failures.
func CodeLocation(skip int) string {
	pc := make([]uintptr, 1)
	// skip runtime.Callers and CodeLocation
	if runtime.Callers(skip+2, pc) == 0 {
		panic(fmt.Errorf("cannot identify caller when skipping %d frames", skip))
	}
	frame, _ := runtime.CallersFrames(pc).Next()
	if frame.Function == "" {
		return unknownLocation
	}
	return frame.Function
}
