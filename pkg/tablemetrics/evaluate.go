package tablemetrics

import (
	serrors "github.com/SAP/tablemetrics-core/pkg/errors"
	"github.com/SAP/tablemetrics-core/pkg/metrics"
	klog "k8s.io/klog/v2"
)

const panicClass = "panic"

// OrDefault returns a gauge function evaluating fn.
// If fn returns an error or panics, a warning is logged and the gauge
// reads 0. description names the gauge in log messages.
func OrDefault(description string, fn func() (float64, error)) func() float64 {
	location := metrics.CodeLocation(1)
	return func() (result float64) {
		defer func() {
			if r := recover(); r != nil {
				klog.Warningf("Evaluating %s panicked, reporting 0: %v", description, r)
				metrics.EvaluationFailures.Observe(location, panicClass)
				result = 0
			}
		}()

		value, err := fn()
		if err != nil {
			klog.Warningf("Evaluating %s failed, reporting 0 (recoverable: %t): %v", description, serrors.IsRecoverable(err), err)
			metrics.EvaluationFailures.Observe(location, errorClass(err))
			return 0
		}
		return value
	}
}

func errorClass(err error) string {
	if class := serrors.GetClass(err); class != serrors.ClassUndefined {
		return string(class)
	}
	return "undefined"
}
