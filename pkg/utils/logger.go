/*
Package utils contains helpers shared by the engine, the metrics facade and
the daemon.
*/
package utils

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/klog/v2"
)

// Keys of structured logging values.
const (
	LogKeyKeyspace = "keyspace"
	LogKeyTable    = "table"
	LogKeyTableID  = "tableID"
)

// NewLoggingContextWithValues returns a new logger Context with provided key-value pairs via kvs.
// If non-empty `loggerName` is provided then name of `logger` will be appended with 'loggerName'.
//
// If logger is nil, the logger of ctx is extended. The logging context
// (key-value pairs) of the logger is preserved. If the logger has name
// "foo" and loggerName is "bar" then the extended logger name will be
// "foo/bar".
//
// kvs is a slice with the elements as key-value pairs for structured logging,
// e.g. ["key1", "value1", "key2", "value2"].
func NewLoggingContextWithValues(ctx context.Context, logger *logr.Logger, loggerName string, kvs ...interface{}) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if logger == nil {
		l := klog.FromContext(ctx)
		logger = &l
	}

	if loggerName != "" {
		*logger = klog.LoggerWithName(*logger, loggerName)
	}

	if kvs != nil {
		*logger = klog.LoggerWithValues(*logger, kvs...)
	}

	return klog.NewContext(ctx, *logger)
}

// NewTableLoggingContext returns a new Context whose logger carries the
// identity of a table.
func NewTableLoggingContext(ctx context.Context, loggerName string, keyspace, table string, id fmt.Stringer) context.Context {
	return NewLoggingContextWithValues(ctx, nil, loggerName,
		LogKeyKeyspace, keyspace,
		LogKeyTable, table,
		LogKeyTableID, id.String(),
	)
}
