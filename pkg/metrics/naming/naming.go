/*
Package naming builds the identities under which storage engine metrics are
registered.

An identity consists of a group, a type, a scope and a name. The scope is
`<keyspace>.<table>` for table metrics and `<keyspace>.<table>_<shard>` for
metrics of a single engine shard backing the table. Identities are plain values
derived from their inputs only, i.e. building the same identity twice yields
equal values.
*/
package naming

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// GroupName is the group of all metric names built by this package.
	GroupName = "tablemetrics"

	// TypeName identifies the storage engine metrics family.
	TypeName = "StorageEngine"

	// AllScope is used as keyspace and table name of the aggregate
	// scope that is not tied to a particular table.
	AllScope = "all"

	shardSeparator = "_"
)

// DefaultFactory builds names for the "all tables" aggregate scope.
// It is used for process-wide metrics only.
var DefaultFactory = &Factory{
	keyspace: AllScope,
	table:    AllScope,
}

// MetricName is the identity of a metric in the registry.
type MetricName struct {
	Group    string
	Type     string
	Keyspace string
	// Scope is `<keyspace>.<table>` or `<keyspace>.<table>_<shard>`.
	Scope string
	Name  string
	// MBeanName is the canonical flattened form of the identity:
	// `<group>:type=<type>,keyspace=<keyspace>,scope=<table>,name=<name>`
	MBeanName string
}

// String returns the flattened form of the name.
func (n MetricName) String() string {
	return n.MBeanName
}

// TableScope returns the table part of the scope including the shard
// suffix, if any.
func (n MetricName) TableScope() string {
	return strings.TrimPrefix(n.Scope, n.Keyspace+".")
}

// Factory builds metric names for a single table.
type Factory struct {
	keyspace string
	table    string
}

// NewFactory returns a factory for the given table.
// It panics if keyspace or table are not valid scope components.
func NewFactory(keyspace, table string) *Factory {
	for _, part := range []struct{ kind, value string }{
		{"keyspace", keyspace},
		{"table", table},
	} {
		if err := ValidateScopeComponent(part.value); err != nil {
			panic(fmt.Sprintf("invalid %s name %q: %s", part.kind, part.value, err))
		}
	}
	return &Factory{
		keyspace: keyspace,
		table:    table,
	}
}

// Keyspace returns the keyspace name of the factory's scope.
func (f *Factory) Keyspace() string {
	return f.keyspace
}

// Table returns the table name of the factory's scope.
func (f *Factory) Table() string {
	return f.table
}

// CreateMetricName returns the table-scoped name for the given label.
// It panics if label is not valid.
func (f *Factory) CreateMetricName(label string) MetricName {
	mustValidateLabel(label)
	return f.build(f.table, label)
}

// CreateShardedMetricName returns the name for the given label scoped to
// the given shard of the table.
// It panics if label is not valid or shard is negative.
func (f *Factory) CreateShardedMetricName(label string, shard int) MetricName {
	mustValidateLabel(label)
	if shard < 0 {
		panic(fmt.Sprintf("invalid shard %d for metric %q: must not be negative", shard, label))
	}
	return f.build(f.table+shardSeparator+strconv.Itoa(shard), label)
}

func (f *Factory) build(table, label string) MetricName {
	var mbeanName strings.Builder
	mbeanName.WriteString(GroupName)
	mbeanName.WriteString(":type=")
	mbeanName.WriteString(TypeName)
	mbeanName.WriteString(",keyspace=")
	mbeanName.WriteString(f.keyspace)
	mbeanName.WriteString(",scope=")
	mbeanName.WriteString(table)
	mbeanName.WriteString(",name=")
	mbeanName.WriteString(label)

	return MetricName{
		Group:     GroupName,
		Type:      TypeName,
		Keyspace:  f.keyspace,
		Scope:     f.keyspace + "." + table,
		Name:      label,
		MBeanName: mbeanName.String(),
	}
}
