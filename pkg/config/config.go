/*
Package config loads the daemon configuration.

The configuration is a YAML document describing where table data is kept,
where metrics are served and which tables are opened on startup:

	metricsPort: 9090
	dataDir: /var/lib/tablemetrics
	throughputTickInterval: 5s
	tables:
	- keyspace: ks1
	  name: t1
	  shards: 2
*/
package config

import (
	"fmt"
	"os"
	"time"

	serrors "github.com/SAP/tablemetrics-core/pkg/errors"
	"github.com/SAP/tablemetrics-core/pkg/metrics/naming"
	"github.com/google/uuid"
	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

const (
	// DefaultMetricsPort is the TCP port of the metrics HTTP server if
	// not configured otherwise.
	DefaultMetricsPort uint16 = 9090

	// DefaultDataDir is the root directory of table data if not
	// configured otherwise.
	DefaultDataDir = "/var/lib/tablemetrics"

	// DefaultThroughputTickInterval is the throughput rate update
	// interval if not configured otherwise.
	DefaultThroughputTickInterval = 5 * time.Second

	// DefaultShards is the number of engine shards of a table if not
	// configured otherwise.
	DefaultShards = 1

	// DefaultMaxConcurrentIngests is the number of concurrent ingestions
	// per table if not configured otherwise.
	DefaultMaxConcurrentIngests int64 = 1
)

// tableIDNamespace is the namespace of table ids derived from table names.
var tableIDNamespace = uuid.MustParse("6f1c1f3e-5c56-4d8b-9a53-4d0f7c2c9b1e")

// Config is the daemon configuration.
type Config struct {
	// MetricsPort is the TCP port of the metrics HTTP server.
	MetricsPort uint16 `yaml:"metricsPort,omitempty"`

	// DataDir is the root directory of table data.
	// It is ignored if InMemory is set.
	DataDir string `yaml:"dataDir,omitempty"`

	// InMemory keeps all table data in memory. Data is lost on exit.
	InMemory bool `yaml:"inMemory,omitempty"`

	// SyncWrites makes every write sync the write-ahead log.
	SyncWrites bool `yaml:"syncWrites,omitempty"`

	// MaxConcurrentIngests limits the number of concurrent ingestions
	// per table.
	MaxConcurrentIngests int64 `yaml:"maxConcurrentIngests,omitempty"`

	// ThroughputTickInterval is the interval in which the throughput
	// rates are updated.
	ThroughputTickInterval time.Duration `yaml:"throughputTickInterval,omitempty"`

	// Tables are opened on startup.
	Tables []Table `yaml:"tables,omitempty"`
}

// Table configures a single table.
type Table struct {
	Keyspace string `yaml:"keyspace"`
	Name     string `yaml:"name"`

	// ID is the table id. If empty, an id derived from keyspace and
	// name is used, which is stable across restarts.
	ID string `yaml:"id,omitempty"`

	// Shards is the number of engine shards backing the table.
	Shards int `yaml:"shards,omitempty"`
}

// TableID returns the configured id or the id derived from keyspace and
// name.
func (t Table) TableID() (uuid.UUID, error) {
	if t.ID == "" {
		return uuid.NewSHA1(tableIDNamespace, []byte(t.Keyspace+"."+t.Name)), nil
	}
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "cannot parse id %q", t.ID)
	}
	return id, nil
}

// Load reads the configuration file at path, applies defaults and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// the file may appear or become readable later
		return nil, serrors.Recoverable(errors.Wrapf(err, "invalid configuration: cannot read file %q", path))
	}
	config, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "file %q", path)
	}
	return config, nil
}

// Parse parses a YAML configuration, applies defaults and validates the
// result.
func Parse(data []byte) (*Config, error) {
	raw := &Config{}
	if err := yaml.Unmarshal(data, raw); err != nil {
		return nil, invalid(errors.Wrap(err, "cannot parse YAML"))
	}
	config := raw.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// WithDefaults returns a copy of the configuration with defaults applied
// to all unset values. The receiver is not modified.
func (c *Config) WithDefaults() *Config {
	result := deepcopy.Copy(c).(*Config)

	if result.MetricsPort == 0 {
		result.MetricsPort = DefaultMetricsPort
	}
	if result.DataDir == "" {
		result.DataDir = DefaultDataDir
	}
	if result.ThroughputTickInterval == 0 {
		result.ThroughputTickInterval = DefaultThroughputTickInterval
	}
	if result.MaxConcurrentIngests == 0 {
		result.MaxConcurrentIngests = DefaultMaxConcurrentIngests
	}
	for i := range result.Tables {
		if result.Tables[i].Shards == 0 {
			result.Tables[i].Shards = DefaultShards
		}
	}
	return result
}

// Validate returns a non-recoverable error if the configuration is not
// valid.
func (c *Config) Validate() error {
	if c.ThroughputTickInterval < 0 {
		return invalid(fmt.Errorf("throughputTickInterval: must not be negative: %s", c.ThroughputTickInterval))
	}
	if c.MaxConcurrentIngests < 0 {
		return invalid(fmt.Errorf("maxConcurrentIngests: must not be negative: %d", c.MaxConcurrentIngests))
	}

	names := map[string]int{}
	ids := map[uuid.UUID]int{}
	for i, table := range c.Tables {
		wrapTableError := func(cause error) error {
			return invalid(errors.Wrapf(cause, "tables[%d]", i))
		}

		if err := naming.ValidateScopeComponent(table.Keyspace); err != nil {
			return wrapTableError(errors.Wrap(err, "keyspace"))
		}
		if err := naming.ValidateScopeComponent(table.Name); err != nil {
			return wrapTableError(errors.Wrap(err, "name"))
		}
		if table.Shards < 1 {
			return wrapTableError(fmt.Errorf("shards: must be positive: %d", table.Shards))
		}
		id, err := table.TableID()
		if err != nil {
			return wrapTableError(err)
		}

		qualified := table.Keyspace + "." + table.Name
		if other, ok := names[qualified]; ok {
			return wrapTableError(fmt.Errorf("table %s is already defined by tables[%d]", qualified, other))
		}
		names[qualified] = i
		if other, ok := ids[id]; ok {
			return wrapTableError(fmt.Errorf("id %s is already used by tables[%d]", id, other))
		}
		ids[id] = i
	}
	return nil
}

func invalid(err error) error {
	err = errors.WithMessage(err, "invalid configuration")
	return serrors.Classify(serrors.NonRecoverable(err), serrors.ClassConfig)
}
