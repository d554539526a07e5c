package main

import (
	"context"
	"flag"

	"github.com/SAP/tablemetrics-core/pkg/config"
	"github.com/SAP/tablemetrics-core/pkg/engine"
	"github.com/SAP/tablemetrics-core/pkg/featureflag"
	"github.com/SAP/tablemetrics-core/pkg/metrics"
	"github.com/SAP/tablemetrics-core/pkg/signals"
	"github.com/SAP/tablemetrics-core/pkg/tablemetrics"
	"github.com/SAP/tablemetrics-core/pkg/throughput"
	"github.com/benbjohnson/clock"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/pkg/errors"
	klog "k8s.io/klog/v2"
)

var (
	configPath string
	inMemory   bool
)

func init() {
	klog.InitFlags(nil)

	flag.StringVar(
		&configPath,
		"config",
		"",
		"The path to the configuration file."+
			" If not specified or empty, defaults are used and no table is opened.",
	)
	flag.BoolVar(
		&inMemory,
		"in-memory",
		false,
		"Keep all table data in memory, overriding the configuration file.",
	)

	flag.Parse()
}

func main() {
	defer klog.Flush()

	ctx := context.Background()
	featureflag.Log(klog.FromContext(ctx))

	cfg, err := loadConfig()
	if err != nil {
		klog.Exitf("failed to load configuration: %s", err.Error())
	}

	klog.V(3).Infof("Create Signal Handlers")
	stopCh := signals.SetupShutdownSignalHandler()
	signals.SetupThreadDumpSignalHandler()

	klog.V(3).Infof("Start throughput manager (tick interval: %s)", cfg.ThroughputTickInterval)
	throughputManager := throughput.New(clock.New(), cfg.ThroughputTickInterval)
	throughputManager.Start(stopCh)

	e := engine.New(engineOptions(cfg, throughputManager))
	defer func() {
		if err := e.Close(); err != nil {
			klog.ErrorS(err, "Failed to close storage engine")
		}
	}()

	provider := tablemetrics.NewProvider(metrics.NewRegistry(metrics.Registerer()), e, throughputManager)
	provider.Global()
	if err := openTables(ctx, cfg, e, provider); err != nil {
		klog.ErrorS(err, "Failed to open tables")
		return
	}

	klog.V(2).Infof("Provide metrics on http://0.0.0.0:%d/metrics", cfg.MetricsPort)
	metrics.StartServer(cfg.MetricsPort)

	<-stopCh
	klog.V(2).Infof("Shutting down")
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath == "" {
		cfg, err = config.Parse(nil)
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return nil, err
	}
	if inMemory {
		cfg.InMemory = true
	}
	return cfg, nil
}

func engineOptions(cfg *config.Config, recorder engine.ThroughputRecorder) engine.Options {
	opts := engine.Options{
		Dir:                  cfg.DataDir,
		SyncWrites:           cfg.SyncWrites,
		MaxConcurrentIngests: cfg.MaxConcurrentIngests,
		Throughput:           recorder,
	}
	if cfg.InMemory {
		klog.Warningf("Table data is kept in memory only and lost on exit")
		opts.FS = vfs.NewMem()
	}
	return opts
}

func openTables(ctx context.Context, cfg *config.Config, e *engine.Engine, provider *tablemetrics.Provider) error {
	for _, tableCfg := range cfg.Tables {
		id, err := tableCfg.TableID()
		if err != nil {
			return err
		}
		identity := engine.TableIdentity{ID: id, Keyspace: tableCfg.Keyspace, Name: tableCfg.Name}

		klog.V(3).Infof("Open table %s (shards: %d)", identity, tableCfg.Shards)
		table, err := e.OpenTable(ctx, identity, tableCfg.Shards)
		if err != nil {
			return errors.Wrapf(err, "table %s", identity)
		}
		tm, err := provider.ForTable(ctx, id, tablemetrics.SourcesOf(table.StatisticsSources()))
		if err != nil {
			return errors.Wrapf(err, "table %s", identity)
		}
		table.Instrument(tm.Instruments())
	}
	return nil
}
