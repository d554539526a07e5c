package metrics

import (
	"sort"
	"sync"

	"github.com/SAP/tablemetrics-core/pkg/metrics/naming"
	"github.com/prometheus/client_golang/prometheus"
)

type cacheEntry struct {
	name      naming.MetricName
	collector prometheus.Collector
}

type cache struct {
	store map[string]cacheEntry
	lock  sync.Mutex
}

// GetOrCreate returns the collector stored for name or stores the one
// returned by createFunc. createFunc is called with the lock held, so
// concurrent callers for the same name observe a single collector.
func (c *cache) GetOrCreate(name naming.MetricName, createFunc func() prometheus.Collector) prometheus.Collector {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.store == nil {
		c.store = make(map[string]cacheEntry)
	}

	if entry, ok := c.store[name.MBeanName]; ok {
		return entry.collector
	}

	collector := createFunc()
	c.store[name.MBeanName] = cacheEntry{name: name, collector: collector}
	return collector
}

func (c *cache) Names() []naming.MetricName {
	c.lock.Lock()
	defer c.lock.Unlock()

	result := make([]naming.MetricName, 0, len(c.store))
	for _, entry := range c.store {
		result = append(result, entry.name)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MBeanName < result[j].MBeanName
	})
	return result
}

func (c *cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.store)
}
