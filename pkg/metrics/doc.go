/*

Package metrics provides metrics support shared among all packages in this Go
module:

-   the Prometheus metrics registry
-   exporting metrics via HTTP
-   the Registry sink that registers metrics by identity (see package naming)

It does NOT include code that is specific to other packages of this module.


Global State

The API of this packages makes use of global state to get access to instances so
that keeping and passing references is not necessary. For non-test use cases
this perfectly fits to the global nature of metric support.

For testing it may be required to let SUTs use test doubles instead of the
original global instances of this package. This can be achieved by patching the
global state of this package during test setup and reverting the patch at test
teardown. Be aware that tests patching global state must not run concurrently to
other tests to avoid interference. See the Testing type for test support.
Code that can be handed a registerer explicitly, like Registry, should be
tested with a dedicated prometheus.Registry instead.


Identities

Registry maps each naming.MetricName to exactly one Prometheus collector.
Registering an identity that is already known returns the existing collector
(get-or-create) instead of failing. The Prometheus metric name is derived from
group, type and name of the identity; keyspace and table scope become constant
labels, so all shards and tables share one metric family per name.

*/
package metrics
