/*
Package metrics turns decoded FoundationDB status documents into Prometheus
metrics.

# Registry

All metrics live in a private prometheus.Registry wrapped by Registry. Nothing
is registered with the global DefaultRegisterer, so tests can build as many
exporters as they like. Go runtime and process collectors are added only when
RegisterRuntimeCollectors is called.

Three shapes are used:

	Gauge/Counter/Histogram   one unlabelled series
	HistogramVec              a histogram keyed by labels (fetch source)
	Family                    one gauge name, labelled by key (address, tag)
	Group                     several gauges sharing a prefix and labels

Gauges, and the series of a Family or Group, are created lazily on the
first Set. A process that never reports disk metrics therefore has no
fdb_process_disk_* series at all, and fdb_cluster_state is missing until a
document carries a data state, rather than reading 0 (initializing).
Counters and histograms are exported from the start.

# Presence

Converters only write what is present in the document:

	SetIfPresent(g, d.TotalKVSizeBytes)   // nil: keep the last value
	SetBoolIfPresent(g, d.Healthy)        // true 1, false 0

Keyed series (processes, machines, backup tags, coordinators) are never
removed. A process that disappears keeps its last values until the exporter
restarts.

# Collecting

Collector runs the scrape loop:

	c := metrics.NewCollector(f, metrics.NewExporter(reg), 15*time.Second)
	err := c.Run(ctx)

Each tick fetches, decodes and applies one document. Failures are sorted into
fdb_exporter_fdb_error_count, fdb_exporter_parsing_error_count,
fdb_exporter_status_not_found_count and fdb_exporter_fdb_binding_error_count.
A binding failure stops Run; everything else is retried on the next tick.
*/
package metrics
