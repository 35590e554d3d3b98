package metrics

import (
	"errors"

	"github.com/cuemby/fdbexporter/pkg/fetcher"
	"github.com/cuemby/fdbexporter/pkg/status"
	"github.com/prometheus/client_golang/prometheus"
)

// Exporter maps status documents onto the metrics of a Registry. Each
// subtree has its own converter; a subtree missing from the document leaves
// all of its series untouched.
type Exporter struct {
	data      *clusterDataMetrics
	cluster   *clusterMetrics
	qos       *qosMetrics
	workload  *workloadMetrics
	processes *processMetrics
	machines  *machineMetrics
	backup    *backupMetrics
	wiggle    *wiggleMetrics
	client    *clientMetrics

	parsingErrors   prometheus.Counter
	fdbErrors       prometheus.Counter
	bindingErrors   prometheus.Counter
	statusNotFound  prometheus.Counter
	scrapes         prometheus.Counter
	scrapeDuration  prometheus.Histogram
	fetchDuration   *prometheus.HistogramVec
	lastScrapeError *Scalar
}

// NewExporter registers every exporter metric in r
func NewExporter(r *Registry) *Exporter {
	return &Exporter{
		data:      newClusterDataMetrics(r),
		cluster:   newClusterMetrics(r),
		qos:       newQoSMetrics(r),
		workload:  newWorkloadMetrics(r),
		processes: newProcessMetrics(r),
		machines:  newMachineMetrics(r),
		backup:    newBackupMetrics(r),
		wiggle:    newWiggleMetrics(r),
		client:    newClientMetrics(r),

		parsingErrors:   r.Counter("fdb_exporter_parsing_error_count", "Status documents that could not be decoded"),
		fdbErrors:       r.Counter("fdb_exporter_fdb_error_count", "Failed attempts to read the status from the cluster"),
		bindingErrors:   r.Counter("fdb_exporter_fdb_binding_error_count", "Failures of the FoundationDB client setup"),
		statusNotFound:  r.Counter("fdb_exporter_status_not_found_count", "Reads that returned no status document"),
		scrapes:         r.Counter("fdb_exporter_scrapes_total", "Scrape ticks started"),
		scrapeDuration:  r.Histogram("fdb_exporter_scrape_duration_seconds", "Duration of a scrape tick, successful or not", nil),
		fetchDuration:   r.HistogramVec("fdb_exporter_fetch_duration_seconds", "Time to fetch and decode one status document, by source", nil, "source"),
		lastScrapeError: r.Gauge("fdb_exporter_last_scrape_error", "Whether the last scrape failed (1) or not (0)"),
	}
}

// Apply writes every present field of s
func (e *Exporter) Apply(s *status.Status) {
	if s == nil {
		return
	}
	if c := s.Client; c != nil {
		e.client.update(c)
	}

	c := s.Cluster
	if c == nil {
		return
	}
	e.cluster.update(c)
	if c.Data != nil {
		e.data.update(c.Data)
	}
	if c.QoS != nil {
		e.qos.update(c.QoS)
	}
	if c.Workload != nil {
		e.workload.update(c.Workload)
	}
	if c.Processes != nil {
		e.processes.update(c.Processes)
	}
	if c.Machines != nil {
		e.machines.update(c.Machines)
	}
	if c.Layers != nil && c.Layers.Backup != nil {
		e.backup.update(c.Layers.Backup)
	}
	if c.StorageWiggler != nil {
		e.wiggle.update(c.StorageWiggler)
	}
}

// RecordError increments the counter matching err, once
func (e *Exporter) RecordError(err error) {
	var decodeErr *status.DecodeError
	var parseErr *status.ParseError
	switch {
	case errors.Is(err, fetcher.ErrBindingFailure):
		e.bindingErrors.Inc()
	case errors.Is(err, fetcher.ErrStatusNotFound):
		e.statusNotFound.Inc()
	case errors.As(err, &decodeErr), errors.As(err, &parseErr):
		e.parsingErrors.Inc()
	default:
		e.fdbErrors.Inc()
	}
}
