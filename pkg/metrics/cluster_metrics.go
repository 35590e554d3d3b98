package metrics

import "github.com/cuemby/fdbexporter/pkg/status"

// clusterMetrics converts the scalar members of .cluster and
// .cluster.latency_probe
type clusterMetrics struct {
	generation                       *Scalar
	degradedProcesses                *Scalar
	fullReplication                  *Scalar
	databaseLocked                   *Scalar
	connectedClients                 *Scalar
	zoneFailuresWithoutLosingAvail   *Scalar
	zoneFailuresWithoutLosingData    *Scalar
	recoveryActiveGenerations        *Scalar
	latencyCommit                    *Scalar
	latencyRead                      *Scalar
	latencyTransactionStart          *Scalar
	latencyImmediateTransactionStart *Scalar
	latencyBatchTransactionStart     *Scalar
}

func newClusterMetrics(r *Registry) *clusterMetrics {
	return &clusterMetrics{
		generation:                       r.Gauge("fdb_cluster_generation", "Recovery generation of the cluster"),
		degradedProcesses:                r.Gauge("fdb_cluster_degraded_processes", "Processes reported as degraded"),
		fullReplication:                  r.Gauge("fdb_cluster_full_replication", "Whether all data is fully replicated (1) or not (0)"),
		databaseLocked:                   r.Gauge("fdb_cluster_database_locked", "Whether the database is locked (1) or not (0)"),
		connectedClients:                 r.Gauge("fdb_cluster_connected_clients", "Clients connected to the cluster"),
		zoneFailuresWithoutLosingAvail:   r.Gauge("fdb_cluster_fault_tolerance_max_zone_failures_without_losing_availability", "Zone failures the cluster survives without losing availability"),
		zoneFailuresWithoutLosingData:    r.Gauge("fdb_cluster_fault_tolerance_max_zone_failures_without_losing_data", "Zone failures the cluster survives without losing data"),
		recoveryActiveGenerations:        r.Gauge("fdb_cluster_recovery_active_generations", "Transaction system generations still active"),
		latencyCommit:                    r.Gauge("fdb_cluster_latency_probe_commit_seconds", "Commit latency of the probe transaction"),
		latencyRead:                      r.Gauge("fdb_cluster_latency_probe_read_seconds", "Read latency of the probe transaction"),
		latencyTransactionStart:          r.Gauge("fdb_cluster_latency_probe_transaction_start_seconds", "Default priority GRV latency of the probe transaction"),
		latencyImmediateTransactionStart: r.Gauge("fdb_cluster_latency_probe_immediate_priority_transaction_start_seconds", "Immediate priority GRV latency of the probe transaction"),
		latencyBatchTransactionStart:     r.Gauge("fdb_cluster_latency_probe_batch_priority_transaction_start_seconds", "Batch priority GRV latency of the probe transaction"),
	}
}

func (m *clusterMetrics) update(c *status.Cluster) {
	SetIfPresent(m.generation, c.Generation)
	SetIfPresent(m.degradedProcesses, c.DegradedProcesses)
	SetBoolIfPresent(m.fullReplication, c.FullReplication)
	if c.DatabaseLockState != nil {
		SetBoolIfPresent(m.databaseLocked, c.DatabaseLockState.Locked)
	}
	if c.Clients != nil {
		SetIfPresent(m.connectedClients, c.Clients.Count)
	}
	if ft := c.FaultTolerance; ft != nil {
		SetIfPresent(m.zoneFailuresWithoutLosingAvail, ft.MaxZoneFailuresWithoutLosingAvailability)
		SetIfPresent(m.zoneFailuresWithoutLosingData, ft.MaxZoneFailuresWithoutLosingData)
	}
	if c.RecoveryState != nil {
		SetIfPresent(m.recoveryActiveGenerations, c.RecoveryState.ActiveGenerations)
	}
	if lp := c.LatencyProbe; lp != nil {
		SetIfPresent(m.latencyCommit, lp.CommitSeconds)
		SetIfPresent(m.latencyRead, lp.ReadSeconds)
		SetIfPresent(m.latencyTransactionStart, lp.TransactionStartSeconds)
		SetIfPresent(m.latencyImmediateTransactionStart, lp.ImmediatePriorityTransactionStartSeconds)
		SetIfPresent(m.latencyBatchTransactionStart, lp.BatchPriorityTransactionStartSeconds)
	}
}
