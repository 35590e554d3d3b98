package metrics

import "github.com/cuemby/fdbexporter/pkg/status"

// clientMetrics converts .client
type clientMetrics struct {
	quorumReachable     *Scalar
	databaseAvailable   *Scalar
	databaseHealthy     *Scalar
	clusterFileUpToDate *Scalar
	timestamp           *Scalar
	coordinator         *Family
}

func newClientMetrics(r *Registry) *clientMetrics {
	return &clientMetrics{
		quorumReachable:     r.Gauge("fdb_client_coordinators_quorum_reachable", "Whether a quorum of coordinators is reachable (1) or not (0)"),
		databaseAvailable:   r.Gauge("fdb_client_database_available", "Whether the database is available (1) or not (0)"),
		databaseHealthy:     r.Gauge("fdb_client_database_healthy", "Whether the database is healthy (1) or not (0)"),
		clusterFileUpToDate: r.Gauge("fdb_client_cluster_file_up_to_date", "Whether the cluster file matches the current coordinators (1) or not (0)"),
		timestamp:           r.Gauge("fdb_client_timestamp_seconds", "When the status document was produced, as a unix timestamp"),
		coordinator:         r.Family("fdb_client_coordinator_reachable", "Whether the coordinator is reachable (1) or not (0)", "address"),
	}
}

func (m *clientMetrics) update(c *status.Client) {
	SetIfPresent(m.timestamp, c.Timestamp)
	if f := c.ClusterFile; f != nil {
		SetBoolIfPresent(m.clusterFileUpToDate, f.UpToDate)
	}
	if db := c.DatabaseStatus; db != nil {
		SetBoolIfPresent(m.databaseAvailable, db.Available)
		SetBoolIfPresent(m.databaseHealthy, db.Healthy)
	}
	if co := c.Coordinators; co != nil {
		SetBoolIfPresent(m.quorumReachable, co.QuorumReachable)
		for _, coord := range co.Coordinators {
			if coord.Address == nil {
				continue
			}
			SetBoolIfPresent(m.coordinator.With(coord.Address.String()), coord.Reachable)
		}
	}
}
