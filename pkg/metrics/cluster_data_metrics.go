package metrics

import "github.com/cuemby/fdbexporter/pkg/status"

const stateHelp = "Data distribution state: 0 initializing, 1 missing_data, 2 healing, " +
	"3 optimizing_team_collections, 4 healthy_populating_region, 5 healthy_repartitioning, " +
	"6 healthy_removing_server, 7 healthy_rebalancing, 8 healthy, 9 healthy_perpetual_wiggle, 10 unknown"

// clusterDataMetrics converts .cluster.data
type clusterDataMetrics struct {
	averagePartitionSize  *Scalar
	leastSpaceLog         *Scalar
	leastSpaceStorage     *Scalar
	partitionCount        *Scalar
	totalDiskUsed         *Scalar
	totalKVSize           *Scalar
	healthy               *Scalar
	state                 *Scalar
	minReplicasRemaining  *Scalar
	movingInFlight        *Scalar
	movingInQueue         *Scalar
	movingHighestPriority *Scalar
	movingTotalWritten    *Scalar
}

func newClusterDataMetrics(r *Registry) *clusterDataMetrics {
	return &clusterDataMetrics{
		averagePartitionSize:  r.Gauge("fdb_cluster_average_partition_size_bytes", "Average size of a data partition (shard) in bytes"),
		leastSpaceLog:         r.Gauge("fdb_cluster_least_space_log_server_bytes", "Smallest operating space left on any log server in bytes"),
		leastSpaceStorage:     r.Gauge("fdb_cluster_least_space_storage_server_bytes", "Smallest operating space left on any storage server in bytes"),
		partitionCount:        r.Gauge("fdb_cluster_partition_count", "Number of data partitions (shards)"),
		totalDiskUsed:         r.Gauge("fdb_cluster_total_disk_used_bytes", "Disk space used by the cluster in bytes"),
		totalKVSize:           r.Gauge("fdb_cluster_total_kv_size_bytes", "Logical size of all key-value pairs in bytes"),
		healthy:               r.Gauge("fdb_cluster_healthy", "Whether data distribution reports a healthy state (1) or not (0)"),
		state:                 r.Gauge("fdb_cluster_state", stateHelp),
		minReplicasRemaining:  r.Gauge("fdb_cluster_min_replicas_remaining", "Fewest replicas left for any piece of data"),
		movingInFlight:        r.Gauge("fdb_cluster_moving_data_in_flight_bytes", "Bytes currently being relocated"),
		movingInQueue:         r.Gauge("fdb_cluster_moving_data_in_queue_bytes", "Bytes queued for relocation"),
		movingHighestPriority: r.Gauge("fdb_cluster_moving_data_highest_priority", "Highest priority among queued relocations"),
		movingTotalWritten:    r.Gauge("fdb_cluster_moving_data_total_written_bytes", "Bytes written by relocations since the data distributor started"),
	}
}

func (m *clusterDataMetrics) update(d *status.ClusterData) {
	SetIfPresent(m.averagePartitionSize, d.AveragePartitionSizeBytes)
	SetIfPresent(m.leastSpaceLog, d.LeastOperatingSpaceBytesLogServer)
	SetIfPresent(m.leastSpaceStorage, d.LeastOperatingSpaceBytesStorageServer)
	SetIfPresent(m.partitionCount, d.PartitionsCount)
	SetIfPresent(m.totalDiskUsed, d.TotalDiskUsedBytes)
	SetIfPresent(m.totalKVSize, d.TotalKVSizeBytes)

	if st := d.State; st != nil {
		m.state.Set(float64(st.Phase()))
		SetBoolIfPresent(m.healthy, st.Healthy)
		SetIfPresent(m.minReplicasRemaining, st.MinReplicasRemaining)
	}

	if md := d.MovingData; md != nil {
		SetIfPresent(m.movingInFlight, md.InFlightBytes)
		SetIfPresent(m.movingInQueue, md.InQueueBytes)
		SetIfPresent(m.movingHighestPriority, md.HighestPriority)
		SetIfPresent(m.movingTotalWritten, md.TotalWrittenBytes)
	}
}
