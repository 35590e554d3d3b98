package status

// ClusterData reports data distribution and space usage.
// jq: .cluster.data
type ClusterData struct {
	AveragePartitionSizeBytes             *int64      `json:"average_partition_size_bytes,omitempty"`
	LeastOperatingSpaceBytesLogServer     *int64      `json:"least_operating_space_bytes_log_server,omitempty"`
	LeastOperatingSpaceBytesStorageServer *int64      `json:"least_operating_space_bytes_storage_server,omitempty"`
	MovingData                            *MovingData `json:"moving_data,omitempty"`
	PartitionsCount                       *int64      `json:"partitions_count,omitempty"`
	TotalDiskUsedBytes                    *int64      `json:"total_disk_used_bytes,omitempty"`
	TotalKVSizeBytes                      *int64      `json:"total_kv_size_bytes,omitempty"`
	State                                 *DataState  `json:"state,omitempty"`
}

// MovingData is only present while data distribution is relocating shards.
// jq: .cluster.data.moving_data
type MovingData struct {
	HighestPriority *int64 `json:"highest_priority,omitempty"`
	InFlightBytes   *int64 `json:"in_flight_bytes,omitempty"`
	InQueueBytes    *int64 `json:"in_queue_bytes,omitempty"`
	// Reset whenever the data distributor is re-recruited
	TotalWrittenBytes *int64 `json:"total_written_bytes,omitempty"`
}

// DataState is the health phase of data distribution.
// jq: .cluster.data.state
type DataState struct {
	Healthy              *bool      `json:"healthy,omitempty"`
	Description          *string    `json:"description,omitempty"`
	MinReplicasRemaining *int64     `json:"min_replicas_remaining,omitempty"`
	Name                 *StateName `json:"name,omitempty"`
}

// Phase returns the named phase, or StateUnknown when name is missing
func (s *DataState) Phase() StateName {
	if s.Name == nil {
		return StateUnknown
	}
	return *s.Name
}

// StateName enumerates data distribution phases. The ordinal values are
// exported as the fdb_cluster_state gauge and must not be reordered.
// jq: .cluster.data.state.name
type StateName int

const (
	StateInitializing StateName = iota
	StateMissingData
	StateHealing
	StateOptimizingTeamCollections
	StateHealthyPopulatingRegion
	StateHealthyRepartitioning
	StateHealthyRemovingServer
	StateHealthyRebalancing
	StateHealthy
	StateHealthyPerpetualWiggle
	StateUnknown
)

var stateNames = [...]string{
	StateInitializing:              "initializing",
	StateMissingData:               "missing_data",
	StateHealing:                   "healing",
	StateOptimizingTeamCollections: "optimizing_team_collections",
	StateHealthyPopulatingRegion:   "healthy_populating_region",
	StateHealthyRepartitioning:     "healthy_repartitioning",
	StateHealthyRemovingServer:     "healthy_removing_server",
	StateHealthyRebalancing:        "healthy_rebalancing",
	StateHealthy:                   "healthy",
	StateHealthyPerpetualWiggle:    "healthy_perpetual_wiggle",
	StateUnknown:                   "unknown",
}

// ParseStateName maps a status tag to its StateName. Unrecognized tags map
// to StateUnknown.
func ParseStateName(s string) StateName {
	for i, name := range stateNames {
		if name == s {
			return StateName(i)
		}
	}
	return StateUnknown
}

func (n StateName) String() string {
	if n < 0 || int(n) >= len(stateNames) {
		return stateNames[StateUnknown]
	}
	return stateNames[n]
}

// MarshalText implements encoding.TextMarshaler
func (n StateName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails: newer
// FoundationDB versions may add phases this exporter does not know about.
func (n *StateName) UnmarshalText(b []byte) error {
	*n = ParseStateName(string(b))
	return nil
}
