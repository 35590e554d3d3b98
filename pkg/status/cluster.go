package status

// Cluster is the server-side section of the status document.
// jq: .cluster
type Cluster struct {
	Clients           *Clients            `json:"clients,omitempty"`
	Data              *ClusterData        `json:"data,omitempty"`
	DatabaseLockState *LockState          `json:"database_lock_state,omitempty"`
	DegradedProcesses *int64              `json:"degraded_processes,omitempty"`
	FaultTolerance    *FaultTolerance     `json:"fault_tolerance,omitempty"`
	FullReplication   *bool               `json:"full_replication,omitempty"`
	Generation        *int64              `json:"generation,omitempty"`
	LatencyProbe      *LatencyProbe       `json:"latency_probe,omitempty"`
	Layers            *Layers             `json:"layers,omitempty"`
	Machines          map[string]*Machine `json:"machines,omitempty"`
	Processes         map[string]*Process `json:"processes,omitempty"`
	QoS               *QoS                `json:"qos,omitempty"`
	RecoveryState     *RecoveryState      `json:"recovery_state,omitempty"`
	StorageWiggler    *StorageWiggler     `json:"storage_wiggler,omitempty"`
	Workload          *Workload           `json:"workload,omitempty"`
}

// Clients summarizes connected clients.
// jq: .cluster.clients
type Clients struct {
	Count *int64 `json:"count,omitempty"`
}

// LockState tells whether the database is locked.
// jq: .cluster.database_lock_state
type LockState struct {
	Locked *bool `json:"locked,omitempty"`
}

// FaultTolerance is how many failure domains the cluster can lose.
// jq: .cluster.fault_tolerance
type FaultTolerance struct {
	MaxZoneFailuresWithoutLosingAvailability *int64 `json:"max_zone_failures_without_losing_availability,omitempty"`
	MaxZoneFailuresWithoutLosingData         *int64 `json:"max_zone_failures_without_losing_data,omitempty"`
}

// RecoveryState describes the transaction subsystem recovery.
// jq: .cluster.recovery_state
type RecoveryState struct {
	ActiveGenerations *int64  `json:"active_generations,omitempty"`
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
}

// LatencyProbe holds the latencies measured by the cluster controller's
// probe transaction.
// jq: .cluster.latency_probe
type LatencyProbe struct {
	BatchPriorityTransactionStartSeconds     *float64 `json:"batch_priority_transaction_start_seconds,omitempty"`
	CommitSeconds                            *float64 `json:"commit_seconds,omitempty"`
	ImmediatePriorityTransactionStartSeconds *float64 `json:"immediate_priority_transaction_start_seconds,omitempty"`
	ReadSeconds                              *float64 `json:"read_seconds,omitempty"`
	TransactionStartSeconds                  *float64 `json:"transaction_start_seconds,omitempty"`
}

// QoS is the ratekeeper view of the cluster.
// jq: .cluster.qos
type QoS struct {
	BatchReleasedTransactionsPerSecond *float64          `json:"batch_released_transactions_per_second,omitempty"`
	BatchTransactionsPerSecondLimit    *float64          `json:"batch_transactions_per_second_limit,omitempty"`
	LimitingQueueBytesStorageServer    *int64            `json:"limiting_queue_bytes_storage_server,omitempty"`
	PerformanceLimitedBy               *PerformanceLimit `json:"performance_limited_by,omitempty"`
	ReleasedTransactionsPerSecond      *float64          `json:"released_transactions_per_second,omitempty"`
	TransactionsPerSecondLimit         *float64          `json:"transactions_per_second_limit,omitempty"`
	WorstDataLagStorageServer          *Lag              `json:"worst_data_lag_storage_server,omitempty"`
	WorstDurabilityLagStorageServer    *Lag              `json:"worst_durability_lag_storage_server,omitempty"`
	WorstQueueBytesLogServer           *int64            `json:"worst_queue_bytes_log_server,omitempty"`
	WorstQueueBytesStorageServer       *int64            `json:"worst_queue_bytes_storage_server,omitempty"`
}

// PerformanceLimit names what currently limits the transaction rate.
// jq: .cluster.qos.performance_limited_by
type PerformanceLimit struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ReasonID    *int64  `json:"reason_id,omitempty"`
}

// Workload groups throughput rates by category. Each map is keyed by the
// rate name, e.g. "reads" under Operations or "committed" under Transactions.
// jq: .cluster.workload
type Workload struct {
	Bytes        map[string]*Rate `json:"bytes,omitempty"`
	Keys         map[string]*Rate `json:"keys,omitempty"`
	Operations   map[string]*Rate `json:"operations,omitempty"`
	Transactions map[string]*Rate `json:"transactions,omitempty"`
}

// Layers holds status reported by client layers such as backup.
// jq: .cluster.layers
type Layers struct {
	Valid  *bool   `json:"_valid,omitempty"`
	Backup *Backup `json:"backup,omitempty"`
}

// Backup is the backup agents' report.
// jq: .cluster.layers.backup
type Backup struct {
	InstancesRunning *int64                `json:"instances_running,omitempty"`
	LastUpdated      *float64              `json:"last_updated,omitempty"`
	Paused           *bool                 `json:"paused,omitempty"`
	Tags             map[string]*BackupTag `json:"tags,omitempty"`
}

// BackupTag is the state of one backup tag.
// jq: .cluster.layers.backup.tags[]
type BackupTag struct {
	CurrentContainer            *string  `json:"current_container,omitempty"`
	CurrentStatus               *string  `json:"current_status,omitempty"`
	LastRestorableSecondsBehind *float64 `json:"last_restorable_seconds_behind,omitempty"`
	LastRestorableVersion       *int64   `json:"last_restorable_version,omitempty"`
	MutationLogBytesWritten     *int64   `json:"mutation_log_bytes_written,omitempty"`
	RangeBytesWritten           *int64   `json:"range_bytes_written,omitempty"`
	RunningBackup               *bool    `json:"running_backup,omitempty"`
	RunningBackupIsRestorable   *bool    `json:"running_backup_is_restorable,omitempty"`
}

// StorageWiggler reports perpetual storage wiggle progress per region.
// jq: .cluster.storage_wiggler
type StorageWiggler struct {
	Primary *WiggleStats `json:"primary,omitempty"`
	Remote  *WiggleStats `json:"remote,omitempty"`
}

// WiggleStats is the wiggle progress of one region.
// jq: .cluster.storage_wiggler.primary
type WiggleStats struct {
	FinishedRound             *int64   `json:"finished_round,omitempty"`
	FinishedWiggle            *int64   `json:"finished_wiggle,omitempty"`
	LastRoundFinishTimestamp  *float64 `json:"last_round_finish_timestamp,omitempty"`
	LastRoundStartTimestamp   *float64 `json:"last_round_start_timestamp,omitempty"`
	LastWiggleFinishTimestamp *float64 `json:"last_wiggle_finish_timestamp,omitempty"`
	LastWiggleStartTimestamp  *float64 `json:"last_wiggle_start_timestamp,omitempty"`
	SmoothedRoundSeconds      *float64 `json:"smoothed_round_seconds,omitempty"`
	SmoothedWiggleSeconds     *float64 `json:"smoothed_wiggle_seconds,omitempty"`
}
