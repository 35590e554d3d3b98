package status

// Process is one fdbserver process, keyed in the document by its process id.
// jq: .cluster.processes[]
type Process struct {
	Address       *Endpoint         `json:"address,omitempty"`
	ClassSource   *string           `json:"class_source,omitempty"`
	ClassType     *string           `json:"class_type,omitempty"`
	CommandLine   *string           `json:"command_line,omitempty"`
	CPU           *ProcessCPU       `json:"cpu,omitempty"`
	Degraded      *bool             `json:"degraded,omitempty"`
	Disk          *ProcessDisk      `json:"disk,omitempty"`
	Excluded      *bool             `json:"excluded,omitempty"`
	FaultDomain   *string           `json:"fault_domain,omitempty"`
	Locality      map[string]string `json:"locality,omitempty"`
	MachineID     *string           `json:"machine_id,omitempty"`
	Memory        *ProcessMemory    `json:"memory,omitempty"`
	Messages      []Message         `json:"messages,omitempty"`
	Network       *ProcessNetwork   `json:"network,omitempty"`
	Roles         []Role            `json:"roles,omitempty"`
	RunLoopBusy   *float64          `json:"run_loop_busy,omitempty"`
	UptimeSeconds *float64          `json:"uptime_seconds,omitempty"`
	Version       *string           `json:"version,omitempty"`
}

// ProcessCPU jq: .cluster.processes[].cpu
type ProcessCPU struct {
	UsageCores *float64 `json:"usage_cores,omitempty"`
}

// ProcessDisk jq: .cluster.processes[].disk
type ProcessDisk struct {
	Busy       *float64 `json:"busy,omitempty"`
	FreeBytes  *int64   `json:"free_bytes,omitempty"`
	TotalBytes *int64   `json:"total_bytes,omitempty"`
	Reads      *Rate    `json:"reads,omitempty"`
	Writes     *Rate    `json:"writes,omitempty"`
}

// ProcessMemory jq: .cluster.processes[].memory
type ProcessMemory struct {
	AvailableBytes        *int64 `json:"available_bytes,omitempty"`
	LimitBytes            *int64 `json:"limit_bytes,omitempty"`
	RSSBytes              *int64 `json:"rss_bytes,omitempty"`
	UnusedAllocatedMemory *int64 `json:"unused_allocated_memory,omitempty"`
	UsedBytes             *int64 `json:"used_bytes,omitempty"`
}

// ProcessNetwork jq: .cluster.processes[].network
type ProcessNetwork struct {
	ConnectionErrors       *Rate  `json:"connection_errors,omitempty"`
	ConnectionsClosed      *Rate  `json:"connections_closed,omitempty"`
	ConnectionsEstablished *Rate  `json:"connections_established,omitempty"`
	CurrentConnections     *int64 `json:"current_connections,omitempty"`
	MegabitsReceived       *Rate  `json:"megabits_received,omitempty"`
	MegabitsSent           *Rate  `json:"megabits_sent,omitempty"`
	TLSPolicyFailures      *Rate  `json:"tls_policy_failures,omitempty"`
}

// Role is one role recruited on a process. Which of the optional fields are
// present depends on Role: storage and log roles carry kvstore and queue
// statistics, most others carry only their id.
// jq: .cluster.processes[].roles[]
type Role struct {
	Role *string `json:"role,omitempty"`
	ID   *string `json:"id,omitempty"`

	DataLag                 *Lag   `json:"data_lag,omitempty"`
	DataVersion             *int64 `json:"data_version,omitempty"`
	DurabilityLag           *Lag   `json:"durability_lag,omitempty"`
	DurableBytes            *Rate  `json:"durable_bytes,omitempty"`
	FinishedQueries         *Rate  `json:"finished_queries,omitempty"`
	InputBytes              *Rate  `json:"input_bytes,omitempty"`
	KVStoreAvailableBytes   *int64 `json:"kvstore_available_bytes,omitempty"`
	KVStoreFreeBytes        *int64 `json:"kvstore_free_bytes,omitempty"`
	KVStoreTotalBytes       *int64 `json:"kvstore_total_bytes,omitempty"`
	KVStoreUsedBytes        *int64 `json:"kvstore_used_bytes,omitempty"`
	QueryQueueMax           *int64 `json:"query_queue_max,omitempty"`
	QueueDiskAvailableBytes *int64 `json:"queue_disk_available_bytes,omitempty"`
	QueueDiskFreeBytes      *int64 `json:"queue_disk_free_bytes,omitempty"`
	QueueDiskTotalBytes     *int64 `json:"queue_disk_total_bytes,omitempty"`
	QueueDiskUsedBytes      *int64 `json:"queue_disk_used_bytes,omitempty"`
	StoredBytes             *int64 `json:"stored_bytes,omitempty"`
}

// Role names as reported in .cluster.processes[].roles[].role
const (
	RoleStorage = "storage"
	RoleLog     = "log"
)

// Machine is one host running fdbserver processes, keyed by machine id.
// jq: .cluster.machines[]
type Machine struct {
	// Address is a bare IP, without port
	Address             *string         `json:"address,omitempty"`
	ContributingWorkers *int64          `json:"contributing_workers,omitempty"`
	CPU                 *MachineCPU     `json:"cpu,omitempty"`
	Excluded            *bool           `json:"excluded,omitempty"`
	MachineID           *string         `json:"machine_id,omitempty"`
	Memory              *MachineMemory  `json:"memory,omitempty"`
	Network             *MachineNetwork `json:"network,omitempty"`
}

// MachineCPU jq: .cluster.machines[].cpu
type MachineCPU struct {
	LogicalCoreUtilization *float64 `json:"logical_core_utilization,omitempty"`
}

// MachineMemory jq: .cluster.machines[].memory
type MachineMemory struct {
	CommittedBytes *int64 `json:"committed_bytes,omitempty"`
	FreeBytes      *int64 `json:"free_bytes,omitempty"`
	TotalBytes     *int64 `json:"total_bytes,omitempty"`
}

// MachineNetwork jq: .cluster.machines[].network
type MachineNetwork struct {
	MegabitsReceived         *Rate `json:"megabits_received,omitempty"`
	MegabitsSent             *Rate `json:"megabits_sent,omitempty"`
	TCPSegmentsRetransmitted *Rate `json:"tcp_segments_retransmitted,omitempty"`
}
