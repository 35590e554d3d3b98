package metrics

import (
	"github.com/cuemby/fdbexporter/pkg/status"
)

// processLabels identify one fdbserver process
var processLabels = []string{"machine_id", "process_id", "class_type", "address"}

// roleLabels identify one role instance on a process
var roleLabels = append(append([]string{}, processLabels...), "role_id")

// processMetrics converts .cluster.processes
type processMetrics struct {
	process *Group
	disk    *Group
	memory  *Group
	network *Group
	role    *Family
	storage *Group
	log     *Group
}

func newProcessMetrics(r *Registry) *processMetrics {
	return &processMetrics{
		process: r.Group("fdb_process", processLabels,
			Field{"cpu_usage_cores", "CPU cores used by the process"},
			Field{"uptime_seconds", "Seconds since the process started"},
			Field{"excluded", "Whether the process is excluded (1) or not (0)"},
			Field{"degraded", "Whether the process is degraded (1) or not (0)"},
			Field{"run_loop_busy_ratio", "Fraction of time the run loop was busy"},
		),
		disk: r.Group("fdb_process_disk", processLabels,
			Field{"busy_ratio", "Fraction of time the disk was busy"},
			Field{"free_bytes", "Free bytes on the data disk"},
			Field{"total_bytes", "Size of the data disk in bytes"},
			Field{"reads_hz", "Disk reads per second"},
			Field{"reads_counter", "Disk reads since the process started"},
			Field{"writes_hz", "Disk writes per second"},
			Field{"writes_counter", "Disk writes since the process started"},
		),
		memory: r.Group("fdb_process_memory", processLabels,
			Field{"available_bytes", "Memory available to the process in bytes"},
			Field{"limit_bytes", "Memory limit of the process in bytes"},
			Field{"rss_bytes", "Resident set size in bytes"},
			Field{"unused_allocated_bytes", "Allocated but unused memory in bytes"},
			Field{"used_bytes", "Memory used by the process in bytes"},
		),
		network: r.Group("fdb_process_network", processLabels,
			Field{"current_connections", "Open connections"},
			Field{"connection_errors_hz", "Connection errors per second"},
			Field{"connections_closed_hz", "Connections closed per second"},
			Field{"connections_established_hz", "Connections established per second"},
			Field{"megabits_received_hz", "Megabits received per second"},
			Field{"megabits_sent_hz", "Megabits sent per second"},
			Field{"tls_policy_failures_hz", "TLS policy failures per second"},
		),
		role: r.Family("fdb_process_role", "Set to 1 for every role a process was seen with",
			append(append([]string{}, processLabels...), "role")...),
		storage: r.Group("fdb_process_storage", roleLabels,
			Field{"data_lag_seconds", "Seconds the storage server lags behind the log"},
			Field{"data_lag_versions", "Versions the storage server lags behind the log"},
			Field{"durability_lag_seconds", "Seconds between the latest and the durable version"},
			Field{"durability_lag_versions", "Versions between the latest and the durable version"},
			Field{"data_version", "Latest version applied by the storage server"},
			Field{"input_bytes_hz", "Bytes received per second"},
			Field{"durable_bytes_hz", "Bytes made durable per second"},
			Field{"finished_queries_hz", "Read queries finished per second"},
			Field{"query_queue_max", "Longest read query queue"},
			Field{"stored_bytes", "Bytes stored by this storage server"},
			Field{"kvstore_available_bytes", "Bytes available to the key-value store"},
			Field{"kvstore_free_bytes", "Free bytes in the key-value store"},
			Field{"kvstore_total_bytes", "Size of the key-value store in bytes"},
			Field{"kvstore_used_bytes", "Bytes used by the key-value store"},
		),
		log: r.Group("fdb_process_log", roleLabels,
			Field{"data_version", "Latest version received by the log server"},
			Field{"input_bytes_hz", "Bytes received per second"},
			Field{"durable_bytes_hz", "Bytes made durable per second"},
			Field{"kvstore_available_bytes", "Bytes available to the key-value store"},
			Field{"kvstore_free_bytes", "Free bytes in the key-value store"},
			Field{"kvstore_total_bytes", "Size of the key-value store in bytes"},
			Field{"kvstore_used_bytes", "Bytes used by the key-value store"},
			Field{"queue_disk_available_bytes", "Bytes available on the queue disk"},
			Field{"queue_disk_free_bytes", "Free bytes on the queue disk"},
			Field{"queue_disk_total_bytes", "Size of the queue disk in bytes"},
			Field{"queue_disk_used_bytes", "Bytes used on the queue disk"},
		),
	}
}

// processLabelValues returns the label tuple of a process. The locality
// process id wins over the document key when both exist.
func processLabelValues(key string, p *status.Process) []string {
	processID := key
	if id, ok := p.Locality["processid"]; ok && id != "" {
		processID = id
	}
	machineID := deref(p.MachineID)
	if machineID == "" {
		machineID = p.Locality["machineid"]
	}
	address := ""
	if p.Address != nil {
		address = p.Address.String()
	}
	return []string{machineID, processID, deref(p.ClassType), address}
}

func (m *processMetrics) update(processes map[string]*status.Process) {
	for key, p := range processes {
		if p == nil {
			continue
		}
		labels := processLabelValues(key, p)

		s := m.process.With(labels...)
		if p.CPU != nil {
			SetIfPresent(s.Field("cpu_usage_cores"), p.CPU.UsageCores)
		}
		SetIfPresent(s.Field("uptime_seconds"), p.UptimeSeconds)
		SetBoolIfPresent(s.Field("excluded"), p.Excluded)
		SetBoolIfPresent(s.Field("degraded"), p.Degraded)
		SetIfPresent(s.Field("run_loop_busy_ratio"), p.RunLoopBusy)

		if d := p.Disk; d != nil {
			s := m.disk.With(labels...)
			SetIfPresent(s.Field("busy_ratio"), d.Busy)
			SetIfPresent(s.Field("free_bytes"), d.FreeBytes)
			SetIfPresent(s.Field("total_bytes"), d.TotalBytes)
			setRate(s.Field("reads_hz"), s.Field("reads_counter"), d.Reads)
			setRate(s.Field("writes_hz"), s.Field("writes_counter"), d.Writes)
		}

		if mem := p.Memory; mem != nil {
			s := m.memory.With(labels...)
			SetIfPresent(s.Field("available_bytes"), mem.AvailableBytes)
			SetIfPresent(s.Field("limit_bytes"), mem.LimitBytes)
			SetIfPresent(s.Field("rss_bytes"), mem.RSSBytes)
			SetIfPresent(s.Field("unused_allocated_bytes"), mem.UnusedAllocatedMemory)
			SetIfPresent(s.Field("used_bytes"), mem.UsedBytes)
		}

		if n := p.Network; n != nil {
			s := m.network.With(labels...)
			SetIfPresent(s.Field("current_connections"), n.CurrentConnections)
			setHz(s.Field("connection_errors_hz"), n.ConnectionErrors)
			setHz(s.Field("connections_closed_hz"), n.ConnectionsClosed)
			setHz(s.Field("connections_established_hz"), n.ConnectionsEstablished)
			setHz(s.Field("megabits_received_hz"), n.MegabitsReceived)
			setHz(s.Field("megabits_sent_hz"), n.MegabitsSent)
			setHz(s.Field("tls_policy_failures_hz"), n.TLSPolicyFailures)
		}

		for i := range p.Roles {
			m.updateRole(labels, &p.Roles[i])
		}
	}
}

func (m *processMetrics) updateRole(labels []string, r *status.Role) {
	if r.Role == nil {
		return
	}
	m.role.With(append(append([]string{}, labels...), *r.Role)...).Set(1)

	var g *Group
	switch *r.Role {
	case status.RoleStorage:
		g = m.storage
	case status.RoleLog:
		g = m.log
	default:
		return
	}
	s := g.With(append(append([]string{}, labels...), deref(r.ID))...)

	if *r.Role == status.RoleStorage {
		if lag := r.DataLag; lag != nil {
			SetIfPresent(s.Field("data_lag_seconds"), lag.Seconds)
			SetIfPresent(s.Field("data_lag_versions"), lag.Versions)
		}
		if lag := r.DurabilityLag; lag != nil {
			SetIfPresent(s.Field("durability_lag_seconds"), lag.Seconds)
			SetIfPresent(s.Field("durability_lag_versions"), lag.Versions)
		}
		setHz(s.Field("finished_queries_hz"), r.FinishedQueries)
		SetIfPresent(s.Field("query_queue_max"), r.QueryQueueMax)
		SetIfPresent(s.Field("stored_bytes"), r.StoredBytes)
	} else {
		SetIfPresent(s.Field("queue_disk_available_bytes"), r.QueueDiskAvailableBytes)
		SetIfPresent(s.Field("queue_disk_free_bytes"), r.QueueDiskFreeBytes)
		SetIfPresent(s.Field("queue_disk_total_bytes"), r.QueueDiskTotalBytes)
		SetIfPresent(s.Field("queue_disk_used_bytes"), r.QueueDiskUsedBytes)
	}

	SetIfPresent(s.Field("data_version"), r.DataVersion)
	setHz(s.Field("input_bytes_hz"), r.InputBytes)
	setHz(s.Field("durable_bytes_hz"), r.DurableBytes)
	SetIfPresent(s.Field("kvstore_available_bytes"), r.KVStoreAvailableBytes)
	SetIfPresent(s.Field("kvstore_free_bytes"), r.KVStoreFreeBytes)
	SetIfPresent(s.Field("kvstore_total_bytes"), r.KVStoreTotalBytes)
	SetIfPresent(s.Field("kvstore_used_bytes"), r.KVStoreUsedBytes)
}

// setRate writes both halves of a rate
func setRate(hz, counter Setter, r *status.Rate) {
	if r == nil {
		return
	}
	SetIfPresent(hz, r.Hz)
	SetIfPresent(counter, r.Counter)
}

func setHz(hz Setter, r *status.Rate) {
	if r == nil {
		return
	}
	SetIfPresent(hz, r.Hz)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
