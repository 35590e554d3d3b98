package metrics

import (
	"github.com/cuemby/fdbexporter/pkg/status"
)

// machineMetrics converts .cluster.machines
type machineMetrics struct {
	machine *Group
}

func newMachineMetrics(r *Registry) *machineMetrics {
	return &machineMetrics{
		machine: r.Group("fdb_machine", []string{"machine_id", "address"},
			Field{"contributing_workers", "Processes on the machine that contribute to the cluster"},
			Field{"excluded", "Whether the machine is excluded (1) or not (0)"},
			Field{"cpu_logical_core_utilization", "Fraction of logical cores in use"},
			Field{"memory_committed_bytes", "Committed memory in bytes"},
			Field{"memory_free_bytes", "Free memory in bytes"},
			Field{"memory_total_bytes", "Total memory in bytes"},
			Field{"network_megabits_received_hz", "Megabits received per second"},
			Field{"network_megabits_sent_hz", "Megabits sent per second"},
			Field{"network_tcp_segments_retransmitted_hz", "TCP segments retransmitted per second"},
		),
	}
}

func (m *machineMetrics) update(machines map[string]*status.Machine) {
	for key, mc := range machines {
		if mc == nil {
			continue
		}
		machineID := key
		if mc.MachineID != nil && *mc.MachineID != "" {
			machineID = *mc.MachineID
		}

		s := m.machine.With(machineID, deref(mc.Address))
		SetIfPresent(s.Field("contributing_workers"), mc.ContributingWorkers)
		SetBoolIfPresent(s.Field("excluded"), mc.Excluded)
		if mc.CPU != nil {
			SetIfPresent(s.Field("cpu_logical_core_utilization"), mc.CPU.LogicalCoreUtilization)
		}
		if mem := mc.Memory; mem != nil {
			SetIfPresent(s.Field("memory_committed_bytes"), mem.CommittedBytes)
			SetIfPresent(s.Field("memory_free_bytes"), mem.FreeBytes)
			SetIfPresent(s.Field("memory_total_bytes"), mem.TotalBytes)
		}
		if n := mc.Network; n != nil {
			setHz(s.Field("network_megabits_received_hz"), n.MegabitsReceived)
			setHz(s.Field("network_megabits_sent_hz"), n.MegabitsSent)
			setHz(s.Field("network_tcp_segments_retransmitted_hz"), n.TCPSegmentsRetransmitted)
		}
	}
}
