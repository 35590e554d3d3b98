package metrics

import "github.com/cuemby/fdbexporter/pkg/status"

// backupMetrics converts .cluster.layers.backup
type backupMetrics struct {
	instancesRunning *Scalar
	lastUpdated      *Scalar
	paused           *Scalar
	tag              *Group
}

func newBackupMetrics(r *Registry) *backupMetrics {
	return &backupMetrics{
		instancesRunning: r.Gauge("fdb_backup_instances_running", "Running backup agents"),
		lastUpdated:      r.Gauge("fdb_backup_last_updated_timestamp_seconds", "When the backup agents last reported, as a unix timestamp"),
		paused:           r.Gauge("fdb_backup_paused", "Whether backups are paused (1) or not (0)"),
		tag: r.Group("fdb_backup_tag", []string{"tag"},
			Field{"running", "Whether a backup is running on the tag (1) or not (0)"},
			Field{"restorable", "Whether the running backup is restorable (1) or not (0)"},
			Field{"last_restorable_seconds_behind", "Seconds between now and the last restorable point"},
			Field{"last_restorable_version", "Last restorable version"},
			Field{"mutation_log_bytes_written", "Mutation log bytes written"},
			Field{"range_bytes_written", "Range snapshot bytes written"},
		),
	}
}

func (m *backupMetrics) update(b *status.Backup) {
	SetIfPresent(m.instancesRunning, b.InstancesRunning)
	SetIfPresent(m.lastUpdated, b.LastUpdated)
	SetBoolIfPresent(m.paused, b.Paused)

	for name, t := range b.Tags {
		if t == nil {
			continue
		}
		s := m.tag.With(name)
		SetBoolIfPresent(s.Field("running"), t.RunningBackup)
		SetBoolIfPresent(s.Field("restorable"), t.RunningBackupIsRestorable)
		SetIfPresent(s.Field("last_restorable_seconds_behind"), t.LastRestorableSecondsBehind)
		SetIfPresent(s.Field("last_restorable_version"), t.LastRestorableVersion)
		SetIfPresent(s.Field("mutation_log_bytes_written"), t.MutationLogBytesWritten)
		SetIfPresent(s.Field("range_bytes_written"), t.RangeBytesWritten)
	}
}
