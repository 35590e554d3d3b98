package metrics

import (
	"github.com/cuemby/fdbexporter/pkg/status"
)

// wiggleMetrics converts .cluster.storage_wiggler
type wiggleMetrics struct {
	region *Group
}

func newWiggleMetrics(r *Registry) *wiggleMetrics {
	return &wiggleMetrics{
		region: r.Group("fdb_storage_wiggler", []string{"region"},
			Field{"finished_round", "Completed wiggle rounds"},
			Field{"finished_wiggle", "Storage servers wiggled"},
			Field{"smoothed_round_seconds", "Smoothed duration of a wiggle round"},
			Field{"smoothed_wiggle_seconds", "Smoothed duration of a single wiggle"},
			Field{"last_round_start_timestamp_seconds", "Start of the last round, as a unix timestamp"},
			Field{"last_round_finish_timestamp_seconds", "End of the last round, as a unix timestamp"},
			Field{"last_wiggle_start_timestamp_seconds", "Start of the last wiggle, as a unix timestamp"},
			Field{"last_wiggle_finish_timestamp_seconds", "End of the last wiggle, as a unix timestamp"},
		),
	}
}

func (m *wiggleMetrics) update(w *status.StorageWiggler) {
	m.updateRegion("primary", w.Primary)
	m.updateRegion("remote", w.Remote)
}

func (m *wiggleMetrics) updateRegion(region string, w *status.WiggleStats) {
	if w == nil {
		return
	}
	s := m.region.With(region)
	SetIfPresent(s.Field("finished_round"), w.FinishedRound)
	SetIfPresent(s.Field("finished_wiggle"), w.FinishedWiggle)
	SetIfPresent(s.Field("smoothed_round_seconds"), w.SmoothedRoundSeconds)
	SetIfPresent(s.Field("smoothed_wiggle_seconds"), w.SmoothedWiggleSeconds)
	SetIfPresent(s.Field("last_round_start_timestamp_seconds"), w.LastRoundStartTimestamp)
	SetIfPresent(s.Field("last_round_finish_timestamp_seconds"), w.LastRoundFinishTimestamp)
	SetIfPresent(s.Field("last_wiggle_start_timestamp_seconds"), w.LastWiggleStartTimestamp)
	SetIfPresent(s.Field("last_wiggle_finish_timestamp_seconds"), w.LastWiggleFinishTimestamp)
}
