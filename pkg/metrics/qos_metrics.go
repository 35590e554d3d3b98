package metrics

import "github.com/cuemby/fdbexporter/pkg/status"

// qosMetrics converts .cluster.qos
type qosMetrics struct {
	worstQueueLog           *Scalar
	worstQueueStorage       *Scalar
	limitingQueueStorage    *Scalar
	tpsLimit                *Scalar
	releasedTPS             *Scalar
	batchTPSLimit           *Scalar
	batchReleasedTPS        *Scalar
	worstDataLagSeconds     *Scalar
	worstDataLagVersions    *Scalar
	worstDurabilitySeconds  *Scalar
	worstDurabilityVersions *Scalar
	limitedByReason         *Scalar
}

func newQoSMetrics(r *Registry) *qosMetrics {
	return &qosMetrics{
		worstQueueLog:           r.Gauge("fdb_qos_worst_queue_bytes_log_server", "Largest queue on any log server in bytes"),
		worstQueueStorage:       r.Gauge("fdb_qos_worst_queue_bytes_storage_server", "Largest queue on any storage server in bytes"),
		limitingQueueStorage:    r.Gauge("fdb_qos_limiting_queue_bytes_storage_server", "Storage server queue that limits the transaction rate, in bytes"),
		tpsLimit:                r.Gauge("fdb_qos_transactions_per_second_limit", "Transaction rate allowed by ratekeeper"),
		releasedTPS:             r.Gauge("fdb_qos_released_transactions_per_second", "Transactions released per second"),
		batchTPSLimit:           r.Gauge("fdb_qos_batch_transactions_per_second_limit", "Batch priority transaction rate allowed by ratekeeper"),
		batchReleasedTPS:        r.Gauge("fdb_qos_batch_released_transactions_per_second", "Batch priority transactions released per second"),
		worstDataLagSeconds:     r.Gauge("fdb_qos_worst_data_lag_storage_server_seconds", "Largest storage server data lag in seconds"),
		worstDataLagVersions:    r.Gauge("fdb_qos_worst_data_lag_storage_server_versions", "Largest storage server data lag in versions"),
		worstDurabilitySeconds:  r.Gauge("fdb_qos_worst_durability_lag_storage_server_seconds", "Largest storage server durability lag in seconds"),
		worstDurabilityVersions: r.Gauge("fdb_qos_worst_durability_lag_storage_server_versions", "Largest storage server durability lag in versions"),
		limitedByReason:         r.Gauge("fdb_qos_performance_limited_by_reason_id", "Id of the reason ratekeeper is limiting throughput"),
	}
}

func (m *qosMetrics) update(q *status.QoS) {
	SetIfPresent(m.worstQueueLog, q.WorstQueueBytesLogServer)
	SetIfPresent(m.worstQueueStorage, q.WorstQueueBytesStorageServer)
	SetIfPresent(m.limitingQueueStorage, q.LimitingQueueBytesStorageServer)
	SetIfPresent(m.tpsLimit, q.TransactionsPerSecondLimit)
	SetIfPresent(m.releasedTPS, q.ReleasedTransactionsPerSecond)
	SetIfPresent(m.batchTPSLimit, q.BatchTransactionsPerSecondLimit)
	SetIfPresent(m.batchReleasedTPS, q.BatchReleasedTransactionsPerSecond)
	if lag := q.WorstDataLagStorageServer; lag != nil {
		SetIfPresent(m.worstDataLagSeconds, lag.Seconds)
		SetIfPresent(m.worstDataLagVersions, lag.Versions)
	}
	if lag := q.WorstDurabilityLagStorageServer; lag != nil {
		SetIfPresent(m.worstDurabilitySeconds, lag.Seconds)
		SetIfPresent(m.worstDurabilityVersions, lag.Versions)
	}
	if pl := q.PerformanceLimitedBy; pl != nil {
		SetIfPresent(m.limitedByReason, pl.ReasonID)
	}
}
