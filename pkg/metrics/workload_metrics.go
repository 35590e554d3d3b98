package metrics

import (
	"github.com/cuemby/fdbexporter/pkg/status"
)

// workloadMetrics converts .cluster.workload. Each category is a group
// keyed by the rate name found in the document.
type workloadMetrics struct {
	bytes        *Group
	keys         *Group
	operations   *Group
	transactions *Group
}

func newWorkloadMetrics(r *Registry) *workloadMetrics {
	rate := func(prefix, what string) *Group {
		return r.Group(prefix, []string{"kind"},
			Field{"hz", what + " per second"},
			Field{"counter", what + " since the cluster controller started"},
		)
	}
	return &workloadMetrics{
		bytes:        rate("fdb_cluster_workload_bytes", "Bytes"),
		keys:         rate("fdb_cluster_workload_keys", "Keys"),
		operations:   rate("fdb_cluster_workload_operations", "Operations"),
		transactions: rate("fdb_cluster_workload_transactions", "Transactions"),
	}
}

func (m *workloadMetrics) update(w *status.Workload) {
	updateRates(m.bytes, w.Bytes)
	updateRates(m.keys, w.Keys)
	updateRates(m.operations, w.Operations)
	updateRates(m.transactions, w.Transactions)
}

func updateRates(g *Group, rates map[string]*status.Rate) {
	for kind, r := range rates {
		s := g.With(kind)
		setRate(s.Field("hz"), s.Field("counter"), r)
	}
}
