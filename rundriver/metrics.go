package rundriver

import "github.com/prometheus/client_golang/prometheus"

// metrics are the optional Prometheus instruments a Run exposes. Threaded
// through via WithRegisterer rather than package-level promauto globals, so
// a process can run more than one engine instance (e.g. one per survey)
// without a duplicate-registration panic.
type metrics struct {
	groupsEmitted   prometheus.Counter
	subspacesSeen   prometheus.Counter
	recordsUngrouped prometheus.Counter
	groupScore      prometheus.Histogram
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		groupsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloomgroup_groups_emitted_total",
			Help: "Total groups emitted across all runs",
		}),
		subspacesSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloomgroup_subspaces_processed_total",
			Help: "Total subspaces processed across all runs",
		}),
		recordsUngrouped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloomgroup_records_ungrouped_total",
			Help: "Total records left ungrouped across all runs",
		}),
		groupScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloomgroup_group_score",
			Help:    "Distribution of emitted group scores",
			Buckets: prometheus.LinearBuckets(0, 0.5, 10),
		}),
	}

	if registerer == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.groupsEmitted, m.subspacesSeen, m.recordsUngrouped, m.groupScore} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
