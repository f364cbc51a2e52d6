package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Index build and query collectors. They count whether or not Register was called.
var (
	pairsComparedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gpxmatch",
		Name:      "pairs_compared_total",
		Help:      "Track pairs compared by the index builder.",
	})
	matchesFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gpxmatch",
		Name:      "matches_found_total",
		Help:      "Index pairs produced by the index builder.",
	})
	buildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gpxmatch",
		Name:      "build_duration_seconds",
		Help:      "Wall time of a full index build.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
	})
	lookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gpxmatch",
		Name:      "lookups_total",
		Help:      "Match index lookups by outcome.",
	}, []string{"outcome"})
)

const (
	outcomeFound      = "found"
	outcomeNoMatch    = "no_match"
	outcomeNotBuilt   = "not_built"
	outcomeLoadFailed = "error"
)

// Register adds the engine collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{pairsComparedTotal, matchesFoundTotal, buildDuration, lookupsTotal} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
