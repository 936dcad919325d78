// Package metrics registers the Prometheus instrumentation for the API.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shawnasapp/careerserve/pkg/cache"
	"github.com/shawnasapp/careerserve/pkg/career"
	"github.com/shawnasapp/careerserve/pkg/college"
)

var (
	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerserve_searches_total",
			Help: "Career searches by outcome",
		},
		[]string{"outcome"},
	)
	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerserve_lookups_total",
			Help: "Key-based lookups by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	registerOnce sync.Once
)

// Init registers the collectors and the store/cache size gauges.
// Must be called once at startup.
func Init(careers *career.Store, colleges *college.Store, ttlCache *cache.TTL) {
	registerOnce.Do(func() {
		prometheus.MustRegister(searchesTotal, lookupsTotal)
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "careerserve_career_records",
				Help: "Loaded career records",
			},
			func() float64 { return float64(careers.Len()) },
		))
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "careerserve_college_records",
				Help: "Loaded college records",
			},
			func() float64 { return float64(colleges.Len()) },
		))
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "careerserve_cache_entries",
				Help: "Resident TTL cache entries, expired included",
			},
			func() float64 { return float64(ttlCache.Len()) },
		))
	})
}

// RecordSearch counts one search by outcome ("hit" or "empty").
func RecordSearch(outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
}

// RecordLookup counts one key-based lookup.
func RecordLookup(endpoint, outcome string) {
	lookupsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
