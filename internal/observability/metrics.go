package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreMutations counts directory store mutations by operation and outcome.
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "incubator_store_mutations_total",
		Help: "Total number of directory store mutations",
	}, []string{"operation", "outcome"})

	// StoreCollectionSize tracks the number of records held per collection.
	StoreCollectionSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "incubator_store_collection_size",
		Help: "Number of records held in each directory store collection",
	}, []string{"collection"})

	// EditorSaves counts profile editor saves by result.
	EditorSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "incubator_editor_saves_total",
		Help: "Total number of profile editor saves by result",
	}, []string{"result"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "incubator_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheLookups counts snapshot cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "incubator_cache_lookups_total",
		Help: "Total snapshot cache lookups by result",
	}, []string{"result"})
)

// CollectionSizes is the per-collection record count reported after a mutation.
type CollectionSizes struct {
	Profiles     int
	Research     int
	Startups     int
	Applications int
	Interests    int
}

// RecordCollectionSizes publishes the collection gauges.
func RecordCollectionSizes(s CollectionSizes) {
	StoreCollectionSize.WithLabelValues("profiles").Set(float64(s.Profiles))
	StoreCollectionSize.WithLabelValues("research").Set(float64(s.Research))
	StoreCollectionSize.WithLabelValues("startups").Set(float64(s.Startups))
	StoreCollectionSize.WithLabelValues("applications").Set(float64(s.Applications))
	StoreCollectionSize.WithLabelValues("interests").Set(float64(s.Interests))
}
