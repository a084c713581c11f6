package planner

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes generation counters through a private prometheus registry
type Metrics struct {
	registry        *prometheus.Registry
	generations     prometheus.Counter
	combinations    prometheus.Counter
	validTimetables prometheus.Gauge
	duration        prometheus.Histogram
	events          *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	generations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_generations_total",
		Help: "Total number of timetable generations",
	})

	combinations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_combinations_processed_total",
		Help: "Total number of candidate timetables enumerated",
	})

	validTimetables := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_valid_timetables",
		Help: "Number of valid timetables found by the last generation",
	})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Duration of timetable generations in seconds",
		Buckets: prometheus.DefBuckets,
	})

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generation_events_total",
		Help: "Advisory signals raised during generation",
	}, []string{"kind"})

	registry.MustRegister(generations, combinations, validTimetables, duration, events)

	return &Metrics{
		registry:        registry,
		generations:     generations,
		combinations:    combinations,
		validTimetables: validTimetables,
		duration:        duration,
		events:          events,
	}
}

func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

func (metrics *Metrics) OnEvent(event Event) {
	metrics.events.WithLabelValues(string(event.Kind)).Inc()
}

func (metrics *Metrics) ObserveGeneration(performance Performance) {
	metrics.generations.Inc()
	metrics.combinations.Add(float64(performance.CombinationsProcessed))
	metrics.validTimetables.Set(float64(performance.ValidCount))
	metrics.duration.Observe(performance.Duration().Seconds())
}

// WriteToTextfile dumps the registry in the text exposition format
func (metrics *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, metrics.registry)
}
