package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const DefaultNamespace = "spacemirror"

var (
	// repositorySyncCount counts clone and pull attempts per repository.
	repositorySyncCount *prometheus.CounterVec
	// repositorySyncLatency tracks transport operation durations.
	repositorySyncLatency *prometheus.HistogramVec
	// lastSuccessfulSync is the unix time of the last successful sync per repository.
	lastSuccessfulSync *prometheus.GaugeVec
	// runRepositories holds the outcome counts of the most recent run.
	runRepositories *prometheus.GaugeVec
)

// EnableMetrics registers the sync metrics with registerer.
// Available metrics are...
//   - repository_sync_total - (tags: project,repo,action,success)
//   - repository_sync_latency_seconds - (tags: action)
//   - last_successful_sync_timestamp - (tags: project,repo)
//   - run_repositories - (tags: outcome)
func EnableMetrics(namespace string, registerer prometheus.Registerer) {
	factory := promauto.With(registerer)

	repositorySyncCount = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "repository_sync_total",
		Help:      "Count of repository clone and pull attempts",
	}, []string{"project", "repo", "action", "success"})

	repositorySyncLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "repository_sync_latency_seconds",
		Help:      "Latency of repository clone and pull operations",
		Buckets:   []float64{0.5, 1, 5, 10, 20, 30, 60, 90, 120, 300, 600},
	}, []string{"action"})

	lastSuccessfulSync = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_successful_sync_timestamp",
		Help:      "Timestamp of the last successful repository sync",
	}, []string{"project", "repo"})

	runRepositories = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_repositories",
		Help:      "Repositories per outcome in the last run",
	}, []string{"outcome"})
}

// RecordRepositorySync is a no-op unless EnableMetrics was called.
func RecordRepositorySync(project, repo, action string, success bool, start time.Time) {
	if repositorySyncCount == nil {
		return
	}
	repositorySyncCount.With(prometheus.Labels{
		"project": project,
		"repo":    repo,
		"action":  action,
		"success": strconv.FormatBool(success),
	}).Inc()
	repositorySyncLatency.WithLabelValues(action).Observe(time.Since(start).Seconds())
	if success {
		lastSuccessfulSync.WithLabelValues(project, repo).Set(float64(time.Now().Unix()))
	}
}

func RecordRunOutcome(outcome string, count int) {
	if runRepositories == nil {
		return
	}
	runRepositories.WithLabelValues(outcome).Set(float64(count))
}

// WriteTextfile exports gatherer in the node-exporter textfile format.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, gatherer)
}
