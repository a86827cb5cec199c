package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRepositorySync(t *testing.T) {
	registry := prometheus.NewRegistry()
	EnableMetrics(DefaultNamespace, registry)

	start := time.Now()
	RecordRepositorySync("Alpha", "repoA", "clone", true, start)
	RecordRepositorySync("Alpha", "repoB", "pull", false, start)
	RecordRepositorySync("Alpha", "repoB", "pull", false, start)

	if got := testutil.ToFloat64(repositorySyncCount.WithLabelValues("Alpha", "repoA", "clone", "true")); got != 1 {
		t.Errorf("expected 1 successful clone, got %v", got)
	}
	if got := testutil.ToFloat64(repositorySyncCount.WithLabelValues("Alpha", "repoB", "pull", "false")); got != 2 {
		t.Errorf("expected 2 failed pulls, got %v", got)
	}
	if got := testutil.ToFloat64(lastSuccessfulSync.WithLabelValues("Alpha", "repoA")); got < float64(start.Unix()) {
		t.Errorf("expected last sync timestamp to be set, got %v", got)
	}
	if got := testutil.CollectAndCount(lastSuccessfulSync); got != 1 {
		t.Errorf("expected only successful syncs to set a timestamp, got %d series", got)
	}
}

func TestRecordRunOutcome(t *testing.T) {
	registry := prometheus.NewRegistry()
	EnableMetrics(DefaultNamespace, registry)

	RecordRunOutcome("failed", 2)
	RecordRunOutcome("failed", 1)
	if got := testutil.ToFloat64(runRepositories.WithLabelValues("failed")); got != 1 {
		t.Errorf("expected gauge to hold the latest run, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	EnableMetrics(DefaultNamespace, registry)
	RecordRepositorySync("Alpha", "repoA", "clone", true, time.Now())

	path := filepath.Join(t.TempDir(), "spacemirror.prom")
	if err := WriteTextfile(path, registry); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(written), `spacemirror_repository_sync_total{action="clone",project="Alpha",repo="repoA",success="true"} 1`) {
		t.Errorf("unexpected textfile content:\n%s", written)
	}
}
